// Package tui provides the Bubble Tea integration for the racer.
// It runs the frame loop, turns key presses into held actions, persists
// race outcomes and hosts the menu and scoreboard screens.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-racer/internal/core"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	return tea.Tick(core.FrameDuration(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
