package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-racer/internal/core"
)

// DriveKeys are the steering bindings of one player.
type DriveKeys struct {
	Player core.PlayerID
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
}

// KeyMap holds the in-game key bindings.
type KeyMap struct {
	Drivers    []DriveKeys
	Pause      key.Binding
	Restart    key.Binding
	Quit       key.Binding
	Screenshot key.Binding
}

func arrowKeys(p core.PlayerID) DriveKeys {
	return DriveKeys{
		Player: p,
		Up:     key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "accelerate")),
		Down:   key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "brake")),
		Left:   key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "steer left")),
		Right:  key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "steer right")),
	}
}

func wasdKeys(p core.PlayerID) DriveKeys {
	return DriveKeys{
		Player: p,
		Up:     key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "accelerate")),
		Down:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "brake")),
		Left:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "steer left")),
		Right:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "steer right")),
	}
}

func commonKeys(drivers ...DriveKeys) KeyMap {
	return KeyMap{
		Drivers:    drivers,
		Pause:      key.NewBinding(key.WithKeys("p", "esc"), key.WithHelp("p", "pause")),
		Restart:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Screenshot: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "screenshot")),
	}
}

// SoloKeyMap lets player 1 drive with either the arrows or WASD.
func SoloKeyMap() KeyMap {
	arrows := arrowKeys(core.Player1)
	wasd := wasdKeys(core.Player1)
	return commonKeys(arrows, wasd)
}

// DuelKeyMap gives player 1 WASD and player 2 the arrows.
func DuelKeyMap() KeyMap {
	return commonKeys(wasdKeys(core.Player1), arrowKeys(core.Player2))
}

// KeyMapFor returns the key map for a number of human players.
func KeyMapFor(players int) KeyMap {
	if players >= 2 {
		return DuelKeyMap()
	}
	return SoloKeyMap()
}

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys KeyMap
}

// NewKeyMapper creates a key mapper for a number of human players.
func NewKeyMapper(players int) *KeyMapper {
	return &KeyMapper{keys: KeyMapFor(players)}
}

// Keys returns the bindings in use.
func (km *KeyMapper) Keys() KeyMap {
	return km.keys
}

// Lookup returns the player and action a key drives. Pause and restart
// belong to player 1; quit and screenshot carry no player.
// Unbound keys return ActionNone.
func (km *KeyMapper) Lookup(msg tea.KeyMsg) (core.PlayerID, core.Action) {
	switch {
	case key.Matches(msg, km.keys.Quit):
		return 0, core.ActionQuit
	case key.Matches(msg, km.keys.Pause):
		return core.Player1, core.ActionPause
	case key.Matches(msg, km.keys.Restart):
		return core.Player1, core.ActionRestart
	}

	for _, d := range km.keys.Drivers {
		switch {
		case key.Matches(msg, d.Up):
			return d.Player, core.ActionUp
		case key.Matches(msg, d.Down):
			return d.Player, core.ActionDown
		case key.Matches(msg, d.Left):
			return d.Player, core.ActionLeft
		case key.Matches(msg, d.Right):
			return d.Player, core.ActionRight
		}
	}

	return 0, core.ActionNone
}

// IsScreenshot reports whether the key requests a screenshot.
func (km *KeyMapper) IsScreenshot(msg tea.KeyMsg) bool {
	return key.Matches(msg, km.keys.Screenshot)
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
)

// MapKeyToMenuAction translates a key to a menu action.
func MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}
