package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-racer/internal/core"
	"github.com/vovakirdan/tui-racer/internal/registry"
	"github.com/vovakirdan/tui-racer/internal/storage"
)

// MaxStep caps the time simulated by one tick, so a stalled terminal does
// not teleport the cars.
const MaxStep = 100 * time.Millisecond

// Model is the Bubble Tea model for running a race.
type Model struct {
	game      registry.Game
	screen    *core.Screen
	store     *storage.Store
	logger    *log.Logger
	config    core.RuntimeConfig
	keys      *KeyMapper
	held      *HeldKeys
	pulses    core.MultiInputFrame // one-shot actions for the next tick
	lastTick  time.Time
	gameState core.GameState
	quitting  bool
}

// NewModel creates a new Bubble Tea model for the given game.
// A nil store disables persistence and a nil logger discards output.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:  store,
		logger: logger.With("game", game.ID()),
		config: cfg,
		keys:   NewKeyMapper(registry.Players(game)),
		held:   NewHeldKeys(DefaultInitialHold, DefaultRepeatHold),
		pulses: core.NewMultiInputFrame(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg, time.Now())

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg, now time.Time) (tea.Model, tea.Cmd) {
	if m.keys.IsScreenshot(msg) {
		m.saveScreenshot()
		return m, nil
	}

	player, action := m.keys.Lookup(msg)
	switch action {
	case core.ActionNone:
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionPause, core.ActionRestart:
		m.pulses.Press(player, action)
		if action == core.ActionRestart {
			m.held.Clear()
		}
	default:
		m.held.Press(player, action, now)
	}

	return m, nil
}

// handleResize keeps the game running; the renderer adapts to any size.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick steps the game by the time since the previous tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := core.FrameDuration(m.config.TickRate)
	if !m.lastTick.IsZero() {
		dt = now.Sub(m.lastTick)
	}
	m.lastTick = now
	dt = max(0, min(dt, MaxStep))

	in := m.held.Frame(now)
	for id, frame := range m.pulses.ByPlayer {
		for a, on := range frame.Actions {
			if on {
				in.Press(id, a)
			}
		}
	}
	m.pulses = core.NewMultiInputFrame()

	result := m.game.Step(in, dt)
	m.gameState = result.State
	m.recordEvents(result.Events)

	return m, tickCmd(m.config.TickRate)
}

// recordEvents persists race outcomes. Failures are logged; the race
// goes on regardless.
func (m Model) recordEvents(events []core.Event) {
	for _, ev := range events {
		m.logger.Debug("event", "kind", ev.Kind, "level", ev.Level, "player", int(ev.Player), "score", ev.Score)

		var kind storage.ResultKind
		switch ev.Kind {
		case core.EventLevelWon:
			kind = storage.ResultWin
		case core.EventTrialFinished:
			kind = storage.ResultTrial
		case core.EventTimeExpired:
			kind = storage.ResultTimeout
		case core.EventHighScore:
			m.logger.Info("new high score", "level", ev.Level, "score", ev.Score)
			continue
		case core.EventGameComplete:
			m.saveFinalScore(ev)
			continue
		default:
			continue
		}

		if m.store == nil {
			continue
		}
		_, err := m.store.SaveRaceResult(storage.RaceResult{
			GameID:  m.game.ID(),
			LevelID: ev.Level,
			Kind:    kind,
			Player:  int(ev.Player),
			Score:   ev.Score,
		})
		if err != nil {
			m.logger.Warn("failed to save race result", "level", ev.Level, "err", err)
		}
	}
}

// saveFinalScore stores player 1's total when the level sequence completes.
func (m Model) saveFinalScore(ev core.Event) {
	if len(ev.Scores) == 0 || ev.Scores[0] <= 0 || m.store == nil {
		return
	}
	if _, err := m.store.SaveScore(m.game.ID(), ev.Scores[0]); err != nil {
		m.logger.Warn("failed to save score", "score", ev.Scores[0], "err", err)
		return
	}
	m.logger.Info("score saved", "score", ev.Scores[0])
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("cannot locate home directory", "err", err)
		return
	}
	dir := filepath.Join(home, ".racer", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot create screenshot directory", "dir", dir, "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "path", path, "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// State returns the game state after the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(game, store, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
