// Package racer implements the top-down racing games: a race against a
// waypoint-following CPU, a two-player duel on one keyboard, and a solo
// time trial with collectibles and a per-level leaderboard.
package racer

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-racer/internal/config"
	"github.com/vovakirdan/tui-racer/internal/core"
	"github.com/vovakirdan/tui-racer/internal/leaderboard"
	"github.com/vovakirdan/tui-racer/internal/race"
	"github.com/vovakirdan/tui-racer/internal/registry"
	"github.com/vovakirdan/tui-racer/internal/track"
)

// Mode selects who drives and which levels are played.
type Mode int

const (
	ModeSolo  Mode = iota // player 1 against the CPU on race levels
	ModeDuel              // two humans on race levels
	ModeTrial             // player 1 alone on time-trial levels
)

// Settings set via CLI before games are created.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	levelsDir        string
	playerName       string
	scoreStore       leaderboard.Store
	logger           = log.New(io.Discard)
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	switch preset {
	case "easy":
		difficultyPreset = config.DifficultyEasy
	case "normal":
		difficultyPreset = config.DifficultyNormal
	case "hard":
		difficultyPreset = config.DifficultyHard
	case "fixed":
		difficultyPreset = config.DifficultyFixed
	default:
		difficultyPreset = ""
	}
}

// SetLevelsDir loads levels from a directory instead of the built-in set.
func SetLevelsDir(dir string) {
	levelsDir = dir
}

// SetPlayerName sets the name recorded on the time-trial leaderboard.
func SetPlayerName(name string) {
	playerName = name
}

// SetLeaderboardStore sets where the time-trial leaderboard is persisted.
func SetLeaderboardStore(s leaderboard.Store) {
	scoreStore = s
}

// SetLogger sets the logger used by racing sessions.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Game adapts a race session to the platform's game interface.
type Game struct {
	mode    Mode
	runtime core.RuntimeConfig
	cfg     config.RacerConfig
	session *race.Session
	err     error
}

// New creates a race against the CPU.
func New() *Game {
	return &Game{mode: ModeSolo}
}

// NewDuel creates a two-player race.
func NewDuel() *Game {
	return &Game{mode: ModeDuel}
}

// NewTrial creates a time trial.
func NewTrial() *Game {
	return &Game{mode: ModeTrial}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	switch g.mode {
	case ModeDuel:
		return "racer_duel"
	case ModeTrial:
		return "racer_trial"
	default:
		return "racer"
	}
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	switch g.mode {
	case ModeDuel:
		return "Racer (Duel)"
	case ModeTrial:
		return "Racer (Time Trial)"
	default:
		return "Racer"
	}
}

// Players returns the number of human drivers.
func (g *Game) Players() int {
	if g.mode == ModeDuel {
		return 2
	}
	return 1
}

// Mode returns the game mode.
func (g *Game) Mode() Mode {
	return g.mode
}

// Reset loads configuration and levels and starts a new session at the
// first level.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.err = nil
	g.session = nil

	cfg, err := config.LoadRacer(configPath)
	if err != nil {
		logger.Warn("using default racer config", "err", err)
		cfg = config.DefaultRacerConfig()
	}
	config.ApplyRacerPreset(&cfg, difficultyPreset)
	g.cfg = cfg

	levels, err := g.loadLevels()
	if err != nil {
		g.err = err
		logger.Error("failed to load levels", "dir", levelsDir, "err", err)
		return
	}

	opts := race.Options{
		Config:     cfg,
		Levels:     levels,
		Drivers:    g.drivers(),
		Seed:       runtime.Seed,
		PlayerName: playerName,
		Logger:     logger.With("game", g.ID()),
	}
	if g.mode == ModeTrial {
		opts.Board = g.loadBoard()
		opts.Store = scoreStore
		opts.BoardKey = leaderboard.DefaultKey
	}

	g.session, g.err = race.New(opts)
	if g.err != nil {
		logger.Error("failed to start race", "err", g.err)
	}
}

func (g *Game) drivers() []race.Driver {
	switch g.mode {
	case ModeDuel:
		return []race.Driver{{Name: "Player 1"}, {Name: "Player 2"}}
	case ModeTrial:
		return []race.Driver{{Name: "Player 1"}}
	default:
		return []race.Driver{{Name: "Player 1"}, {Name: "CPU", AI: true}}
	}
}

func (g *Game) levelKind() track.Kind {
	if g.mode == ModeTrial {
		return track.KindTrial
	}
	return track.KindRace
}

func (g *Game) loadLevels() ([]*track.Level, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return track.Load(ctx, levelsDir, g.levelKind())
}

// loadBoard reads the persisted leaderboard, falling back to an empty one.
func (g *Game) loadBoard() *leaderboard.Board {
	size := g.cfg.Trial.LeaderboardSize
	if scoreStore == nil {
		return leaderboard.New(size)
	}
	board, err := leaderboard.Load(scoreStore, leaderboard.DefaultKey, size)
	if err != nil {
		logger.Warn("starting with an empty leaderboard", "err", err)
		return leaderboard.New(size)
	}
	return board
}

// Step advances the game by dt.
func (g *Game) Step(in core.MultiInputFrame, dt time.Duration) core.StepResult {
	if g.session == nil {
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Any(core.ActionPause) {
		g.session.SetPaused(!g.session.Paused())
	}
	if in.Any(core.ActionRestart) {
		g.session.Restart()
		g.session.SetPaused(false)
	}

	events := g.session.Update(in, dt)
	return core.StepResult{State: g.State(), Events: events}
}

// State returns the current game state. Races never end on their own; the
// level sequence wraps after the last level.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{GameOver: g.err != nil}
	}
	return core.GameState{
		Score:  g.session.Entrants()[0].Score,
		Paused: g.session.Paused(),
	}
}

// Session returns the running session, or nil if Reset failed.
func (g *Game) Session() *race.Session {
	return g.session
}

// Err returns the error that prevented the last Reset from starting a race.
func (g *Game) Err() error {
	return g.err
}

// Register the games with the registry
func init() {
	registry.Register("racer", func() registry.Game {
		return New()
	})
	registry.Register("racer_duel", func() registry.Game {
		return NewDuel()
	})
	registry.Register("racer_trial", func() registry.Game {
		return NewTrial()
	})
}
