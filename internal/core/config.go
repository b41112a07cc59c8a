package core

import "time"

// BaseFPS is the frame rate at which per-frame tuning constants are defined.
const BaseFPS = 60

// NominalFrame is the duration of one frame at BaseFPS.
const NominalFrame = time.Second / BaseFPS

// FramesFor converts elapsed time into a frame count at BaseFPS.
// NominalFrame converts to exactly 1.
func FramesFor(dt time.Duration) float64 {
	if dt <= 0 {
		return 0
	}
	return float64(dt) / float64(NominalFrame)
}

// FrameDuration returns the tick interval for a tick rate.
func FrameDuration(tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = BaseFPS
	}
	if tickRate == BaseFPS {
		return NominalFrame
	}
	return time.Second / time.Duration(tickRate)
}

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: BaseFPS,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Player 1 score
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
}

// EventKind names something that happened during a tick.
type EventKind string

const (
	EventLevelWon      EventKind = "level_won"      // a vehicle crossed the finish line
	EventTrialFinished EventKind = "trial_finished" // every collectible gathered in time
	EventTimeExpired   EventKind = "time_expired"
	EventHighScore     EventKind = "high_score"
	EventGameComplete  EventKind = "game_complete" // last level done, sequence wraps
)

// Event is a game outcome the platform may persist or announce.
type Event struct {
	Kind   EventKind
	Player PlayerID
	Level  string
	Score  int
	Scores []int // per-player totals, for game-complete events
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}
