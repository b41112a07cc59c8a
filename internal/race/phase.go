// Package race runs the level state machine of a racing session: countdown,
// racing, outcome and reset across an ordered list of levels.
package race

// Phase is a state of the level state machine.
type Phase int

const (
	PhaseCountdown     Phase = iota // vehicles frozen, counting down
	PhaseRacing                     // controllers run, completion checked every frame
	PhaseLevelComplete              // outcome shown, waiting for the reset delay
	PhaseTimeExpired                // trial clock ran out, waiting for the reset delay
	PhaseReset                      // transient, repositioning for the next countdown
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseCountdown:
		return "countdown"
	case PhaseRacing:
		return "racing"
	case PhaseLevelComplete:
		return "level_complete"
	case PhaseTimeExpired:
		return "time_expired"
	case PhaseReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Frozen reports whether vehicles are held still during the phase.
func (p Phase) Frozen() bool {
	return p != PhaseRacing
}

// OutcomeKind classifies how a level ended.
type OutcomeKind int

const (
	OutcomeNone OutcomeKind = iota
	OutcomeWin
	OutcomeTrialFinished
	OutcomeTimeExpired
)

// Outcome describes the end of the current level while its result is shown.
type Outcome struct {
	Kind         OutcomeKind
	Winner       int  // entrant index for wins and finished trials
	Score        int  // remaining seconds for finished trials
	Rank         int  // leaderboard rank, 0 when not a high score
	GameComplete bool // the last level was done and the sequence wrapped
	Scores       []int
	Message      string
}
