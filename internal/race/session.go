package race

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-racer/internal/config"
	"github.com/vovakirdan/tui-racer/internal/core"
	"github.com/vovakirdan/tui-racer/internal/leaderboard"
	"github.com/vovakirdan/tui-racer/internal/physics"
	"github.com/vovakirdan/tui-racer/internal/powerup"
	"github.com/vovakirdan/tui-racer/internal/sched"
	"github.com/vovakirdan/tui-racer/internal/track"
)

// ownerRace owns the countdown, trial clock and result delay timers.
const ownerRace sched.Owner = "race"

var (
	// ErrNoLevels is returned when a session is created without levels.
	ErrNoLevels = errors.New("race: no levels")
	// ErrNoDrivers is returned when a session is created without drivers.
	ErrNoDrivers = errors.New("race: no drivers")
)

// Driver describes who controls one seat.
type Driver struct {
	Name string
	AI   bool
}

// Entrant is one seat in the session: a vehicle, its controller and score.
type Entrant struct {
	Player  core.PlayerID
	Name    string
	AI      bool
	Vehicle *physics.Vehicle
	Nav     *physics.Navigator // nil for human drivers
	Score   int
}

// Collectible is a trial pickup with its per-run state.
type Collectible struct {
	Box       core.Box
	Collected bool
}

// Options configures a session.
type Options struct {
	Config     config.RacerConfig
	Levels     []*track.Level
	Drivers    []Driver
	Seed       int64
	Board      *leaderboard.Board // loaded leaderboard, created empty when nil
	Store      leaderboard.Store  // optional, receives the board on every high score
	BoardKey   string
	PlayerName string // name recorded on the leaderboard
	Logger     *log.Logger
}

// Session is the simulation context of one racing game. It owns the
// vehicles, timers and level progress; nothing is shared between sessions.
type Session struct {
	cfg     config.RacerConfig
	levels  []*track.Level
	index   int // level on the track
	next    int // level the next reset loads
	phase   Phase
	paused  bool
	frame   int64
	arena   physics.Arena
	pcfg    powerup.Config
	timers  *sched.Scheduler
	spawner *powerup.Spawner
	diff    *config.DifficultyManager

	entrants     []*Entrant
	collectibles []Collectible
	countdown    int
	timeLeft     int
	outcome      Outcome
	events       []core.Event

	board      *leaderboard.Board
	store      leaderboard.Store
	boardKey   string
	playerName string
	log        *log.Logger
}

// New creates a session positioned at the first level's countdown.
func New(opts Options) (*Session, error) {
	if len(opts.Levels) == 0 {
		return nil, ErrNoLevels
	}
	if len(opts.Drivers) == 0 {
		return nil, ErrNoDrivers
	}
	for _, l := range opts.Levels {
		if err := l.Validate(); err != nil {
			return nil, fmt.Errorf("race: %w", err)
		}
	}

	cfg := opts.Config
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	board := opts.Board
	if board == nil {
		board = leaderboard.New(cfg.Trial.LeaderboardSize)
	}
	key := opts.BoardKey
	if key == "" {
		key = leaderboard.DefaultKey
	}
	name := opts.PlayerName
	if name == "" {
		name = cfg.Trial.PlayerName
	}

	pcfg := powerup.Config{
		MaxActive: cfg.PowerUps.MaxActive,
		Attempts:  cfg.PowerUps.SpawnAttempts,
		Size:      cfg.PowerUps.Size,
		Boost:     cfg.PowerUps.SpeedBoost,
		Duration:  cfg.PowerUps.Duration(),
	}

	s := &Session{
		cfg:        cfg,
		levels:     opts.Levels,
		arena:      physics.Arena{W: cfg.Arena.Width, H: cfg.Arena.Height},
		pcfg:       pcfg,
		timers:     sched.New(),
		spawner:    powerup.NewSpawner(pcfg, rand.New(rand.NewSource(opts.Seed))),
		diff:       config.NewDifficultyManager(cfg.Difficulty),
		board:      board,
		store:      opts.Store,
		boardKey:   key,
		playerName: name,
		log:        logger,
	}

	params := physics.Params{
		MaxSpeed:     cfg.Vehicle.MaxSpeed,
		Acceleration: cfg.Vehicle.Acceleration,
		Deceleration: cfg.Vehicle.Deceleration,
		TurnSpeed:    cfg.Vehicle.TurnSpeed,
	}
	for i, d := range opts.Drivers {
		e := &Entrant{
			Player: core.PlayerID(i + 1),
			Name:   d.Name,
			AI:     d.AI,
			Vehicle: physics.NewVehicle(opts.Levels[0].Start(i),
				cfg.Vehicle.Width, cfg.Vehicle.Height, params),
		}
		if e.Name == "" {
			e.Name = e.Player.String()
		}
		if d.AI {
			e.Nav = physics.NewNavigator(nil)
			if cfg.AI.CaptureRadius > 0 {
				e.Nav.CaptureRadius = cfg.AI.CaptureRadius
			}
		}
		s.entrants = append(s.entrants, e)
	}

	s.Reset()
	return s, nil
}

// Update advances the session by dt using the given inputs and returns the
// events that happened. A paused session does not move, and neither do
// its timers.
func (s *Session) Update(in core.MultiInputFrame, dt time.Duration) []core.Event {
	if s.paused {
		return nil
	}
	s.frame++
	s.events = nil

	s.timers.Advance(dt)

	frames := core.FramesFor(dt)
	level := s.Level()
	env := physics.Env{Walls: level.Map, Arena: s.arena, Frozen: s.phase.Frozen()}
	for _, e := range s.entrants {
		if e.AI {
			physics.AdvanceAI(e.Vehicle, e.Nav, env, frames)
		} else {
			physics.Advance(e.Vehicle, physics.ControlsFrom(in.Player(e.Player)), env, frames)
		}
	}

	if s.cfg.PowerUps.Enabled && (s.phase == PhaseCountdown || s.phase == PhaseRacing) {
		s.spawner.TrySpawn(level.Map, s.arena)
	}

	if s.phase == PhaseRacing {
		if s.cfg.PowerUps.Enabled {
			for _, e := range s.entrants {
				for _, p := range s.spawner.Collect(e.Vehicle.Box()) {
					powerup.Apply(p, e.Vehicle, s.timers, vehicleOwner(e.Player), s.pcfg)
					s.log.Debug("power-up collected", "player", e.Name, "kind", p.Kind, "max_speed", e.Vehicle.MaxSpeed)
				}
			}
		}
		s.checkCompletion()
	}

	events := s.events
	s.events = nil
	return events
}

// checkCompletion applies the current level's win condition.
func (s *Session) checkCompletion() {
	level := s.Level()
	switch level.Kind {
	case track.KindRace:
		for i, e := range s.entrants {
			if e.Vehicle.Box().Intersects(level.Finish) {
				s.win(i)
				return
			}
		}
	case track.KindTrial:
		remaining := 0
		for i := range s.collectibles {
			c := &s.collectibles[i]
			if c.Collected {
				continue
			}
			for _, e := range s.entrants {
				if e.Vehicle.Box().Intersects(c.Box) {
					c.Collected = true
					break
				}
			}
			if !c.Collected {
				remaining++
			}
		}
		if remaining == 0 {
			s.finishTrial()
		}
	}
}

// win records a finish-line victory for entrant i.
func (s *Session) win(i int) {
	e := s.entrants[i]
	e.Score++
	s.phase = PhaseLevelComplete
	s.outcome = Outcome{Kind: OutcomeWin, Winner: i, Message: e.Name + " wins!"}
	s.emit(core.Event{Kind: core.EventLevelWon, Player: e.Player, Level: s.Level().ID, Score: e.Score})
	s.log.Info("level won", "level", s.Level().ID, "player", e.Name, "score", e.Score)
	s.advanceLevel()
}

// finishTrial records the remaining time as the trial score.
func (s *Session) finishTrial() {
	level := s.Level()
	e := s.entrants[0]
	score := s.timeLeft
	e.Score += score
	s.timers.CancelOwner(ownerRace)
	s.phase = PhaseLevelComplete
	s.outcome = Outcome{
		Kind:    OutcomeTrialFinished,
		Winner:  0,
		Score:   score,
		Message: fmt.Sprintf("All collected! Score: %d", score),
	}
	s.emit(core.Event{Kind: core.EventTrialFinished, Player: e.Player, Level: level.ID, Score: score})
	s.log.Info("trial finished", "level", level.ID, "score", score)

	if rank, ok := s.board.Insert(level.ID, leaderboard.Entry{Name: s.playerName, Score: score}); ok {
		s.outcome.Rank = rank
		s.outcome.Message += fmt.Sprintf(" New high score #%d!", rank)
		s.emit(core.Event{Kind: core.EventHighScore, Player: e.Player, Level: level.ID, Score: score})
		s.log.Info("high score", "level", level.ID, "rank", rank, "score", score)
		if s.store != nil {
			if err := s.board.Save(s.store, s.boardKey); err != nil {
				s.log.Warn("failed to save leaderboard", "err", err)
			}
		}
	}
	s.advanceLevel()
}

// expire ends a trial whose clock ran out.
func (s *Session) expire() {
	s.phase = PhaseTimeExpired
	s.outcome = Outcome{Kind: OutcomeTimeExpired, Message: "Time's up!"}
	s.emit(core.Event{Kind: core.EventTimeExpired, Player: s.entrants[0].Player, Level: s.Level().ID})
	s.log.Info("time expired", "level", s.Level().ID)
	if s.cfg.Trial.RetryOnTimeout {
		s.scheduleReset()
		return
	}
	s.advanceLevel()
}

// advanceLevel moves the level index on, wrapping with a full score reset
// after the last level, and schedules the reset into the next countdown.
func (s *Session) advanceLevel() {
	s.next = s.index + 1
	if s.next >= len(s.levels) {
		s.next = 0
		scores := s.Scores()
		s.outcome.GameComplete = true
		s.outcome.Scores = scores
		s.outcome.Message += " Game complete! Final score: " + s.formatScores(scores)
		s.emit(core.Event{Kind: core.EventGameComplete, Scores: scores})
		s.log.Info("game complete", "scores", scores)
		for _, e := range s.entrants {
			e.Score = 0
		}
	}
	s.scheduleReset()
}

func (s *Session) scheduleReset() {
	s.timers.After(ownerRace, s.cfg.Race.ResultDelay(), s.Reset)
}

func (s *Session) formatScores(scores []int) string {
	parts := make([]string, len(s.entrants))
	for i, e := range s.entrants {
		parts[i] = fmt.Sprintf("%s - %d", e.Name, scores[i])
	}
	return strings.Join(parts, ", ")
}

// Reset loads the pending level: it repositions every vehicle at the
// level's start, clears pickups and collectibles, cancels all pending
// timers and restarts the countdown. Calling it twice in a row leaves the
// same state.
func (s *Session) Reset() {
	s.phase = PhaseReset
	s.index = s.next
	s.timers.CancelAll()
	s.spawner.Clear()

	level := s.Level()
	for i, e := range s.entrants {
		if e.AI {
			e.Vehicle.Base.MaxSpeed = s.diff.AIMaxSpeed(s.cfg.Vehicle.MaxSpeed, s.index)
			e.Nav.Waypoints = level.Waypoints
			e.Nav.Reset()
		}
		e.Vehicle.Reset(level.Start(i))
	}

	s.collectibles = s.collectibles[:0]
	for _, p := range level.Collectibles {
		size := s.cfg.Trial.CollectibleSize
		s.collectibles = append(s.collectibles, Collectible{Box: core.Box{X: p.X, Y: p.Y, W: size, H: size}})
	}
	s.timeLeft = level.TimeLimit
	s.outcome = Outcome{}

	s.log.Debug("level reset", "level", level.ID, "index", s.index)
	s.startCountdown()
}

// Restart goes back to the first level with zero scores.
func (s *Session) Restart() {
	s.next = 0
	for _, e := range s.entrants {
		e.Score = 0
	}
	s.Reset()
}

func (s *Session) startCountdown() {
	s.phase = PhaseCountdown
	s.countdown = s.cfg.Race.CountdownTicks
	if s.countdown <= 0 {
		s.startRacing()
		return
	}
	s.timers.Every(ownerRace, s.cfg.Race.CountdownInterval(), func() bool {
		s.countdown--
		if s.countdown > 0 {
			return true
		}
		s.startRacing()
		return false
	})
}

func (s *Session) startRacing() {
	s.phase = PhaseRacing
	s.log.Debug("race started", "level", s.Level().ID)
	if s.Level().Kind != track.KindTrial {
		return
	}
	s.timers.Every(ownerRace, s.cfg.Trial.Tick(), func() bool {
		if s.phase != PhaseRacing {
			return false
		}
		s.timeLeft--
		if s.timeLeft > 0 {
			return true
		}
		s.timeLeft = 0
		s.expire()
		return false
	})
}

func (s *Session) emit(ev core.Event) {
	s.events = append(s.events, ev)
}

func vehicleOwner(p core.PlayerID) sched.Owner {
	return sched.Owner(fmt.Sprintf("vehicle-%d", p))
}

// SetPaused pauses or resumes the simulation and its timers.
func (s *Session) SetPaused(p bool) { s.paused = p }

// Paused reports whether the session is paused.
func (s *Session) Paused() bool { return s.paused }

// Phase returns the current state machine phase.
func (s *Session) Phase() Phase { return s.phase }

// Level returns the level being played.
func (s *Session) Level() *track.Level { return s.levels[s.index] }

// LevelIndex returns the zero-based index of the level on the track.
func (s *Session) LevelIndex() int { return s.index }

// NextLevelIndex returns the level the next reset loads. It differs from
// LevelIndex only while an outcome is shown.
func (s *Session) NextLevelIndex() int { return s.next }

// LevelCount returns the number of levels in the sequence.
func (s *Session) LevelCount() int { return len(s.levels) }

// Entrants returns the seats in player order.
func (s *Session) Entrants() []*Entrant { return s.entrants }

// Countdown returns the countdown ticks left.
func (s *Session) Countdown() int { return s.countdown }

// TimeLeft returns the trial seconds left.
func (s *Session) TimeLeft() int { return s.timeLeft }

// Collectibles returns the trial collectibles of the level.
func (s *Session) Collectibles() []Collectible { return s.collectibles }

// Pickups returns the power-ups lying on the track.
func (s *Session) Pickups() []powerup.Pickup { return s.spawner.Pickups() }

// Outcome returns the result being shown, if any.
func (s *Session) Outcome() Outcome { return s.outcome }

// Board returns the time-trial leaderboard.
func (s *Session) Board() *leaderboard.Board { return s.board }

// Frame returns the number of unpaused updates run.
func (s *Session) Frame() int64 { return s.frame }

// Now returns the session's simulated clock.
func (s *Session) Now() time.Duration { return s.timers.Now() }

// PendingTimers returns the number of timers waiting to fire.
func (s *Session) PendingTimers() int { return s.timers.Len() }

// Scores returns a copy of the entrants' scores in player order.
func (s *Session) Scores() []int {
	out := make([]int, len(s.entrants))
	for i, e := range s.entrants {
		out[i] = e.Score
	}
	return out
}
