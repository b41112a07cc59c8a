// Package powerup spawns pickups on open track and applies their timed
// effects to vehicles.
package powerup

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-racer/internal/core"
	"github.com/vovakirdan/tui-racer/internal/physics"
	"github.com/vovakirdan/tui-racer/internal/sched"
)

// Kind is the effect a pickup grants.
type Kind int

const (
	SpeedBoost Kind = iota
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case SpeedBoost:
		return "Speed Boost"
	default:
		return "Unknown"
	}
}

// Pickup is one collectible power-up lying on the track.
type Pickup struct {
	Kind Kind
	Box  core.Box
}

// Config holds spawner and effect tuning.
type Config struct {
	MaxActive int           // concurrent pickups on the track
	Attempts  int           // random draws per spawn call
	Size      float64       // pickup edge length
	Boost     float64       // MaxSpeed bonus
	Duration  time.Duration // how long one boost lasts
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		MaxActive: 3,
		Attempts:  100,
		Size:      20,
		Boost:     2,
		Duration:  3 * time.Second,
	}
}

// Tiles answers whether a world point lies on open, in-bounds track.
type Tiles interface {
	IsOpenAt(x, y float64) bool
}

// Spawner owns the pickups of one level.
type Spawner struct {
	cfg     Config
	rng     *rand.Rand
	pickups []Pickup
}

// NewSpawner creates an empty spawner drawing positions from rng.
func NewSpawner(cfg Config, rng *rand.Rand) *Spawner {
	return &Spawner{cfg: cfg, rng: rng}
}

// TrySpawn places at most one pickup when fewer than MaxActive exist.
// Up to Attempts positions are drawn inside the arena minus the pickup size;
// the first whose top-left point lies on an open tile is used. When every
// draw lands on a wall nothing spawns this call.
func (s *Spawner) TrySpawn(tiles Tiles, arena physics.Arena) bool {
	if len(s.pickups) >= s.cfg.MaxActive {
		return false
	}
	for range s.cfg.Attempts {
		x := s.rng.Float64() * (arena.W - s.cfg.Size)
		y := s.rng.Float64() * (arena.H - s.cfg.Size)
		if !tiles.IsOpenAt(x, y) {
			continue
		}
		s.pickups = append(s.pickups, Pickup{
			Kind: SpeedBoost,
			Box:  core.Box{X: x, Y: y, W: s.cfg.Size, H: s.cfg.Size},
		})
		return true
	}
	return false
}

// Collect removes and returns every pickup overlapping box.
func (s *Spawner) Collect(box core.Box) []Pickup {
	var got []Pickup
	kept := s.pickups[:0]
	for _, p := range s.pickups {
		if p.Box.Intersects(box) {
			got = append(got, p)
			continue
		}
		kept = append(kept, p)
	}
	s.pickups = kept
	return got
}

// Pickups returns a copy of the pickups on the track.
func (s *Spawner) Pickups() []Pickup {
	return append([]Pickup(nil), s.pickups...)
}

// Len returns the number of pickups on the track.
func (s *Spawner) Len() int {
	return len(s.pickups)
}

// Clear removes every pickup.
func (s *Spawner) Clear() {
	s.pickups = s.pickups[:0]
}

// Apply grants a pickup's effect to v and schedules its revert under owner.
// Boosts stack; each one reverts on its own timer.
func Apply(p Pickup, v *physics.Vehicle, timers *sched.Scheduler, owner sched.Owner, cfg Config) {
	switch p.Kind {
	case SpeedBoost:
		v.MaxSpeed += cfg.Boost
		timers.After(owner, cfg.Duration, func() {
			v.MaxSpeed -= cfg.Boost
		})
	}
}
