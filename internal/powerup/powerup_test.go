package powerup

import (
	"math/rand"
	"testing"
	"time"

	"github.com/vovakirdan/tui-racer/internal/core"
	"github.com/vovakirdan/tui-racer/internal/physics"
	"github.com/vovakirdan/tui-racer/internal/sched"
)

type openAll bool

func (o openAll) IsOpenAt(x, y float64) bool { return bool(o) }

// leftHalf is open only for x < 400.
type leftHalf struct{}

func (leftHalf) IsOpenAt(x, y float64) bool { return x < 400 }

var arena = physics.Arena{W: 800, H: 600}

func TestTrySpawnCap(t *testing.T) {
	s := NewSpawner(DefaultConfig(), rand.New(rand.NewSource(1)))

	spawned := 0
	for range 50 {
		if s.TrySpawn(openAll(true), arena) {
			spawned++
		}
		if s.Len() > 3 {
			t.Fatalf("pickup count %d exceeds cap", s.Len())
		}
	}
	if spawned != 3 {
		t.Errorf("spawned = %d, expected 3", spawned)
	}
}

func TestTrySpawnGivesUpOnWalls(t *testing.T) {
	s := NewSpawner(DefaultConfig(), rand.New(rand.NewSource(1)))

	if s.TrySpawn(openAll(false), arena) {
		t.Error("TrySpawn() should give up when every draw is a wall")
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, expected 0", s.Len())
	}
}

func TestTrySpawnOnlyOnOpenTiles(t *testing.T) {
	s := NewSpawner(DefaultConfig(), rand.New(rand.NewSource(42)))

	for range 20 {
		s.TrySpawn(leftHalf{}, arena)
		for _, p := range s.Pickups() {
			if p.Box.X >= 400 {
				t.Fatalf("pickup spawned on a wall at %v", p.Box)
			}
			if p.Box.X < 0 || p.Box.Right() > arena.W || p.Box.Y < 0 || p.Box.Bottom() > arena.H {
				t.Fatalf("pickup %v outside arena", p.Box)
			}
		}
		s.Clear()
	}
}

func TestCollect(t *testing.T) {
	s := NewSpawner(DefaultConfig(), rand.New(rand.NewSource(3)))
	s.pickups = []Pickup{
		{Kind: SpeedBoost, Box: core.Box{X: 100, Y: 100, W: 20, H: 20}},
		{Kind: SpeedBoost, Box: core.Box{X: 500, Y: 500, W: 20, H: 20}},
	}

	got := s.Collect(core.Box{X: 110, Y: 90, W: 30, H: 50})
	if len(got) != 1 || got[0].Box.X != 100 {
		t.Fatalf("Collect() = %v, expected the pickup at x=100", got)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, expected 1 left", s.Len())
	}
	if got := s.Collect(core.Box{X: 0, Y: 0, W: 10, H: 10}); len(got) != 0 {
		t.Errorf("Collect() far away = %v, expected none", got)
	}
}

func TestApplyStacksAndReverts(t *testing.T) {
	cfg := DefaultConfig()
	timers := sched.New()
	v := physics.NewVehicle(core.Vec2{}, 30, 50, physics.Params{MaxSpeed: 5, Acceleration: 0.2, Deceleration: 0.1, TurnSpeed: 0.1})
	boost := Pickup{Kind: SpeedBoost}

	Apply(boost, v, timers, "car1", cfg)
	timers.Advance(time.Second)
	Apply(boost, v, timers, "car1", cfg)

	if v.MaxSpeed != 9 {
		t.Fatalf("MaxSpeed = %v, expected 9 with two boosts", v.MaxSpeed)
	}

	timers.Advance(2 * time.Second) // first boost expires at 3s
	if v.MaxSpeed != 7 {
		t.Errorf("MaxSpeed = %v, expected 7 after first revert", v.MaxSpeed)
	}
	timers.Advance(time.Second) // second expires at 4s
	if v.MaxSpeed != 5 {
		t.Errorf("MaxSpeed = %v, expected 5 after both reverts", v.MaxSpeed)
	}
}

func TestApplyRevertCancelledWithOwner(t *testing.T) {
	cfg := DefaultConfig()
	timers := sched.New()
	v := physics.NewVehicle(core.Vec2{}, 30, 50, physics.Params{MaxSpeed: 5})

	Apply(Pickup{Kind: SpeedBoost}, v, timers, "car1", cfg)
	timers.CancelOwner("car1")
	v.Reset(core.Vec2{})
	timers.Advance(5 * time.Second)

	if v.MaxSpeed != 5 {
		t.Errorf("MaxSpeed = %v, a cancelled revert must not touch the reset vehicle", v.MaxSpeed)
	}
}

func TestKindString(t *testing.T) {
	if SpeedBoost.String() != "Speed Boost" {
		t.Errorf("String() = %q", SpeedBoost.String())
	}
}
