package physics

import (
	"math"

	"github.com/vovakirdan/tui-racer/internal/core"
)

// Controls are the held inputs of a human driver.
type Controls struct {
	Accelerate bool
	Brake      bool
	Left       bool
	Right      bool
}

// ControlsFrom reads driving controls from an input frame.
func ControlsFrom(in core.InputFrame) Controls {
	return Controls{
		Accelerate: in.Has(core.ActionUp),
		Brake:      in.Has(core.ActionDown),
		Left:       in.Has(core.ActionLeft),
		Right:      in.Has(core.ActionRight),
	}
}

// Arena is the drivable rectangle anchored at the origin.
type Arena struct {
	W, H float64
}

// Env is what a vehicle update needs to know about the world.
type Env struct {
	Walls  Walls
	Arena  Arena
	Frozen bool // pre-race countdown
}

// Advance applies one update of a human-driven vehicle: throttle, steering,
// movement with wall rollback, then the arena clamp.
func Advance(v *Vehicle, c Controls, env Env, frames float64) {
	if env.Frozen {
		v.Speed = 0
		return
	}

	switch {
	case c.Accelerate && v.Speed < v.MaxSpeed:
		v.Speed = math.Min(v.Speed+v.Acceleration*frames, v.MaxSpeed)
	case c.Brake && v.Speed > v.MinSpeed():
		v.Speed = math.Max(v.Speed-v.Acceleration*frames, v.MinSpeed())
	default:
		drag(v, frames)
	}
	v.clampSpeed()
	v.snap()

	if v.Speed != 0 {
		if c.Left {
			v.Angle -= v.TurnSpeed * frames
		}
		if c.Right {
			v.Angle += v.TurnSpeed * frames
		}
	}

	moveOrRollback(v, env.Walls, frames)

	if env.Arena.W > 0 && env.Arena.H > 0 {
		v.X = core.ClampF(v.X, 0, env.Arena.W-v.Width)
		v.Y = core.ClampF(v.Y, 0, env.Arena.H-v.Height)
	}
}

// drag moves speed toward zero without crossing it.
func drag(v *Vehicle, frames float64) {
	step := v.Deceleration * frames
	switch {
	case v.Speed > 0:
		v.Speed = math.Max(v.Speed-step, 0)
	case v.Speed < 0:
		v.Speed = math.Min(v.Speed+step, 0)
	}
}
