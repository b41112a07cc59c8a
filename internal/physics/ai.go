package physics

import (
	"math"

	"github.com/vovakirdan/tui-racer/internal/core"
)

// DefaultCaptureRadius is the distance at which a waypoint counts as reached.
const DefaultCaptureRadius = 50

// Navigator is a waypoint follower's route and progress.
type Navigator struct {
	Waypoints     []core.Vec2
	Next          int
	CaptureRadius float64
}

// NewNavigator starts a route at its first waypoint.
func NewNavigator(waypoints []core.Vec2) *Navigator {
	return &Navigator{
		Waypoints:     waypoints,
		CaptureRadius: DefaultCaptureRadius,
	}
}

// Reset restarts the route at its first waypoint.
func (n *Navigator) Reset() {
	n.Next = 0
}

// Target returns the waypoint currently steered toward.
func (n *Navigator) Target() (core.Vec2, bool) {
	if len(n.Waypoints) == 0 {
		return core.Vec2{}, false
	}
	return n.Waypoints[n.Next], true
}

// AdvanceAI applies one update of a waypoint-driven vehicle.
//
// Distance is measured from the vehicle's top-left position. Reaching the
// target moves the route on for the next update; this update still steers
// at the old target. Steering is a fixed turnSpeed step toward the shorter
// side; a difference of exactly zero turns counter-clockwise. The AI always
// accelerates, never brakes, and is not clamped to the arena.
func AdvanceAI(v *Vehicle, nav *Navigator, env Env, frames float64) {
	if env.Frozen {
		v.Speed = 0
		return
	}

	if target, ok := nav.Target(); ok {
		d := target.Sub(core.Vec2{X: v.X, Y: v.Y})
		if d.Len() < nav.CaptureRadius {
			nav.Next = (nav.Next + 1) % len(nav.Waypoints)
		}

		targetAngle := math.Atan2(d.Y, d.X) + math.Pi/2
		if core.NormalizeAngle(targetAngle-v.Angle) > 0 {
			v.Angle += v.TurnSpeed * frames
		} else {
			v.Angle -= v.TurnSpeed * frames
		}
	}

	if v.Speed < v.MaxSpeed {
		v.Speed = math.Min(v.Speed+v.Acceleration*frames, v.MaxSpeed)
	}
	v.clampSpeed()

	moveOrRollback(v, env.Walls, frames)
}
