// Package physics moves top-down vehicles over a tile grid: throttle and
// steering, corner-sampled wall collision, and waypoint following.
//
// All per-frame constants are defined at core.BaseFPS. Update functions take
// a frame count so a step of exactly 1 reproduces the per-frame rules.
package physics

import (
	"math"

	"github.com/vovakirdan/tui-racer/internal/core"
)

// Params are a vehicle's tuning constants.
type Params struct {
	MaxSpeed     float64 // forward limit, reverse limit is half of it
	Acceleration float64 // per frame
	Deceleration float64 // drag per frame, also the stop threshold
	TurnSpeed    float64 // radians per frame
}

// Vehicle is the kinematic state of one car.
// Angle 0 faces up (negative Y) and increases clockwise.
type Vehicle struct {
	X, Y          float64 // top-left of the bounding box
	Width, Height float64
	Angle         float64
	Speed         float64

	Params      // current tuning, MaxSpeed may be raised by pickups
	Base Params // tuning restored by Reset
}

// NewVehicle creates a stationary vehicle at start facing up.
func NewVehicle(start core.Vec2, width, height float64, p Params) *Vehicle {
	return &Vehicle{
		X:      start.X,
		Y:      start.Y,
		Width:  width,
		Height: height,
		Params: p,
		Base:   p,
	}
}

// Reset puts the vehicle back at start, stationary, facing up, with its
// base tuning.
func (v *Vehicle) Reset(start core.Vec2) {
	v.X = start.X
	v.Y = start.Y
	v.Angle = 0
	v.Speed = 0
	v.Params = v.Base
}

// Box returns the unrotated bounding box.
func (v *Vehicle) Box() core.Box {
	return core.Box{X: v.X, Y: v.Y, W: v.Width, H: v.Height}
}

// Center returns the center of the bounding box.
func (v *Vehicle) Center() core.Vec2 {
	return core.Vec2{X: v.X + v.Width/2, Y: v.Y + v.Height/2}
}

// MinSpeed returns the reverse speed limit.
func (v *Vehicle) MinSpeed() float64 {
	return -v.MaxSpeed / 2
}

// Heading returns the unit vector the vehicle faces.
func (v *Vehicle) Heading() core.Vec2 {
	return core.Vec2{X: math.Sin(v.Angle), Y: -math.Cos(v.Angle)}
}

// clampSpeed keeps Speed within [MinSpeed, MaxSpeed].
func (v *Vehicle) clampSpeed() {
	v.Speed = core.ClampF(v.Speed, v.MinSpeed(), v.MaxSpeed)
}

// snap zeroes speeds below the drag threshold.
func (v *Vehicle) snap() {
	if math.Abs(v.Speed) < v.Deceleration {
		v.Speed = 0
	}
}
