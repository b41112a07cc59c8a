package physics

import "github.com/vovakirdan/tui-racer/internal/core"

// Walls answers whether a world point lies on a wall.
// track.Tilemap implements it; points outside the grid are not walls.
type Walls interface {
	IsWallAt(x, y float64) bool
}

// Corners returns the four corners of the vehicle's box rotated by its
// angle about its center, in world space.
func (v *Vehicle) Corners() [4]core.Vec2 {
	c := v.Center()
	hw, hh := v.Width/2, v.Height/2
	local := [4]core.Vec2{
		{X: -hw, Y: -hh},
		{X: hw, Y: -hh},
		{X: hw, Y: hh},
		{X: -hw, Y: hh},
	}
	var out [4]core.Vec2
	for i, p := range local {
		out[i] = p.Rotate(v.Angle).Add(c)
	}
	return out
}

// IsBlocked reports whether any rotated corner of the vehicle lies on a wall.
//
// Only the corners are sampled, so a wall thinner than one step of travel,
// or one poking between two corners, is not seen.
func IsBlocked(v *Vehicle, walls Walls) bool {
	for _, p := range v.Corners() {
		if walls.IsWallAt(p.X, p.Y) {
			return true
		}
	}
	return false
}

// moveOrRollback integrates position over frames and undoes the move with
// a hard stop when it ends on a wall.
func moveOrRollback(v *Vehicle, walls Walls, frames float64) {
	oldX, oldY := v.X, v.Y
	h := v.Heading()
	v.X += v.Speed * h.X * frames
	v.Y += v.Speed * h.Y * frames

	if walls != nil && IsBlocked(v, walls) {
		v.X, v.Y = oldX, oldY
		v.Speed = 0
	}
}
