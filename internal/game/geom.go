package game

import "math"

// Vec3 is a world-space position or velocity. Ground units keep Y at 0;
// projectiles carry a Y component for their muzzle height.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

func (v Vec3) Scale(f float64) Vec3 { return Vec3{v.X * f, v.Y * f, v.Z * f} }

func (v Vec3) Len() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

// Normalized returns the unit-length vector in v's direction, or the zero
// vector when v is too short to carry a direction.
func (v Vec3) Normalized() Vec3 {
	l := v.Len()
	if l < 1e-9 {
		return Vec3{}
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

// PlanarDist is the horizontal-plane distance between two points. Range
// tests, arrival checks and projectile impacts all ignore height.
func PlanarDist(a, b Vec3) float64 {
	return math.Hypot(b.X-a.X, b.Z-a.Z)
}

// GridCell addresses one tile on the uniform movement grid.
type GridCell struct {
	X, Y int
}

func manhattan(a, b GridCell) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}
