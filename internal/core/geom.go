// Package core provides fundamental types and utilities for the jump rope engine.
// It contains no external dependencies (especially no Bubble Tea or Ebiten) to keep
// game logic pure and testable.
package core

import "math"

// Rect represents an integer cell rectangle used by the character screen.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Vec2 is a point or offset in logical screen coordinates.
type Vec2 struct {
	X, Y float64
}

// Dist returns the euclidean distance between two points.
func (v Vec2) Dist(o Vec2) float64 {
	return math.Hypot(v.X-o.X, v.Y-o.Y)
}

// Bounds is an axis-aligned bounding box in logical coordinates.
// Y grows downward, so Top < Bottom.
type Bounds struct {
	Left, Right, Top, Bottom float64
}

// Box is a center-anchored axis-aligned box.
type Box struct {
	X, Y          float64 // Center
	Width, Height float64
}

// Bounds converts the box to edge coordinates.
func (b Box) Bounds() Bounds {
	return Bounds{
		Left:   b.X - b.Width/2,
		Right:  b.X + b.Width/2,
		Top:    b.Y - b.Height/2,
		Bottom: b.Y + b.Height/2,
	}
}

// Intersects reports whether two bounds strictly overlap.
// Touching edges do not count as overlap, and the test is symmetric.
func (a Bounds) Intersects(b Bounds) bool {
	return a.Left < b.Right &&
		a.Right > b.Left &&
		a.Top < b.Bottom &&
		a.Bottom > b.Top
}

// Circle is a center/radius pair used for pickups.
type Circle struct {
	X, Y   float64
	Radius float64
}

// Overlaps reports whether the distance between centers is below the sum of radii.
func (c Circle) Overlaps(o Circle) bool {
	d := Vec2{c.X, c.Y}.Dist(Vec2{o.X, o.Y})
	return d < c.Radius+o.Radius
}

// ContainsPoint reports whether p lies strictly inside the circle.
func (c Circle) ContainsPoint(p Vec2) bool {
	return Circle{X: p.X, Y: p.Y}.Overlaps(c)
}

// Contact describes a landing from above.
type Contact struct {
	Penetration float64 // How far the mover's bottom sank below the surface top
}

// LandingContact tests whether mover, travelling with vertical velocity vy,
// lands on surface. Only downward motion (vy > 0) over an overlapping box
// counts; rising or resting movers never produce a contact.
func LandingContact(mover, surface Box, vy float64) (Contact, bool) {
	mb, sb := mover.Bounds(), surface.Bounds()
	if !mb.Intersects(sb) || vy <= 0 {
		return Contact{}, false
	}
	return Contact{Penetration: mb.Bottom - sb.Top}, true
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// WrapF maps val into [0, m). A non-positive modulus returns 0.
func WrapF(val, m float64) float64 {
	if m <= 0 {
		return 0
	}
	r := math.Mod(val, m)
	if r < 0 {
		r += m
	}
	if r >= m {
		r = 0 // A tiny negative remainder rounds up to m
	}
	return r
}

// Body is a moving entity as seen by the registries.
type Body struct {
	Box
	VelocityY    float64 // Positive while moving down
	PickupRadius float64
}

// Axis is the direction a camera scrolls along.
type Axis int

const (
	AxisVertical Axis = iota
	AxisHorizontal
)

func (a Axis) String() string {
	if a == AxisHorizontal {
		return "horizontal"
	}
	return "vertical"
}

// ParseAxis maps a config name to an axis. Anything but "horizontal" is vertical.
func ParseAxis(s string) Axis {
	if s == "horizontal" {
		return AxisHorizontal
	}
	return AxisVertical
}

// Along returns the coordinate of (x, y) on the axis.
func (a Axis) Along(x, y float64) float64 {
	if a == AxisHorizontal {
		return x
	}
	return y
}
