package dynamo

import "math"

// TwoPi is a full turn in radians.
const TwoPi = 2 * math.Pi

// Vec2 is a 2D vector value.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for Vec2{x, y}.
func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }

func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Set assigns both components in place.
func (v *Vec2) Set(x, y float64) {
	v.X = x
	v.Y = y
}

// IsFinite reports whether both components are neither NaN nor Inf.
func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// Bounds is the viewport in world coordinates, origin at the top-left corner
// with y growing downwards.
type Bounds struct {
	Width, Height float64
}

// Contains reports whether p lies inside the viewport, edges included.
func (b Bounds) Contains(p Vec2) bool {
	return p.X >= 0 && p.X <= b.Width && p.Y >= 0 && p.Y <= b.Height
}

// Center returns the middle of the viewport.
func (b Bounds) Center() Vec2 {
	return Vec2{b.Width / 2, b.Height / 2}
}

// Remap linearly maps v from [a0, a1] onto [b0, b1] without clamping.
func Remap(v, a0, a1, b0, b1 float64) float64 {
	return b0 + (v-a0)*(b1-b0)/(a1-a0)
}

// WrapAngle folds a into [0, 2π). The first fold mirrors (a + 2π) mod 2π; the
// extra checks catch inputs below -2π and rounding that lands exactly on 2π.
func WrapAngle(a float64) float64 {
	w := math.Mod(a+TwoPi, TwoPi)
	if w < 0 {
		w += TwoPi
	}
	if w >= TwoPi {
		w -= TwoPi
	}
	return w
}
