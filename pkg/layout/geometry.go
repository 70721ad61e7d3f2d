package layout

import "math"

// Point is a 2D coordinate.
type Point struct {
	X float64
	Y float64
}

// Size represents dimensions (width and height)
type Size struct {
	Width  float64
	Height float64
}

// Rect represents a rectangular region
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

func (r Rect) Right() float64  { return r.X + r.Width }
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Union returns the smallest rectangle containing both r and o.
func (r Rect) Union(o Rect) Rect {
	x := math.Min(r.X, o.X)
	y := math.Min(r.Y, o.Y)
	return Rect{
		X:      x,
		Y:      y,
		Width:  math.Max(r.Right(), o.Right()) - x,
		Height: math.Max(r.Bottom(), o.Bottom()) - y,
	}
}

// Edges holds the four sides of a box (top, right, bottom, left).
type Edges struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// Margin is an Edges quad where each side may be auto.
// Auto sides carry a zero length until free space is assigned to them.
type Margin struct {
	Edges
	AutoTop    bool
	AutoRight  bool
	AutoBottom bool
	AutoLeft   bool
}

// Limit is an optional upper bound. The zero value is Unbounded, so an
// explicit max of zero stays distinguishable from "no max".
type Limit struct {
	value   float64
	bounded bool
}

// Unbounded is the "no maximum" limit.
var Unbounded = Limit{}

// Bounded returns a limit capped at v.
func Bounded(v float64) Limit {
	return Limit{value: v, bounded: true}
}

// Value returns the bound and whether one is set.
func (l Limit) Value() (float64, bool) {
	return l.value, l.bounded
}

func (l Limit) IsBounded() bool { return l.bounded }

// Clamp returns value raised to min and, when max is bounded, lowered to max.
// The max bound wins when min > max.
func Clamp(value, min float64, max Limit) float64 {
	v := math.Max(value, min)
	if m, ok := max.Value(); ok {
		v = math.Min(v, m)
	}
	return v
}

// ClampZeroMax is Clamp for callers still carrying raw floats where
// max == 0 means unconstrained.
func ClampZeroMax(value, min, max float64) float64 {
	if max == 0 {
		return Clamp(value, min, Unbounded)
	}
	return Clamp(value, min, Bounded(max))
}
