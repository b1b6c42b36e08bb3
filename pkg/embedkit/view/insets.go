package view

import "github.com/veandco/go-sdl2/sdl"

// Insets defines the distance between a pinned view and each edge of its superview.
type Insets struct {
	Top    int32
	Right  int32
	Bottom int32
	Left   int32
}

// UniformInsets creates Insets with the same value on all sides.
func UniformInsets(value int32) Insets {
	return Insets{
		Top:    value,
		Right:  value,
		Bottom: value,
		Left:   value,
	}
}

// FullBleed pins a view edge-to-edge on all four sides.
var FullBleed = UniformInsets(0)

// Inset returns the rectangle left after applying the insets to bounds.
// Width and height never go negative.
func (in Insets) Inset(bounds sdl.Rect) sdl.Rect {
	r := sdl.Rect{
		X: bounds.X + in.Left,
		Y: bounds.Y + in.Top,
		W: bounds.W - in.Left - in.Right,
		H: bounds.H - in.Top - in.Bottom,
	}
	if r.W < 0 {
		r.W = 0
	}
	if r.H < 0 {
		r.H = 0
	}
	return r
}
