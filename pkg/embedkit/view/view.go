// Package view provides the retained view tree and the controller containment
// tree that embedkit components mutate.
//
// Views form the visual hierarchy: every view has at most one superview and an
// ordered list of subviews, where the last subview is drawn on top. Controllers
// form the containment hierarchy: a controller owns one root view and may adopt
// child controllers. Parent references in both trees are lookups only; a parent
// never keeps a child alive once it has been removed.
//
// All mutation happens on the UI loop (see package loop). Nothing here is safe
// for concurrent use.
package view

import (
	"image"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/atomic"
)

// ID identifies a view or controller instance for the lifetime of the process.
type ID uint64

var lastID atomic.Uint64

func nextID() ID {
	return ID(lastID.Inc())
}

// View is a node in the visual hierarchy.
type View struct {
	Name        string
	Background  sdl.Color   // Fill color, transparent when A is 0
	Text        string      // Label text, if the view displays one
	TextColor   sdl.Color   // Label text color
	LineSpacing float64     // Label line height multiple
	Image       image.Image // Illustration drawn scaled into the frame
	ImagePath   string      // PNG file drawn when Image is nil

	id        ID
	alpha     float64
	hidden    bool
	offset    sdl.Point
	frame     sdl.Rect
	pin       *Insets
	superview *View
	subviews  []*View
}

// New creates a fully opaque, detached view.
func New(name string) *View {
	return &View{
		Name:  name,
		id:    nextID(),
		alpha: 1,
	}
}

func (v *View) ID() ID {
	return v.id
}

// Alpha returns the view's own opacity in the range [0, 1].
func (v *View) Alpha() float64 {
	return v.alpha
}

// SetAlpha sets the view's opacity, clamped to [0, 1].
func (v *View) SetAlpha(alpha float64) {
	switch {
	case alpha < 0:
		alpha = 0
	case alpha > 1:
		alpha = 1
	}
	v.alpha = alpha
}

// EffectiveAlpha returns the opacity the view is drawn with, which is its own
// opacity multiplied by the opacity of every ancestor.
func (v *View) EffectiveAlpha() float64 {
	a := 0.0
	if !v.hidden {
		a = v.alpha
	}
	for s := v.superview; s != nil && a > 0; s = s.superview {
		if s.hidden {
			return 0
		}
		a *= s.alpha
	}
	return a
}

func (v *View) Hidden() bool {
	return v.hidden
}

func (v *View) SetHidden(hidden bool) {
	v.hidden = hidden
}

// Offset returns the translation applied to the view's frame when drawn.
func (v *View) Offset() sdl.Point {
	return v.offset
}

// SetOffset translates the view without touching its layout frame.
func (v *View) SetOffset(p sdl.Point) {
	v.offset = p
}

// Frame returns the view's layout rectangle in its superview's coordinates.
func (v *View) Frame() sdl.Rect {
	return v.frame
}

func (v *View) SetFrame(r sdl.Rect) {
	v.frame = r
	v.Layout()
}

// Bounds returns the view's rectangle in its own coordinates.
func (v *View) Bounds() sdl.Rect {
	return sdl.Rect{W: v.frame.W, H: v.frame.H}
}

// Superview returns the view this one is attached to, or nil.
func (v *View) Superview() *View {
	return v.superview
}

// Subviews returns a copy of the subview list, back to front.
func (v *View) Subviews() []*View {
	out := make([]*View, len(v.subviews))
	copy(out, v.subviews)
	return out
}

// Contains reports whether sub is a direct subview of v.
func (v *View) Contains(sub *View) bool {
	return sub != nil && sub.superview == v
}

// IsDescendant reports whether v is ancestor or one of its descendants.
func (v *View) IsDescendant(ancestor *View) bool {
	for n := v; n != nil; n = n.superview {
		if n == ancestor {
			return true
		}
	}
	return false
}

// AddSubview attaches sub on top of the existing subviews. A view that is
// already attached elsewhere is moved. Adding an ancestor of v is ignored.
func (v *View) AddSubview(sub *View) {
	if sub == nil || v.IsDescendant(sub) {
		return
	}
	if sub.superview != nil {
		sub.RemoveFromSuperview()
	}
	sub.superview = v
	v.subviews = append(v.subviews, sub)
	v.layoutSubview(sub)
}

// BringSubviewToFront moves sub to the top of the drawing order.
func (v *View) BringSubviewToFront(sub *View) {
	if !v.Contains(sub) {
		return
	}
	v.detach(sub)
	v.subviews = append(v.subviews, sub)
}

// RemoveFromSuperview detaches the view. Its constraints go with it.
func (v *View) RemoveFromSuperview() {
	if v.superview == nil {
		return
	}
	v.superview.detach(v)
	v.superview = nil
	v.pin = nil
}

func (v *View) detach(sub *View) {
	for i, s := range v.subviews {
		if s == sub {
			v.subviews = append(v.subviews[:i], v.subviews[i+1:]...)
			return
		}
	}
}

// Pin constrains the view to its superview's edges with the given insets.
// The constraint is applied on every layout pass until the view is removed.
func (v *View) Pin(in Insets) {
	v.pin = &in
	if v.superview != nil {
		v.superview.layoutSubview(v)
	}
}

// Pinned returns the insets the view is constrained with, if any.
func (v *View) Pinned() (Insets, bool) {
	if v.pin == nil {
		return Insets{}, false
	}
	return *v.pin, true
}

// Layout recomputes the frames of pinned subviews, recursively.
func (v *View) Layout() {
	for _, sub := range v.subviews {
		v.layoutSubview(sub)
	}
}

func (v *View) layoutSubview(sub *View) {
	if sub.pin == nil {
		return
	}
	sub.frame = sub.pin.Inset(v.Bounds())
	sub.Layout()
}
