package embedkit

import (
	"time"

	"github.com/BrandonKowalski/embedkit/pkg/embedkit/constants"
	"github.com/BrandonKowalski/embedkit/pkg/embedkit/internal"
	"github.com/BrandonKowalski/embedkit/pkg/embedkit/loop"
	"github.com/BrandonKowalski/embedkit/pkg/embedkit/view"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/atomic"
)

// Transition swaps the outgoing view of an EmbeddingController for the
// incoming one.
//
// Prepare is called once, before Execute, with next already attached to the
// embedding region. Execute must call onComplete exactly once, on the UI loop,
// with completed set to false if Cancel was called before completion.
// Cancel is advisory: it never stops a running animation early.
type Transition interface {
	Prepare(current, next *view.View)
	Execute(onComplete func(completed bool))
	Cancel()
}

// TransitionOption configures a transition built on BaseTransition.
type TransitionOption func(*BaseTransition)

// WithPrepareHook runs fn at the end of Prepare, for extra setup such as
// hiding chrome that animates alongside the transition.
func WithPrepareHook(fn func()) TransitionOption {
	return func(b *BaseTransition) {
		b.prepareHook = fn
	}
}

// WithExecuteHook runs fn when Execute starts, alongside the transition's
// own property changes.
func WithExecuteHook(fn func()) TransitionOption {
	return func(b *BaseTransition) {
		b.executeHook = fn
	}
}

// BaseTransition holds the state every strategy shares: the view pair, the
// hooks, the cancel flag and the exactly-once completion report. Custom
// strategies embed it and implement Execute.
type BaseTransition struct {
	current     *view.View
	next        *view.View
	prepareHook func()
	executeHook func()
	cancelled   atomic.Bool
	reported    bool
}

// Apply configures b with opts.
func (b *BaseTransition) Apply(opts ...TransitionOption) {
	for _, opt := range opts {
		opt(b)
	}
}

// Prepare stores the view pair and runs the prepare hook.
func (b *BaseTransition) Prepare(current, next *view.View) {
	b.current = current
	b.next = next
	if b.prepareHook != nil {
		b.prepareHook()
	}
}

// Views returns the pair passed to Prepare.
func (b *BaseTransition) Views() (current, next *view.View) {
	return b.current, b.next
}

func (b *BaseTransition) Cancel() {
	b.cancelled.Store(true)
}

// Cancelled reports whether Cancel has been called.
func (b *BaseTransition) Cancelled() bool {
	return b.cancelled.Load()
}

// RunExecuteHook runs the execute hook, if any. Call it when Execute starts.
func (b *BaseTransition) RunExecuteHook() {
	if b.executeHook != nil {
		b.executeHook()
	}
}

// Report calls onComplete with !Cancelled() the first time it is called and
// ignores later calls.
func (b *BaseTransition) Report(onComplete func(completed bool)) {
	if b.reported {
		return
	}
	b.reported = true
	onComplete(!b.cancelled.Load())
}

// InstantTransition swaps the views immediately and completes synchronously.
type InstantTransition struct {
	BaseTransition
}

func NewInstantTransition(opts ...TransitionOption) *InstantTransition {
	t := &InstantTransition{}
	t.Apply(opts...)
	return t
}

func (t *InstantTransition) Execute(onComplete func(completed bool)) {
	if t.current != nil {
		t.current.SetAlpha(0)
	}
	if t.next != nil {
		t.next.SetAlpha(1)
	}
	t.RunExecuteHook()
	t.Report(onComplete)
}

// CrossfadeTransition fades the outgoing view out while fading the incoming
// view in.
type CrossfadeTransition struct {
	BaseTransition
	loop     *loop.Loop
	duration time.Duration
}

// NewCrossfadeTransition creates a crossfade animated on l. A zero duration
// uses constants.DefaultCrossfadeDuration. Without a loop the crossfade
// jumps to its final state when executed.
func NewCrossfadeTransition(l *loop.Loop, duration time.Duration, opts ...TransitionOption) *CrossfadeTransition {
	if duration <= 0 {
		duration = constants.DefaultCrossfadeDuration
	}
	t := &CrossfadeTransition{loop: l, duration: duration}
	t.Apply(opts...)
	return t
}

func (t *CrossfadeTransition) Duration() time.Duration {
	return t.duration
}

func (t *CrossfadeTransition) Prepare(current, next *view.View) {
	t.BaseTransition.Prepare(current, next)
	if current != nil {
		current.SetAlpha(1)
	}
	if next != nil {
		next.SetAlpha(0)
	}
}

func (t *CrossfadeTransition) Execute(onComplete func(completed bool)) {
	t.RunExecuteHook()
	step := func(p float64) {
		// a superseded crossfade stops touching views that may have been
		// adopted by a newer transition
		if t.Cancelled() {
			return
		}
		if t.current != nil {
			t.current.SetAlpha(1 - p)
		}
		if t.next != nil {
			t.next.SetAlpha(p)
		}
	}
	animate(t.loop, loop.Animation{
		Duration: t.duration,
		Curve:    loop.EaseInOut,
		Step:     step,
		Done:     func() { t.Report(onComplete) },
	})
}

// animate runs a on l, or steps it straight to the end when l is nil.
func animate(l *loop.Loop, a loop.Animation) {
	if l != nil {
		l.Animate(a)
		return
	}
	internal.GetInternalLogger().Warn("No loop for animated transition, finishing immediately")
	if a.Step != nil {
		a.Step(1)
	}
	if a.Done != nil {
		a.Done()
	}
}

// SlideDirection is the direction of travel of a SlideTransition.
type SlideDirection int

const (
	SlideForward SlideDirection = iota // Incoming view enters from the right
	SlideReverse                       // Incoming view enters from the left
)

// SlideTransition moves the incoming view in from one edge of the embedding
// region while pushing the outgoing view out of the opposite edge.
type SlideTransition struct {
	BaseTransition
	loop      *loop.Loop
	duration  time.Duration
	direction SlideDirection
	distance  int32
}

// NewSlideTransition creates a slide animated on l. A zero duration uses
// constants.DefaultPageTransitionDuration. Without a loop the slide jumps to
// its final state when executed.
func NewSlideTransition(l *loop.Loop, duration time.Duration, direction SlideDirection, opts ...TransitionOption) *SlideTransition {
	if duration <= 0 {
		duration = constants.DefaultPageTransitionDuration
	}
	t := &SlideTransition{loop: l, duration: duration, direction: direction}
	t.Apply(opts...)
	return t
}

func (t *SlideTransition) Prepare(current, next *view.View) {
	t.BaseTransition.Prepare(current, next)

	var width int32
	switch {
	case next != nil && next.Superview() != nil:
		width = next.Superview().Bounds().W
	case current != nil && current.Superview() != nil:
		width = current.Superview().Bounds().W
	}
	t.distance = width
	if t.direction == SlideReverse {
		t.distance = -width
	}

	if current != nil {
		current.SetAlpha(1)
		current.SetOffset(sdl.Point{})
	}
	if next != nil {
		next.SetAlpha(1)
		next.SetOffset(sdl.Point{X: t.distance})
	}
}

func (t *SlideTransition) Execute(onComplete func(completed bool)) {
	t.RunExecuteHook()
	animate(t.loop, loop.Animation{
		Duration: t.duration,
		Curve:    loop.EaseInOut,
		Step: func(p float64) {
			if t.Cancelled() {
				return
			}
			shift := int32(float64(t.distance) * p)
			if t.current != nil {
				t.current.SetOffset(sdl.Point{X: -shift})
			}
			if t.next != nil {
				t.next.SetOffset(sdl.Point{X: t.distance - shift})
			}
		},
		Done: func() { t.Report(onComplete) },
	})
}
