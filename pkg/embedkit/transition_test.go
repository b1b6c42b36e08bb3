package embedkit

import (
	"testing"
	"time"

	"github.com/BrandonKowalski/embedkit/pkg/embedkit/loop"
	"github.com/BrandonKowalski/embedkit/pkg/embedkit/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veandco/go-sdl2/sdl"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// at returns epoch shifted by ms milliseconds.
func at(ms int) time.Time {
	return epoch.Add(time.Duration(ms) * time.Millisecond)
}

type completion struct {
	calls     int
	completed bool
}

func (c *completion) record(completed bool) {
	c.calls++
	c.completed = completed
}

func TestInstantTransitionSwapsImmediately(t *testing.T) {
	t.Parallel()

	current, next := view.New("current"), view.New("next")
	tr := NewInstantTransition()
	var done completion

	tr.Prepare(current, next)
	tr.Execute(done.record)

	assert.Equal(t, 0.0, current.Alpha())
	assert.Equal(t, 1.0, next.Alpha())
	assert.Equal(t, 1, done.calls)
	assert.True(t, done.completed)
}

func TestInstantTransitionCancelledBeforeExecute(t *testing.T) {
	t.Parallel()

	tr := NewInstantTransition()
	var done completion

	tr.Prepare(nil, view.New("next"))
	tr.Cancel()
	tr.Execute(done.record)

	assert.Equal(t, 1, done.calls)
	assert.False(t, done.completed)
}

func TestTransitionHooksRun(t *testing.T) {
	t.Parallel()

	var order []string
	tr := NewInstantTransition(
		WithPrepareHook(func() { order = append(order, "prepare") }),
		WithExecuteHook(func() { order = append(order, "execute") }),
	)

	tr.Prepare(nil, view.New("next"))
	tr.Execute(func(bool) { order = append(order, "complete") })

	assert.Equal(t, []string{"prepare", "execute", "complete"}, order)
}

func TestCrossfadeKeepsOpacitySumConstant(t *testing.T) {
	t.Parallel()

	l := loop.New()
	current, next := view.New("current"), view.New("next")
	tr := NewCrossfadeTransition(l, 0)
	require.Equal(t, 300*time.Millisecond, tr.Duration())
	var done completion

	tr.Prepare(current, next)
	assert.Equal(t, 1.0, current.Alpha())
	assert.Equal(t, 0.0, next.Alpha())

	tr.Execute(done.record)
	for ms := 0; ms < 300; ms += 50 {
		l.Tick(at(ms))
		assert.InDelta(t, 1.0, current.Alpha()+next.Alpha(), 1e-9, "at %dms", ms)
		assert.Equal(t, 0, done.calls)
	}

	l.Tick(at(300))
	assert.Equal(t, 0.0, current.Alpha())
	assert.Equal(t, 1.0, next.Alpha())
	assert.Equal(t, 1, done.calls)
	assert.True(t, done.completed)

	l.Tick(at(400))
	assert.Equal(t, 1, done.calls)
}

func TestCrossfadeCancelReportsIncompleteAtEnd(t *testing.T) {
	t.Parallel()

	l := loop.New()
	current, next := view.New("current"), view.New("next")
	tr := NewCrossfadeTransition(l, 200*time.Millisecond)
	var done completion

	tr.Prepare(current, next)
	tr.Execute(done.record)
	l.Tick(at(0))
	l.Tick(at(100))
	frozen := next.Alpha()

	tr.Cancel()
	l.Tick(at(150))
	assert.Equal(t, 0, done.calls, "cancel does not stop the animation early")
	assert.Equal(t, frozen, next.Alpha())

	l.Tick(at(200))
	assert.Equal(t, 1, done.calls)
	assert.False(t, done.completed)
	assert.True(t, l.Idle())
}

func TestSlideMovesAcrossRegionWidth(t *testing.T) {
	t.Parallel()

	l := loop.New()
	region := view.New("region")
	region.SetFrame(sdl.Rect{W: 320, H: 240})
	current, next := view.New("current"), view.New("next")
	region.AddSubview(current)
	region.AddSubview(next)

	tr := NewSlideTransition(l, 100*time.Millisecond, SlideForward)
	var done completion

	tr.Prepare(current, next)
	assert.Equal(t, sdl.Point{X: 320}, next.Offset())
	assert.Equal(t, sdl.Point{}, current.Offset())

	tr.Execute(done.record)
	l.Tick(at(0))
	l.Tick(at(50))
	assert.Equal(t, current.Offset().X+320, next.Offset().X)

	l.Tick(at(100))
	assert.Equal(t, sdl.Point{X: -320}, current.Offset())
	assert.Equal(t, sdl.Point{}, next.Offset())
	assert.True(t, done.completed)
}

func TestSlideReverseEntersFromLeft(t *testing.T) {
	t.Parallel()

	l := loop.New()
	region := view.New("region")
	region.SetFrame(sdl.Rect{W: 200, H: 100})
	next := view.New("next")
	region.AddSubview(next)

	tr := NewSlideTransition(l, 0, SlideReverse)
	tr.Prepare(nil, next)
	assert.Equal(t, sdl.Point{X: -200}, next.Offset())
}

func TestAnimatedTransitionsWithoutLoopFinishImmediately(t *testing.T) {
	t.Parallel()

	current, next := view.New("current"), view.New("next")
	fade := NewCrossfadeTransition(nil, 0)
	var faded completion
	fade.Prepare(current, next)
	fade.Execute(faded.record)

	assert.Equal(t, 1, faded.calls)
	assert.True(t, faded.completed)
	assert.Equal(t, 0.0, current.Alpha())
	assert.Equal(t, 1.0, next.Alpha())

	region := view.New("region")
	region.SetFrame(sdl.Rect{W: 100, H: 50})
	out, in := view.New("out"), view.New("in")
	region.AddSubview(out)
	region.AddSubview(in)

	slide := NewSlideTransition(nil, 0, SlideForward)
	var slid completion
	slide.Prepare(out, in)
	slide.Execute(slid.record)

	assert.True(t, slid.completed)
	assert.Equal(t, sdl.Point{X: -100}, out.Offset())
	assert.Equal(t, sdl.Point{}, in.Offset())
}

// dimTransition is a strategy built outside the package's own set.
type dimTransition struct {
	BaseTransition
}

func (d *dimTransition) Execute(onComplete func(completed bool)) {
	d.RunExecuteHook()
	if current, _ := d.Views(); current != nil {
		current.SetAlpha(0.5)
	}
	d.Report(onComplete)
	d.Report(onComplete)
}

func TestCustomTransitionOnBase(t *testing.T) {
	t.Parallel()

	_, e := newHost(t)
	a, b := view.NewController("a", nil), view.NewController("b", nil)
	require.NoError(t, e.Embed(a, nil, nil))

	var hooks []string
	tr := &dimTransition{}
	tr.Apply(
		WithPrepareHook(func() { hooks = append(hooks, "prepare") }),
		WithExecuteHook(func() { hooks = append(hooks, "execute") }),
	)
	var done completion
	require.NoError(t, e.Embed(b, tr, done.record))

	assert.Equal(t, []string{"prepare", "execute"}, hooks)
	current, next := tr.Views()
	assert.Same(t, a.View(), current)
	assert.Same(t, b.View(), next)
	assert.Equal(t, 1, done.calls)
	assert.True(t, done.completed)
	assertSettledOn(t, e, b)
}
