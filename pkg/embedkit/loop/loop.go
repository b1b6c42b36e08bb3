// Package loop provides the single UI-affinity execution context that owns every
// view mutation, transition callback and property animation in embedkit.
//
// Work from other goroutines is marshalled onto the loop with Post. The loop is
// advanced one frame at a time by Tick, either from Run or directly by a host
// that already owns a frame loop (or by tests, with synthetic timestamps).
package loop

import (
	"context"
	"sync"
	"time"

	"github.com/BrandonKowalski/embedkit/pkg/embedkit/constants"
)

// Loop is a cooperative, single-threaded scheduler.
// Post is safe for concurrent use; every other method must be called from the
// goroutine driving Tick.
type Loop struct {
	mu    sync.Mutex
	queue []func()

	animations []*running
	now        time.Time
	ticking    bool
	interval   time.Duration
}

// Option configures a Loop.
type Option func(*Loop)

// WithInterval sets the frame interval used by Run.
func WithInterval(d time.Duration) Option {
	return func(l *Loop) {
		if d > 0 {
			l.interval = d
		}
	}
}

func New(opts ...Option) *Loop {
	l := &Loop{interval: constants.FrameInterval}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Post schedules fn to run on the loop during the next Tick.
func (l *Loop) Post(fn func()) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	l.queue = append(l.queue, fn)
	l.mu.Unlock()
}

// Now returns the timestamp of the most recent Tick.
func (l *Loop) Now() time.Time {
	return l.now
}

// Idle reports whether no posted work and no animation is outstanding.
func (l *Loop) Idle() bool {
	l.mu.Lock()
	queued := len(l.queue)
	l.mu.Unlock()
	return queued == 0 && len(l.animations) == 0
}

// Tick runs one frame: posted work first, in submission order, then one step
// of every running animation. Work posted during the frame runs next frame.
func (l *Loop) Tick(now time.Time) {
	l.now = now
	l.ticking = true
	defer func() { l.ticking = false }()

	l.mu.Lock()
	queue := l.queue
	l.queue = nil
	l.mu.Unlock()

	for _, fn := range queue {
		fn()
	}

	l.stepAnimations(now)
}

// Run drives Tick at the configured interval until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	l.Tick(time.Now())
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case t := <-ticker.C:
			l.Tick(t)
		}
	}
}
