package loop

import (
	"math"
	"time"
)

// Curve maps linear progress in [0, 1] to eased progress.
type Curve func(t float64) float64

// Linear applies no easing.
func Linear(t float64) float64 {
	return t
}

// EaseInOut accelerates through the first half and decelerates through the second.
func EaseInOut(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - math.Pow(-2*t+2, 2)/2
}

// Animation interpolates properties over Duration.
type Animation struct {
	Duration time.Duration
	Curve    Curve                  // Linear when nil
	Step     func(progress float64) // Receives eased progress, ends with exactly 1
	Done     func()                 // Called once, after the final step
}

type running struct {
	anim    Animation
	start   time.Time
	started bool
}

// Animate starts a on the loop. An animation started during a frame counts
// from that frame; otherwise it starts on the next frame. Step is first called
// on the frame after it starts, or on the starting frame if Duration is zero.
func (l *Loop) Animate(a Animation) {
	if a.Curve == nil {
		a.Curve = Linear
	}
	r := &running{anim: a}
	if l.ticking {
		r.start = l.now
		r.started = true
	}
	l.animations = append(l.animations, r)
}

func (l *Loop) stepAnimations(now time.Time) {
	active := l.animations
	l.animations = nil

	var finished []*running
	keep := active[:0]
	for _, r := range active {
		if !r.started {
			r.start = now
			r.started = true
		}
		p := 1.0
		if r.anim.Duration > 0 {
			p = float64(now.Sub(r.start)) / float64(r.anim.Duration)
		}
		if p >= 1 {
			if r.anim.Step != nil {
				r.anim.Step(1)
			}
			finished = append(finished, r)
			continue
		}
		if p > 0 && r.anim.Step != nil {
			r.anim.Step(r.anim.Curve(p))
		}
		keep = append(keep, r)
	}
	l.animations = append(keep, l.animations...)

	for _, r := range finished {
		if r.anim.Done != nil {
			r.anim.Done()
		}
	}
}
