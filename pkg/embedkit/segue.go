package embedkit

import (
	"time"

	"github.com/BrandonKowalski/embedkit/pkg/embedkit/constants"
	"github.com/BrandonKowalski/embedkit/pkg/embedkit/internal"
	"github.com/BrandonKowalski/embedkit/pkg/embedkit/loop"
	"github.com/BrandonKowalski/embedkit/pkg/embedkit/view"
)

// TransitionMode selects a built-in transition strategy.
type TransitionMode int

const (
	TransitionInstant   TransitionMode = iota // Switch immediately
	TransitionCrossfade                       // Fade between the two children
	TransitionSlide                           // Slide the new child in horizontally
)

func (m TransitionMode) String() string {
	switch m {
	case TransitionInstant:
		return "instant"
	case TransitionCrossfade:
		return "crossfade"
	case TransitionSlide:
		return "slide"
	default:
		return "unknown"
	}
}

// TransitionConfig describes how a segue animates.
type TransitionConfig struct {
	Mode         TransitionMode
	Duration     time.Duration  // Animated modes only, defaults to constants.DefaultSegueDuration
	Direction    SlideDirection // TransitionSlide only
	Sender       any            // Free-form data passed from the segue's initiator
	PrepareExtra func()         // Called when the transition is prepared
	ExecuteExtra func()         // Called when the transition starts animating
}

// Build creates the transition described by c. Animated modes need l; without
// it they fall back to an instant transition.
func (c TransitionConfig) Build(l *loop.Loop) Transition {
	opts := []TransitionOption{WithPrepareHook(c.PrepareExtra), WithExecuteHook(c.ExecuteExtra)}

	duration := c.Duration
	if duration <= 0 {
		duration = constants.DefaultSegueDuration
	}

	if c.Mode != TransitionInstant && l == nil {
		internal.GetInternalLogger().Warn("No loop for animated transition, switching instantly", "mode", c.Mode.String())
		return NewInstantTransition(opts...)
	}

	switch c.Mode {
	case TransitionCrossfade:
		return NewCrossfadeTransition(l, duration, opts...)
	case TransitionSlide:
		return NewSlideTransition(l, duration, c.Direction, opts...)
	default:
		return NewInstantTransition(opts...)
	}
}

// Segue replaces the child embedded by the EmbeddingController that manages
// Source with Destination.
type Segue struct {
	Identifier  string
	Source      *view.Controller
	Destination *view.Controller
	Config      *TransitionConfig // Instant when nil
}

// NewCrossfadeSegue creates a segue that crossfades to destination. A zero
// duration uses constants.DefaultCrossfadeDuration.
func NewCrossfadeSegue(source, destination *view.Controller, duration time.Duration) *Segue {
	if duration <= 0 {
		duration = constants.DefaultCrossfadeDuration
	}
	return &Segue{
		Source:      source,
		Destination: destination,
		Config:      &TransitionConfig{Mode: TransitionCrossfade, Duration: duration},
	}
}

// Perform finds the host of Source and embeds Destination into it. Without a
// host nothing is mutated and a ConfigurationError is returned.
func (s *Segue) Perform(l *loop.Loop) error {
	host := HostOf(s.Source)
	if host == nil {
		internal.GetInternalLogger().Error("Cannot perform segue due to missing EmbeddingController", "segue", s.Identifier)
		return NewConfigurationError("perform_segue", ErrNoEmbeddingHost)
	}

	cfg := TransitionConfig{}
	if s.Config != nil {
		cfg = *s.Config
	}
	return host.Embed(s.Destination, cfg.Build(l), nil)
}
