package fade

import (
	"time"

	"github.com/zoobzio/clockz"
)

// TransitionOptions is the fade window declared for a property. Zero
// values mean the field was absent.
type TransitionOptions struct {
	Duration time.Duration
	Delay    time.Duration
}

// normalize clamps negative durations to zero.
func (o TransitionOptions) normalize() TransitionOptions {
	if o.Duration < 0 {
		o.Duration = 0
	}
	if o.Delay < 0 {
		o.Delay = 0
	}
	return o
}

// config holds construction options shared by transitions and the
// property arenas that build them.
type config struct {
	clock  clockz.Clock
	easing Easing
}

func defaultConfig() config {
	return config{
		clock:  clockz.RealClock,
		easing: EaseCubicInOut,
	}
}

// Option configures transition construction.
type Option func(*config)

// WithClock sets the clock used for start times and for sampling when
// Globals.Time is unset. Use this with clockz.FakeClock for deterministic
// tests.
func WithClock(clock clockz.Clock) Option {
	return func(c *config) {
		c.clock = clock
	}
}

// WithEasing replaces the cubic ease-in-out curve attached to non-instant
// transitions.
func WithEasing(easing Easing) Option {
	return func(c *config) {
		if easing != nil {
			c.easing = easing
		}
	}
}
