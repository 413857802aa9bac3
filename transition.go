package fade

import (
	"sync/atomic"
	"time"

	"github.com/zoobzio/clockz"
)

// Transition fades a style property from the value of the transition it
// supersedes to the value of a new declaration.
//
// All fields are fixed at construction except the predecessor link, which
// the next transition severs once this one's predecessor can no longer be
// observed.
type Transition[T any] struct {
	declaration Declaration[T]
	interp      Interpolator[T]
	easing      Easing
	clock       clockz.Clock

	startTime time.Time
	endTime   time.Time
	duration  time.Duration
	delay     time.Duration

	prev atomic.Pointer[Transition[T]]
}

// New creates a transition to decl, superseding old (which may be nil).
//
// The blend function is resolved once from ref. When old has finished
// fading by the time the new transition starts, old's own predecessor is
// detached so chains stay bounded under rapid style changes.
func New[T any](
	ref Reference,
	decl Declaration[T],
	old *Transition[T],
	opts TransitionOptions,
	options ...Option,
) *Transition[T] {
	t, _ := newTransition(ref, decl, old, opts, options...)
	return t
}

// newTransition is New, also reporting whether old's predecessor was
// detached.
func newTransition[T any](
	ref Reference,
	decl Declaration[T],
	old *Transition[T],
	opts TransitionOptions,
	options ...Option,
) (*Transition[T], bool) {
	cfg := defaultConfig()
	for _, opt := range options {
		opt(&cfg)
	}
	opts = opts.normalize()

	start := cfg.clock.Now()
	t := &Transition[T]{
		declaration: decl,
		interp:      interpolatorFor[T](ref.Strategy()),
		clock:       cfg.clock,
		startTime:   start,
		endTime:     start,
		duration:    opts.Duration,
		delay:       opts.Delay,
	}
	if old != nil {
		t.prev.Store(old)
	}

	if !t.Instant() {
		t.endTime = start.Add(t.duration + t.delay)
		t.easing = cfg.easing
	}

	pruned := false
	if old != nil && !old.endTime.After(start) {
		pruned = old.detachPredecessor()
	}

	return t, pruned
}

// Instant reports whether the transition has no observable fade: there is
// nothing to fade from, no way to blend, or a zero-length window.
func (t *Transition[T]) Instant() bool {
	return t.prev.Load() == nil || t.interp == nil || (t.duration == 0 && t.delay == 0)
}

// Calculate returns the property value at globals.Time, or at the clock's
// current time when globals.Time is zero.
//
// While the fade is running the superseded transition is sampled frozen at
// this transition's start time. Once the window closes the declaration
// value is returned without touching the superseded transition.
func (t *Transition[T]) Calculate(globals Globals, feature Feature) T {
	value := t.declaration.Calculate(globals.WithDuration(t.duration), feature)

	prev := t.prev.Load()
	if prev == nil || t.interp == nil || t.easing == nil {
		return value
	}

	now := globals.Time
	if now.IsZero() {
		now = t.clock.Now()
	}
	if !now.Before(t.endTime) {
		return value
	}

	oldValue := prev.Calculate(globals.WithTime(t.startTime), feature)
	return t.interp(oldValue, value, t.easing(t.progress(now)))
}

// progress returns the linear progress through the fade at now. It is
// negative inside the delay window; the easing clamps it.
func (t *Transition[T]) progress(now time.Time) float64 {
	if t.duration <= 0 {
		return 0
	}
	return float64(now.Sub(t.startTime)-t.delay) / float64(t.duration)
}

// detachPredecessor severs the link to the superseded transition and
// reports whether there was one.
func (t *Transition[T]) detachPredecessor() bool {
	return t.prev.Swap(nil) != nil
}

// Predecessor returns the superseded transition, or nil.
func (t *Transition[T]) Predecessor() *Transition[T] {
	return t.prev.Load()
}

// Depth returns the number of transitions reachable through predecessor
// links, including t.
func (t *Transition[T]) Depth() int {
	n := 0
	for cur := t; cur != nil; cur = cur.prev.Load() {
		n++
	}
	return n
}

// StartTime returns the construction time.
func (t *Transition[T]) StartTime() time.Time { return t.startTime }

// EndTime returns the time the fade completes. It equals StartTime for
// instant transitions.
func (t *Transition[T]) EndTime() time.Time { return t.endTime }

// Duration returns the fade duration.
func (t *Transition[T]) Duration() time.Duration { return t.duration }

// Delay returns the wait before the fade begins.
func (t *Transition[T]) Delay() time.Duration { return t.delay }
