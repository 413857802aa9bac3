// Package testing provides test utilities for code built on fade.
package testing

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/zoobzio/fade"
)

// SpyDeclaration is a constant declaration that counts its evaluations and
// remembers the globals it was last evaluated with. Use it to assert when a
// superseded transition is or is not sampled.
type SpyDeclaration[T any] struct {
	Value T

	calls atomic.Int64
	last  atomic.Pointer[fade.Globals]
}

// Calculate records the call and returns Value.
func (s *SpyDeclaration[T]) Calculate(globals fade.Globals, _ fade.Feature) T {
	s.calls.Add(1)
	s.last.Store(&globals)
	return s.Value
}

// Calls returns the number of evaluations so far.
func (s *SpyDeclaration[T]) Calls() int {
	return int(s.calls.Load())
}

// LastGlobals returns the globals of the latest evaluation.
func (s *SpyDeclaration[T]) LastGlobals() (fade.Globals, bool) {
	g := s.last.Load()
	if g == nil {
		return fade.Globals{}, false
	}
	return *g, true
}

// Sample evaluates tr at each offset from its start time.
func Sample[T any](tr *fade.Transition[T], offsets ...time.Duration) []T {
	out := make([]T, len(offsets))
	for i, d := range offsets {
		out[i] = tr.Calculate(fade.Globals{Time: tr.StartTime().Add(d)}, nil)
	}
	return out
}

// WaitFor polls a condition until it returns true or timeout is reached.
// Returns true if the condition was met, false if timeout occurred.
func WaitFor(t *testing.T, timeout time.Duration, condition func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}

// Stateful is implemented by fade.Capacitor and fade.CompositeCapacitor.
type Stateful interface {
	State() fade.State
}

// WaitForState waits until the capacitor reaches the expected state or timeout occurs.
func WaitForState(t *testing.T, c Stateful, expected fade.State, timeout time.Duration) bool {
	t.Helper()
	return WaitFor(t, timeout, func() bool {
		return c.State() == expected
	})
}

// RequireState fails the test immediately if the capacitor is not in the expected state.
func RequireState(t *testing.T, c Stateful, expected fade.State) {
	t.Helper()
	if got := c.State(); got != expected {
		t.Fatalf("expected state %s, got %s", expected, got)
	}
}

// NewTestStyle creates a style fed by a sync-mode capacitor. Send documents
// on the returned channel and call Process to apply them.
func NewTestStyle(t *testing.T, options ...fade.Option) (*fade.Style, *fade.Capacitor[fade.Document], chan<- []byte) {
	t.Helper()
	ch := make(chan []byte, 10)
	style := fade.NewStyle(options...)
	c := fade.WatchStyle(fade.NewSyncChannelWatcher(ch), style, fade.WithSyncMode())
	return style, c, ch
}

// StartStyle sends doc and starts c, failing the test if it is rejected.
func StartStyle(t *testing.T, c *fade.Capacitor[fade.Document], ch chan<- []byte, doc string) {
	t.Helper()
	ch <- []byte(doc)
	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("initial style rejected: %v", err)
	}
}
