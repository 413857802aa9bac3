package fade

import "time"

// MetricsProvider receives callbacks on key Capacitor events. See
// pkg/prometheus for a Prometheus implementation.
type MetricsProvider interface {
	// OnStateChange is called when the capacitor transitions between states.
	OnStateChange(from, to State)

	// OnApplySuccess is called when a document is decoded, validated and
	// applied. Duration covers all three stages.
	OnApplySuccess(duration time.Duration)

	// OnApplyFailure is called when processing fails. Stage is "decode",
	// "validate", "reduce" (composite capacitors only) or "apply".
	OnApplyFailure(stage string, duration time.Duration)

	// OnChangeReceived is called when raw data is received from the watcher.
	OnChangeReceived()
}

// NoOpMetricsProvider is a no-op implementation of MetricsProvider.
// Embed it to implement only the methods you need.
type NoOpMetricsProvider struct{}

func (NoOpMetricsProvider) OnStateChange(_, _ State)                 {}
func (NoOpMetricsProvider) OnApplySuccess(_ time.Duration)           {}
func (NoOpMetricsProvider) OnApplyFailure(_ string, _ time.Duration) {}
func (NoOpMetricsProvider) OnChangeReceived()                        {}
