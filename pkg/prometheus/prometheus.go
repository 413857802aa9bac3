// Package prometheus provides a fade.MetricsProvider backed by Prometheus
// collectors.
package prometheus

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/zoobzio/fade"
)

// Metrics records style reload activity.
type Metrics struct {
	state    *prom.GaugeVec
	changes  prom.Counter
	applied  prom.Histogram
	failures *prom.HistogramVec
}

// New creates Metrics and registers its collectors with reg. Namespace
// prefixes every metric name; it may be empty.
func New(reg prom.Registerer, namespace string) (*Metrics, error) {
	m := &Metrics{
		state: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Subsystem: "style",
			Name:      "state",
			Help:      "Current capacitor state; 1 for the active state.",
		}, []string{"state"}),
		changes: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Subsystem: "style",
			Name:      "changes_received_total",
			Help:      "Raw style documents received from watchers.",
		}),
		applied: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Subsystem: "style",
			Name:      "apply_duration_seconds",
			Help:      "Time to decode, validate and apply a style document.",
			Buckets:   prom.DefBuckets,
		}),
		failures: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Subsystem: "style",
			Name:      "failure_duration_seconds",
			Help:      "Time spent on rejected style documents by failing stage.",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"}),
	}

	for _, c := range []prom.Collector{m.state, m.changes, m.applied, m.failures} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	m.setState(fade.StateLoading)
	return m, nil
}

func (m *Metrics) setState(active fade.State) {
	for _, s := range []fade.State{fade.StateLoading, fade.StateHealthy, fade.StateDegraded, fade.StateEmpty} {
		v := 0.0
		if s == active {
			v = 1
		}
		m.state.WithLabelValues(s.String()).Set(v)
	}
}

// OnStateChange marks to as the active state.
func (m *Metrics) OnStateChange(_, to fade.State) {
	m.setState(to)
}

// OnApplySuccess observes the apply duration.
func (m *Metrics) OnApplySuccess(duration time.Duration) {
	m.applied.Observe(duration.Seconds())
}

// OnApplyFailure observes the failure duration under stage.
func (m *Metrics) OnApplyFailure(stage string, duration time.Duration) {
	m.failures.WithLabelValues(stage).Observe(duration.Seconds())
}

// OnChangeReceived counts a received document.
func (m *Metrics) OnChangeReceived() {
	m.changes.Inc()
}

var _ fade.MetricsProvider = (*Metrics)(nil)
