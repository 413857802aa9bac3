package fade

import (
	"testing"
	"time"
)

func TestNoOpMetricsProvider_DoesNotPanic(_ *testing.T) {
	var m NoOpMetricsProvider

	m.OnStateChange(StateLoading, StateHealthy)
	m.OnApplySuccess(100 * time.Millisecond)
	m.OnApplyFailure(stageValidate, 50*time.Millisecond)
	m.OnChangeReceived()
}
