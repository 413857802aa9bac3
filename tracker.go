package fade

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
)

// Processing stages reported to MetricsProvider.OnApplyFailure.
const (
	stageDecode   = "decode"
	stageValidate = "validate"
	stageReduce   = "reduce"
	stageApply    = "apply"
)

// tracker holds the health shared by Capacitor and CompositeCapacitor: the
// state machine, the last applied document, and recorded errors.
type tracker[T any] struct {
	clock   clockz.Clock
	metrics MetricsProvider

	state        atomic.Int32
	current      atomic.Pointer[T]
	lastError    atomic.Pointer[error]
	errorHistory *ring[error]
}

func (t *tracker[T]) init(cfg *capacitorConfig) {
	t.clock = cfg.clock
	t.metrics = cfg.metrics
	t.errorHistory = newRing[error](cfg.errorHistory)
	t.state.Store(int32(StateLoading))
}

// State returns the current state.
func (t *tracker[T]) State() State {
	return State(t.state.Load())
}

// Current returns the last applied document and true, or the zero value
// and false if none has been applied.
func (t *tracker[T]) Current() (T, bool) {
	ptr := t.current.Load()
	if ptr == nil {
		var zero T
		return zero, false
	}
	return *ptr, true
}

// LastError returns the last error encountered, or nil after a success.
func (t *tracker[T]) LastError() error {
	ptr := t.lastError.Load()
	if ptr == nil {
		return nil
	}
	return *ptr
}

// ErrorHistory returns recent processing errors, oldest first. It is empty
// unless WithErrorHistory was set.
func (t *tracker[T]) ErrorHistory() []error {
	return t.errorHistory.all()
}

func (t *tracker[T]) received(ctx context.Context) {
	capitan.Emit(ctx, CapacitorChangeReceived)
	t.metrics.OnChangeReceived()
}

// succeed records doc as applied.
func (t *tracker[T]) succeed(ctx context.Context, doc T, began time.Time) {
	t.current.Store(&doc)
	t.lastError.Store(nil)
	t.transitionState(ctx, StateHealthy)
	t.metrics.OnApplySuccess(t.clock.Now().Sub(began))
	capitan.Emit(ctx, CapacitorApplySucceeded)
}

// fail records err against stage and moves to the failure state.
func (t *tracker[T]) fail(ctx context.Context, stage string, began time.Time, err error) {
	e := err
	t.lastError.Store(&e)
	t.errorHistory.push(err)
	t.transitionState(ctx, t.failureState())
	t.metrics.OnApplyFailure(stage, t.clock.Now().Sub(began))

	field := KeyError.Field(err.Error())
	switch stage {
	case stageDecode:
		capitan.Emit(ctx, CapacitorDecodeFailed, field)
	case stageValidate:
		capitan.Emit(ctx, CapacitorValidationFailed, field)
	default:
		capitan.Emit(ctx, CapacitorApplyFailed, field)
	}
}

// failureState returns the failure state for whether a document has ever
// been applied.
func (t *tracker[T]) failureState() State {
	if t.current.Load() == nil {
		return StateEmpty
	}
	return StateDegraded
}

// transitionState updates the state and emits a state change event if changed.
func (t *tracker[T]) transitionState(ctx context.Context, newState State) {
	oldState := State(t.state.Swap(int32(newState)))
	if oldState == newState {
		return
	}
	t.metrics.OnStateChange(oldState, newState)
	capitan.Emit(ctx, CapacitorStateChanged,
		KeyOldState.Field(oldState.String()),
		KeyNewState.Field(newState.String()),
	)
}
