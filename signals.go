package fade

import "github.com/zoobzio/capitan"

// Transition lifecycle signals.
var (
	// TransitionStarted is emitted when a property arena supersedes a
	// property's transition.
	TransitionStarted = capitan.NewSignal(
		"fade.transition.started",
		"Property transition started",
	)

	// TransitionPruned is emitted when a finished transition's
	// predecessor is detached.
	TransitionPruned = capitan.NewSignal(
		"fade.transition.pruned",
		"Finished transition predecessor detached",
	)

	// PropertyRemoved is emitted when a property leaves an arena.
	PropertyRemoved = capitan.NewSignal(
		"fade.property.removed",
		"Property removed",
	)
)

// Style reload signals.
var (
	// CapacitorStarted is emitted when a Capacitor begins watching.
	CapacitorStarted = capitan.NewSignal(
		"fade.capacitor.started",
		"Capacitor watching started",
	)

	// CapacitorStopped is emitted when a Capacitor stops watching.
	CapacitorStopped = capitan.NewSignal(
		"fade.capacitor.stopped",
		"Capacitor watching stopped",
	)

	// CapacitorStateChanged is emitted when a Capacitor transitions between states.
	CapacitorStateChanged = capitan.NewSignal(
		"fade.capacitor.state.changed",
		"Capacitor state transition",
	)

	// CapacitorChangeReceived is emitted when raw data is received from the watcher.
	CapacitorChangeReceived = capitan.NewSignal(
		"fade.capacitor.change.received",
		"Raw change received from watcher",
	)

	// CapacitorDecodeFailed is emitted when a document cannot be decoded.
	CapacitorDecodeFailed = capitan.NewSignal(
		"fade.capacitor.decode.failed",
		"Document decode failed",
	)

	// CapacitorValidationFailed is emitted when validation fails.
	CapacitorValidationFailed = capitan.NewSignal(
		"fade.capacitor.validation.failed",
		"Validation failed",
	)

	// CapacitorApplyFailed is emitted when the apply function fails.
	CapacitorApplyFailed = capitan.NewSignal(
		"fade.capacitor.apply.failed",
		"Apply function failed",
	)

	// CapacitorApplySucceeded is emitted when a document is applied.
	CapacitorApplySucceeded = capitan.NewSignal(
		"fade.capacitor.apply.succeeded",
		"Document applied successfully",
	)
)
