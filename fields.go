package fade

import "github.com/zoobzio/capitan"

// Field keys for transition events.
var (
	// KeyProperty is the style property key.
	KeyProperty = capitan.NewStringKey("property")

	// KeyStrategy is the blend strategy resolved for the property.
	KeyStrategy = capitan.NewStringKey("strategy")

	// KeyDuration is the fade duration.
	KeyDuration = capitan.NewDurationKey("duration")

	// KeyDelay is the wait before the fade begins.
	KeyDelay = capitan.NewDurationKey("delay")

	// KeyDepth is the length of the transition chain after construction.
	KeyDepth = capitan.NewIntKey("depth")
)

// Field keys for Capacitor events.
var (
	// KeyState is the current state of the Capacitor.
	KeyState = capitan.NewStringKey("state")

	// KeyOldState is the previous state before a transition.
	KeyOldState = capitan.NewStringKey("old_state")

	// KeyNewState is the new state after a transition.
	KeyNewState = capitan.NewStringKey("new_state")

	// KeyError is the error message when an operation fails.
	KeyError = capitan.NewStringKey("error")

	// KeyDebounce is the configured debounce duration.
	KeyDebounce = capitan.NewDurationKey("debounce")

	// KeyCodec is the content type of the configured codec.
	KeyCodec = capitan.NewStringKey("codec")
)
