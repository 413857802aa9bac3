package fade

// State is the health of a Capacitor's applied style.
type State int32

const (
	// StateLoading means no document has been processed yet.
	StateLoading State = iota

	// StateHealthy means the latest document was applied.
	StateHealthy

	// StateDegraded means the latest document was rejected. The previously
	// applied style keeps rendering.
	StateDegraded

	// StateEmpty means no document has ever been applied. The Capacitor
	// keeps watching for a valid one.
	StateEmpty
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateHealthy:
		return "healthy"
	case StateDegraded:
		return "degraded"
	case StateEmpty:
		return "empty"
	default:
		return "unknown"
	}
}
