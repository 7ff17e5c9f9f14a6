package core

// State is the lifecycle state of a Core.
type State int

const (
	Idle State = iota
	Initializing
	Running
	ShuttingDown
	// Error is reserved; no transition currently produces it.
	Error
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Initializing:
		return "initializing"
	case Running:
		return "running"
	case ShuttingDown:
		return "shutting-down"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}
