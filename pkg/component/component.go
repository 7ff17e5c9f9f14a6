package component

// Status reflects a component's own lifecycle, independent of the state of
// the core that hosts it.
type Status int

const (
	Uninitialized Status = iota
	Initializing
	Ready
	Failed
	Disabled
)

func (s Status) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initializing:
		return "initializing"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	case Disabled:
		return "disabled"
	default:
		return "unknown"
	}
}

// Component is a pluggable unit with a standard lifecycle.
type Component interface {
	// Initialize moves the component to Ready. It returns false when the
	// component could not start, leaving it in Failed.
	Initialize() bool

	// Shutdown disables the component. It must be safe to call repeatedly.
	Shutdown()

	// Name returns a stable, non-empty identifier.
	Name() string

	// Status returns the current lifecycle status.
	Status() Status

	// Update is called once per loop tick and must not block.
	Update()
}
