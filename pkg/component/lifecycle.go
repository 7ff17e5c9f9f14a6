package component

// Lifecycle holds a status and implements the standard transitions. Embed it
// in a component to get Status and Shutdown for free and call Start from
// Initialize. The zero value is Uninitialized.
type Lifecycle struct {
	status Status
	fail   bool
}

// Start runs the Uninitialized → Initializing → Ready transition. When init
// is non-nil it runs between the two steps; a false result (or a failure
// forced with SetFailStart) leaves the status at Failed.
func (l *Lifecycle) Start(init func() bool) bool {
	l.status = Initializing

	ok := !l.fail
	if ok && init != nil {
		ok = init()
	}

	if !ok {
		l.status = Failed
		return false
	}

	l.status = Ready

	return true
}

// Shutdown sets the status to Disabled regardless of the prior status.
func (l *Lifecycle) Shutdown() { l.status = Disabled }

// Status returns the current status.
func (l *Lifecycle) Status() Status { return l.status }

// SetFailStart makes every Start call fail until it is called again with
// false. Used to run the core with a degraded component.
func (l *Lifecycle) SetFailStart(fail bool) { l.fail = fail }
