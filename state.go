package pollster

// workerState represents the current state of the driver goroutine.
//
// State Machine:
//
//	stateRunning → stateParked   [driver found no ready work]
//	stateParked  → stateReady    [Waker.Wake / Spawn / timer expiry]
//	stateRunning → stateReady    [wakeup raced the park decision]
//	stateReady   → stateRunning  [driver consumed the wakeup]
//
// Exactly one of these holds at any instant. The state is only ever read
// or written while holding the executor's worker lock; the parking loop
// re-checks it under that lock before blocking, which is what makes a
// wakeup arriving before the park decision impossible to lose.
type workerState uint8

const (
	// stateRunning indicates the driver is actively polling.
	stateRunning workerState = iota
	// stateParked indicates the driver is blocked awaiting a wakeup or a
	// timer deadline.
	stateParked
	// stateReady indicates a wakeup occurred and has not yet been consumed
	// by the driver.
	stateReady
)

// String returns a human-readable representation of the state.
func (s workerState) String() string {
	switch s {
	case stateRunning:
		return "Running"
	case stateParked:
		return "Parked"
	case stateReady:
		return "Ready"
	default:
		return "Unknown"
	}
}
