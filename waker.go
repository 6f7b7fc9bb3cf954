package pollster

// A Waker is the callback identity that re-enqueues a suspended unit of
// work. It is a small value type: copies are clones and refer to the same
// task (or, when the task reference is absent, to the root computation of
// the [Run] invocation that created it).
//
// Wake is safe from any goroutine, at any time, any number of times,
// including after the referenced work or its executor has completed; such
// calls are silent no-ops. The zero Waker wakes nothing.
type Waker struct {
	exec *executor
	task *task // nil ⇒ the root computation
}

// Wake records that the associated work should be reconsidered and, if
// the driver goroutine is parked, unparks it.
//
// The record/flip/notify sequence runs under the worker lock so that a
// wakeup can never be observed as lost: a wake arriving strictly before
// the driver decides to park leaves the worker Ready, and the parking
// loop re-checks that under the same lock before sleeping.
func (w Waker) Wake() {
	e := w.exec
	if e == nil {
		return
	}
	e.mu.Lock()
	if e.w.done {
		// The executor has been torn down; wakeups may legitimately race
		// completion, so absorb rather than fault.
		e.mu.Unlock()
		return
	}
	if w.task != nil {
		e.w.tasks = append(e.w.tasks, w.task)
	} else {
		e.w.rootReady = true
	}
	e.signalReadyLocked()
	e.mu.Unlock()
}
