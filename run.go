package pollster

// Run drives f to completion on the calling goroutine, returning its
// result. It blocks for the duration: between polls the goroutine either
// drains ready spawned tasks, services timers, or parks until a [Waker]
// fires or the next timer deadline elapses.
//
// Run installs a fresh executor as the active one for the calling
// goroutine, so [Spawn] and [SleepUntil] used by computations polled
// within it resolve to this invocation. Nested Run calls are supported;
// the inner invocation restores the outer's executor on exit, including
// on panic. After Run returns, wakers minted during the invocation
// degrade to silent no-ops.
func Run[O any](f Future[O]) O {
	e := newExecutor()
	gid := goroutineID()
	prev := installExecutor(gid, e)
	defer func() {
		e.teardown()
		restoreExecutor(gid, prev)
		logger().Debug().
			Uint64(`executor`, e.id).
			Log(`run complete`)
	}()

	logger().Debug().
		Uint64(`executor`, e.id).
		Log(`run starting`)

	root := Waker{exec: e}
	for {
		out, ok := f.Poll(root)
		if ok {
			return out
		}

		e.mu.Lock()
		e.w.rootReady = false

		// Drain the ready queue FIFO. The lock is released around each
		// poll, and tasks enqueued during the drain (including by the
		// task just polled) are picked up within this same pass, bounded
		// only by forward progress.
		for len(e.w.tasks) > 0 {
			t := e.w.tasks[0]
			e.w.tasks = e.w.tasks[1:]
			e.mu.Unlock()
			t.pollOnce(Waker{exec: e, task: t})
			e.mu.Lock()
		}

		// Service timers, then park until woken or until the next
		// deadline. Timers are serviced before the Ready check: a newly
		// fired timer flips the state and spares a park/unpark round
		// trip. serviceTimersLocked releases the lock to invoke wakers,
		// so the state is re-checked after every call, under the same
		// lock acquisition that precedes the park decision.
		for {
			next, hasNext := e.serviceTimersLocked()
			if e.w.state == stateReady {
				break
			}
			e.w.state = stateParked
			e.mu.Unlock()
			if hasNext {
				e.parkTimeout(next)
			} else {
				<-e.park
			}
			e.mu.Lock()
		}
		e.w.state = stateRunning
		// A token may be left over from a wake that raced a timed-out
		// park; absorb it so the next park does not wake spuriously.
		select {
		case <-e.park:
		default:
		}
		e.mu.Unlock()
	}
}

// Spawn enqueues f as a new independently scheduled task on the executor
// active on the calling goroutine. It must be called from code running
// inside a poll of an active [Run]; otherwise it panics with
// [ErrNoRuntime].
//
// The task is polled with its own waker and is not awaited: its result is
// discarded, and a computation that wants to observe completion must
// arrange its own signaling (for example via [Oneshot]).
func Spawn[O any](f Future[O]) {
	e := currentExecutor()
	if e == nil {
		panic(ErrNoRuntime)
	}
	t := &task{poll: func(w Waker) bool {
		_, ok := f.Poll(w)
		return ok
	}}
	e.mu.Lock()
	e.w.tasks = append(e.w.tasks, t)
	e.signalReadyLocked()
	e.mu.Unlock()
	logger().Trace().
		Uint64(`executor`, e.id).
		Log(`task spawned`)
}
