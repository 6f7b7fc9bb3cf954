// Package pollster provides a minimal cooperative future executor for Go:
// a single-worker runtime that drives poll-based suspendable computations
// to completion on the calling goroutine, parking that goroutine when no
// work is ready and resuming it exactly when new work becomes available.
//
// # Architecture
//
// The executor is built around a tri-state worker machine
// (Running/Parked/Ready) guarded by a single lock, a FIFO ready queue of
// spawned tasks, and a min-heap of pending timers. [Run] drives a root
// [Future] with a root [Waker], drains the ready queue between root polls,
// services expired timers, and parks bounded by the next timer deadline.
//
// A [Waker] is the bridge between arbitrary notifying goroutines and the
// worker: invoking it records that its task (or the root computation)
// should be reconsidered, flips the worker to Ready, and unparks the
// driver if it was blocked. The record/flip/notify sequence happens under
// the worker lock, so a wakeup arriving before the driver decides to park
// is never lost: the parking loop re-checks the state under the same lock
// before sleeping.
//
// # Thread Safety
//
// Exactly one goroutine executes polls at a time (the caller of [Run]).
// [Waker.Wake] is safe from any goroutine, at any time, any number of
// times, including after the task or the whole run has completed (such
// calls are silent no-ops). [Spawn] and [SleepUntil] are usable only from
// code polled by an active [Run] on the calling goroutine; misuse panics
// with [ErrNoRuntime]. The worker lock is never held while polling a
// computation or while invoking a waker.
//
// # Scheduling Caveats
//
// The ready queue drains in FIFO order, and tasks spawned or woken during
// a drain are processed within the same pass. A computation that
// perpetually re-enqueues itself therefore starves parking; this is
// accepted cooperative-scheduling behavior, not detected or reported.
// Spawned tasks are fire-and-forget: observing their results requires an
// explicit completion signal such as [Oneshot].
//
// # Usage
//
//	woken := pollster.Run(pollster.SleepUntil(deadline))
//
//	out := pollster.Run(pollster.PollFunc[string](func(w pollster.Waker) (string, bool) {
//		// poll sub-futures, spawn tasks, register timers...
//		return "hello", true
//	}))
package pollster
