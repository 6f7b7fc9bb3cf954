package pollster

import "sync"

// task is an executor-owned, independently pollable unit of spawned work.
//
// A task is shared (by pointer) between the ready queue and any
// outstanding wakers referring to it, and its address never changes for
// its entire life, so a computation may hold self-referential state
// established during a previous poll. The embedded mutex grants the
// computation to exactly one poll at a time, and the done flag makes
// polling after completion a no-op: a stale waker may legitimately
// re-enqueue a finished task, which must not fault.
type task struct {
	mu   sync.Mutex
	poll func(Waker) bool
	done bool
}

// pollOnce polls the task's computation with the given waker, recording
// completion. Polling a completed task is a no-op.
func (t *task) pollOnce(w Waker) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return
	}
	if t.poll(w) {
		t.done = true
		t.poll = nil
	}
}
