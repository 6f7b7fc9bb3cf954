package pollster

import (
	"container/heap"
	"time"
)

// timerEntry is a pending timed wakeup: an absolute deadline paired with
// the waker to invoke once it elapses.
type timerEntry struct {
	when  time.Time
	waker Waker
}

// timerHeap is a min-heap of timer entries ordered by deadline, earliest
// first. Entries with equal deadlines fire in arbitrary relative order.
type timerHeap []timerEntry

// Implement heap.Interface for timerHeap
func (h timerHeap) Len() int           { return len(h) }
func (h timerHeap) Less(i, j int) bool { return h[i].when.Before(h[j].when) }
func (h timerHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *timerHeap) Push(x any) {
	*h = append(*h, x.(timerEntry))
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// serviceTimersLocked fires every timer whose deadline has elapsed, in
// strict deadline order, and reports the duration until the next pending
// deadline (hasNext == false when the heap is empty).
//
// Caller must hold e.mu; the lock is released across each waker
// invocation, since waking needs the lock itself and may run on this very
// goroutine. The returned duration is always positive.
func (e *executor) serviceTimersLocked() (next time.Duration, hasNext bool) {
	for {
		if len(e.w.timers) == 0 {
			return 0, false
		}
		now := time.Now()
		if e.w.timers[0].when.After(now) {
			return e.w.timers[0].when.Sub(now), true
		}
		entry := heap.Pop(&e.w.timers).(timerEntry)
		e.mu.Unlock()
		logger().Trace().
			Uint64(`executor`, e.id).
			Time(`deadline`, entry.when).
			Log(`timer fired`)
		entry.waker.Wake()
		e.mu.Lock()
	}
}

// parkTimeout blocks until a wake token arrives or d elapses, whichever
// comes first. Called without the lock held.
func (e *executor) parkTimeout(d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-e.park:
	case <-t.C:
	}
}

// registerTimerLocked is the single registration point for timed wakeups;
// O(log n) in the number of outstanding timers. Caller must hold e.mu.
func (e *executor) registerTimerLocked(deadline time.Time, w Waker) {
	heap.Push(&e.w.timers, timerEntry{when: deadline, waker: w})
}

// Sleep is a [Future] that resolves no earlier than its deadline,
// completing with the instant at which it actually resumed (the lag
// against the deadline is observable scheduling delay). Create one with
// [SleepUntil] or [SleepFor].
type Sleep struct {
	deadline   time.Time
	registered bool
}

// SleepUntil returns a future that suspends the polling computation until
// deadline. Deadlines use the monotonic clock carried by [time.Time]; a
// deadline that has already elapsed completes on first poll.
func SleepUntil(deadline time.Time) *Sleep {
	return &Sleep{deadline: deadline}
}

// SleepFor is shorthand for [SleepUntil] with a deadline d from now.
func SleepFor(d time.Duration) *Sleep {
	return &Sleep{deadline: time.Now().Add(d)}
}

// Poll implements [Future]. On first poll before the deadline it
// registers exactly one timer entry with the executor active on the
// calling goroutine; re-polls before expiry do not create duplicates.
// Polling with no active executor panics with [ErrNoRuntime].
func (s *Sleep) Poll(w Waker) (time.Time, bool) {
	now := time.Now()
	if !s.deadline.After(now) { // deadline ≤ now
		return now, true
	}
	if !s.registered {
		e := currentExecutor()
		if e == nil {
			panic(ErrNoRuntime)
		}
		e.mu.Lock()
		e.registerTimerLocked(s.deadline, w)
		e.mu.Unlock()
		s.registered = true
		logger().Trace().
			Uint64(`executor`, e.id).
			Time(`deadline`, s.deadline).
			Log(`timer registered`)
	}
	return time.Time{}, false
}
