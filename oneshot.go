package pollster

import "sync"

// Oneshot creates a single-value completion channel: the receiver is a
// [Future] that suspends until the sender delivers, and the sender is
// safe to use from any goroutine. It is the minimal completion-notifying
// primitive for observing spawned work, and doubles as the bridge from
// external event sources into the executor's waking protocol.
func Oneshot[T any]() (*OneshotSender[T], *OneshotReceiver[T]) {
	sh := &oneshotShared[T]{}
	return &OneshotSender[T]{sh: sh}, &OneshotReceiver[T]{sh: sh}
}

type oneshotShared[T any] struct {
	mu    sync.Mutex
	value T
	sent  bool
	waker Waker
}

// OneshotSender delivers at most one value to its paired receiver.
type OneshotSender[T any] struct {
	sh *oneshotShared[T]
}

// Send delivers v and wakes the receiver if it is suspended. It reports
// whether the value was accepted; only the first send is.
func (s *OneshotSender[T]) Send(v T) bool {
	s.sh.mu.Lock()
	if s.sh.sent {
		s.sh.mu.Unlock()
		return false
	}
	s.sh.value = v
	s.sh.sent = true
	w := s.sh.waker
	s.sh.waker = Waker{}
	s.sh.mu.Unlock()
	// Invoked outside the channel lock: Wake takes the worker lock, and
	// holding both invites ordering cycles.
	w.Wake()
	return true
}

// OneshotReceiver is a [Future] resolving to the value sent by its paired
// [OneshotSender].
type OneshotReceiver[T any] struct {
	sh *oneshotShared[T]
}

// Poll implements [Future]. Pending polls retain only the most recent
// waker, per the [Future] contract.
func (r *OneshotReceiver[T]) Poll(w Waker) (T, bool) {
	r.sh.mu.Lock()
	if r.sh.sent {
		v := r.sh.value
		r.sh.mu.Unlock()
		return v, true
	}
	r.sh.waker = w
	r.sh.mu.Unlock()
	var zero T
	return zero, false
}
