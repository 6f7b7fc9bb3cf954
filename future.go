package pollster

// A Future is a suspendable computation: a state machine that, when
// polled, either completes with a value or reports "not yet" and promises
// to invoke the supplied [Waker] once it might be able to make progress.
//
// Poll must not block. A Future that returns ok == false must arrange for
// w (or a clone of it; Waker is a value type and copies freely) to be
// woken, or it will never be polled again. Only the most recent Waker
// passed to Poll need be retained. Once a Future has completed it should
// not be polled again; the executor guarantees it never re-polls a
// spawned task after completion.
//
// This package drives the contract; it does not define concrete
// computations beyond [Sleep], [OneshotReceiver], and [Yield].
type Future[O any] interface {
	Poll(w Waker) (out O, ok bool)
}

// PollFunc adapts an ordinary function to a [Future], in the manner of a
// poll_fn: the function is invoked for every poll, closing over whatever
// resume state it needs.
type PollFunc[O any] func(w Waker) (O, bool)

// Poll implements [Future] by calling f.
func (f PollFunc[O]) Poll(w Waker) (O, bool) { return f(w) }
