package pollster

// Yield is a [Future] that reports pending exactly once, waking itself
// immediately: the computation is re-enqueued at the back of the ready
// queue, giving other ready work a turn. A computation that yields in a
// loop without ever completing starves parking indefinitely; that is the
// documented cost of FIFO cooperative draining.
type Yield struct {
	yielded bool
}

// YieldNow returns a future that suspends the computation for one
// scheduling pass.
func YieldNow() *Yield {
	return &Yield{}
}

// Poll implements [Future].
func (y *Yield) Poll(w Waker) (struct{}, bool) {
	if y.yielded {
		return struct{}{}, true
	}
	y.yielded = true
	w.Wake()
	return struct{}{}, false
}
