package pollster

import "errors"

// Standard errors.
var (
	// ErrNoRuntime is the panic value raised when Spawn is called, or a
	// Sleep future is polled, with no executor active on the calling
	// goroutine. This is a programming error, not a runtime condition to
	// recover from; it is surfaced at the call site rather than ignored.
	ErrNoRuntime = errors.New("pollster: no executor is active on the calling goroutine")
)
