package pollster

import (
	"sync"

	"github.com/joeycumines/logiface"
)

// Package-level structured logger. Logging is an infrastructure
// cross-cutting concern shared by all executors in the process, so it is
// configured once rather than threaded through Run; the default (nil)
// logger disables all output with no overhead beyond a read lock.
var packageLogger struct {
	sync.RWMutex
	logger *logiface.Logger[logiface.Event]
}

// SetLogger sets the package-level structured logger. Diagnostic events
// (run lifecycle, spawns, timer registration and expiry) are emitted at
// debug and trace levels; pass nil to disable logging entirely.
//
// Only driver-side operations log, so a logger backed by an
// unsynchronized writer is safe as long as all Run invocations share one
// goroutine.
func SetLogger(l *logiface.Logger[logiface.Event]) {
	packageLogger.Lock()
	packageLogger.logger = l
	packageLogger.Unlock()
}

// logger returns the configured logger; the nil *logiface.Logger it may
// return is safe to build events against (they are discarded).
func logger() *logiface.Logger[logiface.Event] {
	packageLogger.RLock()
	l := packageLogger.logger
	packageLogger.RUnlock()
	return l
}
