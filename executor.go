package pollster

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// executor is the per-Run worker/parking-primitive pair. One is created
// fresh for each top-level [Run] invocation and torn down when it
// returns.
type executor struct {
	id uint64

	// park is the parking primitive: a single-slot channel. A buffered
	// token is a durable "notify one" signal, which is what stands in for
	// a condition variable here (sync.Cond has no timed wait, and the
	// timer subsystem needs deadline-bounded parking).
	park chan struct{}

	// mu guards w as one atomic unit: ready queue, timer heap, state and
	// teardown flag must be mutually consistent. No other lock is taken
	// while holding it, and it is never held across a computation poll or
	// a waker invocation.
	mu sync.Mutex
	w  worker
}

// worker is the shared mutable scheduler state, guarded by executor.mu.
type worker struct {
	// rootReady records that the root computation was signaled ready. The
	// driver re-polls the root on every pass regardless, so the flag is
	// consumed for diagnostics rather than scheduling decisions.
	rootReady bool
	// tasks is the FIFO ready queue of spawned tasks.
	tasks []*task
	// timers is a min-heap of pending timed wakeups, earliest first.
	timers timerHeap
	// state is the Running/Parked/Ready machine; see workerState.
	state workerState
	// done marks the executor as torn down; set under mu when Run exits
	// (by any path), after which wakers become no-ops.
	done bool
}

var executorIDCounter atomic.Uint64

func newExecutor() *executor {
	return &executor{
		id:   executorIDCounter.Add(1),
		park: make(chan struct{}, 1),
		w:    worker{state: stateRunning},
	}
}

// signalReadyLocked flips the worker to Ready, unparking the driver if it
// was blocked. Caller must hold e.mu. The channel send is non-blocking:
// the slot either accepts the token or already holds an undelivered one,
// and a single worker needs at most one.
func (e *executor) signalReadyLocked() {
	if e.w.state == stateParked {
		select {
		case e.park <- struct{}{}:
		default:
		}
	}
	e.w.state = stateReady
}

// teardown marks the executor defunct so outstanding wakers degrade to
// no-ops, and drops scheduler state. Runs on every Run exit path.
func (e *executor) teardown() {
	e.mu.Lock()
	e.w.done = true
	e.w.rootReady = false
	e.w.tasks = nil
	e.w.timers = nil
	e.mu.Unlock()
}

// activeExecutors maps goroutine ID → the executor currently installed by
// a Run invocation on that goroutine. Spawn and Sleep polls resolve their
// owning executor here, so nested computations need no explicit handle
// threading. Install/restore preserves nesting: an inner Run restores the
// outer's entry on exit.
var activeExecutors = struct {
	sync.RWMutex
	m map[uint64]*executor
}{m: make(map[uint64]*executor)}

// installExecutor makes e the active executor for the goroutine, returning
// the previously installed one (nil if none).
func installExecutor(gid uint64, e *executor) (prev *executor) {
	activeExecutors.Lock()
	prev = activeExecutors.m[gid]
	activeExecutors.m[gid] = e
	activeExecutors.Unlock()
	return prev
}

// restoreExecutor reinstates the previously active executor for the
// goroutine (removing the entry outright when there was none).
func restoreExecutor(gid uint64, prev *executor) {
	activeExecutors.Lock()
	if prev == nil {
		delete(activeExecutors.m, gid)
	} else {
		activeExecutors.m[gid] = prev
	}
	activeExecutors.Unlock()
}

// currentExecutor returns the executor active on the calling goroutine,
// or nil when no Run invocation is in progress on it.
func currentExecutor() *executor {
	activeExecutors.RLock()
	e := activeExecutors.m[goroutineID()]
	activeExecutors.RUnlock()
	return e
}

// goroutineID returns the current goroutine's ID.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	var id uint64
	for i := len("goroutine "); i < n; i++ {
		if buf[i] >= '0' && buf[i] <= '9' {
			id = id*10 + uint64(buf[i]-'0')
		} else {
			break
		}
	}
	return id
}
