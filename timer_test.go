package pollster

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestServiceTimers_FiresInDeadlineOrder constructs entries equivalent to
// deadlines {t+300ms, t+100ms, t+200ms} serviced at t+250ms: exactly the
// second and third fire, in ascending deadline order, and the first stays
// pending.
func TestServiceTimers_FiresInDeadlineOrder(t *testing.T) {
	e := newExecutor()
	t1 := &task{poll: func(Waker) bool { return true }} // t+100
	t2 := &task{poll: func(Waker) bool { return true }} // t+200
	t3 := &task{poll: func(Waker) bool { return true }} // t+300

	now := time.Now() // stands in for t+250ms
	e.mu.Lock()
	e.registerTimerLocked(now.Add(50*time.Millisecond), Waker{exec: e, task: t3})
	e.registerTimerLocked(now.Add(-150*time.Millisecond), Waker{exec: e, task: t1})
	e.registerTimerLocked(now.Add(-50*time.Millisecond), Waker{exec: e, task: t2})

	next, hasNext := e.serviceTimersLocked()
	tasks := append([]*task(nil), e.w.tasks...)
	pending := len(e.w.timers)
	state := e.w.state
	e.mu.Unlock()

	require.True(t, hasNext)
	require.Greater(t, next, time.Duration(0))
	require.LessOrEqual(t, next, 50*time.Millisecond)
	require.Equal(t, 1, pending, "the t+300ms entry must remain")
	require.Equal(t, []*task{t1, t2}, tasks, "expired timers must fire earliest first")
	require.Equal(t, stateReady, state, "firing a waker must flip the worker to Ready")
}

func TestServiceTimers_EmptyHeap(t *testing.T) {
	e := newExecutor()
	e.mu.Lock()
	next, hasNext := e.serviceTimersLocked()
	e.mu.Unlock()
	require.False(t, hasNext)
	require.Zero(t, next)
}

// TestSleep_NoDuplicateRegistration re-polls a pending Sleep and asserts
// that only one timer entry exists for it.
func TestSleep_NoDuplicateRegistration(t *testing.T) {
	e := newExecutor()
	gid := goroutineID()
	prev := installExecutor(gid, e)
	defer func() {
		e.teardown()
		restoreExecutor(gid, prev)
	}()

	s := SleepUntil(time.Now().Add(time.Hour))
	w := Waker{exec: e}
	for i := 0; i < 3; i++ {
		_, ok := s.Poll(w)
		require.False(t, ok)
	}

	e.mu.Lock()
	n := len(e.w.timers)
	e.mu.Unlock()
	require.Equal(t, 1, n, "re-polling before expiry must not duplicate the timer entry")
}

func TestSleep_PastDeadlineCompletesImmediately(t *testing.T) {
	deadline := time.Now().Add(-time.Second)
	start := time.Now()
	woken := Run(SleepUntil(deadline))
	require.Less(t, time.Since(start), 50*time.Millisecond)
	require.False(t, woken.Before(deadline))
}

func TestSleep_ResolvesNoEarlierThanDeadline(t *testing.T) {
	start := time.Now()
	deadline := start.Add(60 * time.Millisecond)
	woken := Run(SleepUntil(deadline))
	require.GreaterOrEqual(t, time.Since(start), 60*time.Millisecond)
	require.False(t, woken.Before(deadline), "woken instant must not precede the deadline")
}

func TestSleepFor(t *testing.T) {
	start := time.Now()
	woken := Run(SleepFor(30 * time.Millisecond))
	require.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
	require.False(t, woken.Before(start.Add(30*time.Millisecond)))
}

func TestSleep_PollOutsideRunPanics(t *testing.T) {
	s := SleepUntil(time.Now().Add(time.Hour))
	assert.PanicsWithValue(t, ErrNoRuntime, func() {
		s.Poll(Waker{})
	})
}

// TestSleep_TwoTimersFireInOrder awaits two sleeps with staggered
// deadlines from one root; both resolve and in deadline order.
func TestSleep_TwoTimersFireInOrder(t *testing.T) {
	start := time.Now()
	short := SleepUntil(start.Add(20 * time.Millisecond))
	long := SleepUntil(start.Add(40 * time.Millisecond))

	var order []string
	shortDone, longDone := false, false

	Run(PollFunc[struct{}](func(w Waker) (struct{}, bool) {
		if !shortDone {
			if _, ok := short.Poll(w); ok {
				shortDone = true
				order = append(order, "short")
			}
		}
		if !longDone {
			if _, ok := long.Poll(w); ok {
				longDone = true
				order = append(order, "long")
			}
		}
		return struct{}{}, shortDone && longDone
	}))

	require.Equal(t, []string{"short", "long"}, order)
	require.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}
