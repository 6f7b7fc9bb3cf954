package pollster

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
	"github.com/stretchr/testify/require"
)

// TestLogging_StumpyBackend wires the package logger to a stumpy (JSON)
// backend and checks the diagnostic events emitted across a run that
// spawns a task and services a timer.
func TestLogging_StumpyBackend(t *testing.T) {
	var buf bytes.Buffer
	l := stumpy.L.New(
		stumpy.L.WithStumpy(stumpy.WithWriter(&buf), stumpy.WithTimeField(``)),
		stumpy.L.WithLevel(logiface.LevelTrace),
	)
	SetLogger(l.Logger())
	defer SetLogger(nil)

	sleep := SleepFor(5 * time.Millisecond)
	spawned := false
	Run(PollFunc[time.Time](func(w Waker) (time.Time, bool) {
		if !spawned {
			Spawn(PollFunc[struct{}](func(w Waker) (struct{}, bool) {
				return struct{}{}, true
			}))
			spawned = true
		}
		return sleep.Poll(w)
	}))

	out := buf.String()
	for _, want := range []string{
		`"msg":"run starting"`,
		`"msg":"task spawned"`,
		`"msg":"timer registered"`,
		`"msg":"timer fired"`,
		`"msg":"run complete"`,
	} {
		require.Contains(t, out, want)
	}
	require.Contains(t, out, `"executor":`)
}

// TestLogging_NilLoggerIsSilent exercises every logging call site with
// the default (disabled) logger; nothing may panic.
func TestLogging_NilLoggerIsSilent(t *testing.T) {
	SetLogger(nil)
	out := Run(PollFunc[int](func(w Waker) (int, bool) {
		return 3, true
	}))
	require.Equal(t, 3, out)
}

// TestLogging_EventsOrdered sanity-checks that the run lifecycle brackets
// the other events.
func TestLogging_EventsOrdered(t *testing.T) {
	var buf bytes.Buffer
	l := stumpy.L.New(
		stumpy.L.WithStumpy(stumpy.WithWriter(&buf), stumpy.WithTimeField(``)),
		stumpy.L.WithLevel(logiface.LevelTrace),
	)
	SetLogger(l.Logger())
	defer SetLogger(nil)

	spawned := false
	Run(PollFunc[struct{}](func(w Waker) (struct{}, bool) {
		if !spawned {
			Spawn(PollFunc[struct{}](func(w Waker) (struct{}, bool) { return struct{}{}, true }))
			spawned = true
			return struct{}{}, false
		}
		return struct{}{}, true
	}))

	out := buf.String()
	starting := strings.Index(out, `run starting`)
	spawnedAt := strings.Index(out, `task spawned`)
	complete := strings.Index(out, `run complete`)
	require.True(t, starting >= 0 && spawnedAt > starting && complete > spawnedAt,
		"unexpected event order: %s", out)
}
