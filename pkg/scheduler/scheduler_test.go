package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdevan/cadence/pkg/action"
	"github.com/mdevan/cadence/pkg/bus"
)

// collect drains the bus until n actions arrived or the deadline passes.
func collect(t *testing.T, b *bus.Bus, n int) []action.Action {
	t.Helper()
	var out []action.Action
	deadline := time.After(2 * time.Second)
	for len(out) < n {
		select {
		case <-b.Ready():
			for {
				a, ok := b.TryRecv()
				if !ok {
					break
				}
				out = append(out, a)
			}
		case <-deadline:
			t.Fatalf("timed out with %d of %d actions", len(out), n)
		}
	}
	return out
}

func TestScheduleIncrementBracket(t *testing.T) {
	b := bus.New()
	s := New(b.Sender(), 10*time.Millisecond, nil)

	s.ScheduleIncrement(3)

	got := collect(t, b, 3)
	assert.Equal(t, action.EnterProcessing{}, got[0])
	assert.Equal(t, action.Increment{Amount: 3}, got[1])
	assert.Equal(t, action.ExitProcessing{}, got[2])
}

func TestScheduleDecrementBracket(t *testing.T) {
	b := bus.New()
	s := New(b.Sender(), 10*time.Millisecond, nil)

	s.ScheduleDecrement(1)

	got := collect(t, b, 3)
	assert.Equal(t, action.EnterProcessing{}, got[0])
	assert.Equal(t, action.Decrement{Amount: 1}, got[1])
	assert.Equal(t, action.ExitProcessing{}, got[2])
}

func TestEnterProcessingPrecedesDelay(t *testing.T) {
	b := bus.New()
	s := New(b.Sender(), 250*time.Millisecond, nil)

	s.ScheduleIncrement(1)

	// The opening bracket arrives immediately, well before the payload.
	got := collect(t, b, 1)
	require.Equal(t, action.EnterProcessing{}, got[0])
	_, ok := b.TryRecv()
	assert.False(t, ok, "payload should still be sleeping")
}

func TestConcurrentTasksAreIndependent(t *testing.T) {
	b := bus.New()
	s := New(b.Sender(), 10*time.Millisecond, nil)

	s.ScheduleIncrement(1)
	s.ScheduleIncrement(2)
	s.ScheduleDecrement(1)

	got := collect(t, b, 9)

	// Interleaving is unspecified; count per-kind totals instead.
	counts := make(map[string]int)
	for _, a := range got {
		counts[action.Name(a)]++
	}
	assert.Equal(t, 3, counts["enter_processing"])
	assert.Equal(t, 3, counts["exit_processing"])
	assert.Equal(t, 2, counts["increment"])
	assert.Equal(t, 1, counts["decrement"])
}

func TestSendAfterCloseDoesNotPanic(t *testing.T) {
	b := bus.New()
	s := New(b.Sender(), 10*time.Millisecond, nil)

	b.Close()
	assert.NotPanics(t, func() {
		s.ScheduleIncrement(1)
		time.Sleep(50 * time.Millisecond)
	})
}

func TestDefaultDelayApplied(t *testing.T) {
	s := New(bus.New().Sender(), 0, nil)
	assert.Equal(t, DefaultDelay, s.delay)
}
