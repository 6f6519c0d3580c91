package home

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdevan/cadence/pkg/action"
	"github.com/mdevan/cadence/pkg/ui/runtime"
	"github.com/mdevan/cadence/pkg/ui/terminal"
)

type fakeTasks struct {
	incs []uint64
	decs []uint64
}

func (f *fakeTasks) ScheduleIncrement(amount uint64) { f.incs = append(f.incs, amount) }
func (f *fakeTasks) ScheduleDecrement(amount uint64) { f.decs = append(f.decs, amount) }

func newHome() (*Home, *fakeTasks) {
	tasks := &fakeTasks{}
	return New(Config{Tasks: tasks}), tasks
}

// apply folds an action and any follow-ups it produces, like the driver's
// drain loop does.
func apply(t *testing.T, h *Home, a action.Action) {
	t.Helper()
	for a != nil {
		next, err := h.Update(a)
		require.NoError(t, err)
		a = next
	}
}

func key(r rune) terminal.KeyEvent {
	return terminal.KeyEvent{Key: terminal.KeyRune, Rune: r}
}

func TestCounterIncrementDecrement(t *testing.T) {
	h, _ := newHome()

	apply(t, h, action.Increment{Amount: 5})
	assert.Equal(t, uint64(5), h.Counter())

	apply(t, h, action.Decrement{Amount: 3})
	assert.Equal(t, uint64(2), h.Counter())
}

func TestCounterSaturates(t *testing.T) {
	h, _ := newHome()

	apply(t, h, action.Decrement{Amount: 3})
	assert.Equal(t, uint64(0), h.Counter())

	apply(t, h, action.Increment{Amount: math.MaxUint64})
	apply(t, h, action.Increment{Amount: 2})
	assert.Equal(t, uint64(math.MaxUint64), h.Counter())
}

func TestSingleStepsFoldToCounterMutations(t *testing.T) {
	h, _ := newHome()

	apply(t, h, action.IncrementSingle{})
	apply(t, h, action.IncrementSingle{})
	apply(t, h, action.DecrementSingle{})
	assert.Equal(t, uint64(1), h.Counter())
}

func TestCounterKeysIgnoredInInsertMode(t *testing.T) {
	h, tasks := newHome()
	apply(t, h, action.EnterInsert{})

	apply(t, h, action.IncrementSingle{})
	apply(t, h, action.DecrementSingle{})
	apply(t, h, action.ScheduleIncrement{})
	apply(t, h, action.ScheduleDecrement{})

	assert.Equal(t, uint64(0), h.Counter())
	assert.Empty(t, tasks.incs)
	assert.Empty(t, tasks.decs)
}

func TestScheduleInvokesTasks(t *testing.T) {
	h, tasks := newHome()

	apply(t, h, action.ScheduleIncrement{})
	apply(t, h, action.ScheduleDecrement{})

	assert.Equal(t, []uint64{1}, tasks.incs)
	assert.Equal(t, []uint64{1}, tasks.decs)
}

func TestProcessingBracket(t *testing.T) {
	h, _ := newHome()

	apply(t, h, action.EnterProcessing{})
	assert.Equal(t, ModeProcessing, h.Mode())

	// Payload lands while still in Processing mode.
	apply(t, h, action.Increment{Amount: 1})
	assert.Equal(t, uint64(1), h.Counter())

	apply(t, h, action.ExitProcessing{})
	assert.Equal(t, ModeNormal, h.Mode())
}

func TestModeTransitionsAreIdempotent(t *testing.T) {
	h, _ := newHome()

	apply(t, h, action.EnterNormal{})
	apply(t, h, action.EnterNormal{})
	assert.Equal(t, ModeNormal, h.Mode())

	apply(t, h, action.ExitProcessing{})
	assert.Equal(t, ModeNormal, h.Mode())
}

func TestProcessingModeIgnoresKeys(t *testing.T) {
	h, _ := newHome()
	apply(t, h, action.EnterProcessing{})

	assert.Nil(t, h.HandleEvent(key('j')))
	assert.Nil(t, h.HandleEvent(key('q')))
}

func TestNormalModeKeymapLookup(t *testing.T) {
	h, _ := newHome()

	assert.Equal(t, action.IncrementSingle{}, h.HandleEvent(key('j')))
	assert.Equal(t, action.Quit{}, h.HandleEvent(key('q')))
	assert.Equal(t, action.EnterInsert{}, h.HandleEvent(key('/')))
	assert.Nil(t, h.HandleEvent(key('x')))
}

func TestInsertSubmitFlow(t *testing.T) {
	h, _ := newHome()
	apply(t, h, h.HandleEvent(key('/')))
	require.Equal(t, ModeInsert, h.Mode())

	for _, r := range "hi" {
		a := h.HandleEvent(key(r))
		assert.Equal(t, action.Update{}, a)
	}

	a := h.HandleEvent(terminal.KeyEvent{Key: terminal.KeyEnter})
	require.Equal(t, action.CompleteInput{Text: "hi"}, a)

	apply(t, h, a)
	assert.Equal(t, []string{"hi"}, h.History())
	assert.Equal(t, ModeNormal, h.Mode())
	assert.Equal(t, "", h.input.Value())
}

func TestInsertEscapeLeavesBufferIntact(t *testing.T) {
	h, _ := newHome()
	apply(t, h, action.EnterInsert{})
	h.HandleEvent(key('a'))

	a := h.HandleEvent(terminal.KeyEvent{Key: terminal.KeyEscape})
	require.Equal(t, action.EnterNormal{}, a)
	apply(t, h, a)

	assert.Equal(t, ModeNormal, h.Mode())
	assert.Equal(t, "a", h.input.Value())
}

func TestEmptySubmitStillAppends(t *testing.T) {
	h, _ := newHome()
	apply(t, h, action.EnterInsert{})

	// One submission yields exactly one history entry, even when empty.
	apply(t, h, h.HandleEvent(terminal.KeyEvent{Key: terminal.KeyEnter}))
	assert.Equal(t, []string{""}, h.History())
	assert.Equal(t, ModeNormal, h.Mode())
}

func TestPasteInInsertMode(t *testing.T) {
	h, _ := newHome()
	apply(t, h, action.EnterInsert{})

	a := h.HandleEvent(terminal.PasteEvent{Text: "pasted"})
	assert.Equal(t, action.Update{}, a)
	assert.Equal(t, "pasted", h.input.Value())

	// Pastes outside Insert mode are dropped.
	apply(t, h, action.EnterNormal{})
	assert.Nil(t, h.HandleEvent(terminal.PasteEvent{Text: "more"}))
	assert.Equal(t, "pasted", h.input.Value())
}

func TestTickClearsRecentKeysAndCounts(t *testing.T) {
	h, _ := newHome()

	h.HandleEvent(key('x'))
	h.HandleEvent(key('y'))
	require.Len(t, h.lastKeys, 2)

	apply(t, h, action.Tick{})
	assert.Empty(t, h.lastKeys)
	assert.Equal(t, uint64(1), h.tickCount)

	apply(t, h, action.Render{})
	assert.Equal(t, uint64(1), h.renderCount)
}

func TestHelpToggle(t *testing.T) {
	h, _ := newHome()

	apply(t, h, action.ToggleShowHelp{})
	assert.True(t, h.showHelp)
	apply(t, h, action.ToggleShowHelp{})
	assert.False(t, h.showHelp)

	apply(t, h, action.Help{})
	assert.True(t, h.showHelp)
}

func TestHistorySelection(t *testing.T) {
	h, _ := newHome()
	for _, s := range []string{"one", "two", "three"} {
		apply(t, h, action.CompleteInput{Text: s})
	}
	assert.Equal(t, 2, h.selected)

	apply(t, h, h.HandleEvent(terminal.KeyEvent{Key: terminal.KeyUp}))
	apply(t, h, h.HandleEvent(terminal.KeyEvent{Key: terminal.KeyUp}))
	assert.Equal(t, 0, h.selected)

	// Clamped at the top.
	apply(t, h, h.HandleEvent(terminal.KeyEvent{Key: terminal.KeyUp}))
	assert.Equal(t, 0, h.selected)

	apply(t, h, h.HandleEvent(terminal.KeyEvent{Key: terminal.KeyDown}))
	assert.Equal(t, 1, h.selected)
}

func TestSelectionFollowsCounterActions(t *testing.T) {
	h, _ := newHome()
	for _, s := range []string{"one", "two", "three"} {
		apply(t, h, action.CompleteInput{Text: s})
	}

	apply(t, h, action.Decrement{Amount: 1})
	assert.Equal(t, 1, h.selected)
	apply(t, h, action.Decrement{Amount: 1})
	apply(t, h, action.Decrement{Amount: 1})
	assert.Equal(t, 0, h.selected)

	apply(t, h, action.Increment{Amount: 1})
	assert.Equal(t, 1, h.selected)
}

func bufferText(buf *runtime.Buffer) string {
	w, hgt := buf.Size()
	var sb strings.Builder
	for y := 0; y < hgt; y++ {
		for x := 0; x < w; x++ {
			r := buf.Get(x, y).Rune
			if r == 0 {
				continue
			}
			sb.WriteRune(r)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func TestDrawRendersCounterAndHistory(t *testing.T) {
	h, _ := newHome()
	apply(t, h, action.Increment{Amount: 7})
	apply(t, h, action.CompleteInput{Text: "hello"})

	buf := runtime.NewBuffer(60, 20)
	require.NoError(t, h.Draw(buf, runtime.NewRect(0, 0, 60, 20)))

	text := bufferText(buf)
	assert.Contains(t, text, "counter: 7")
	assert.Contains(t, text, "hello")
	assert.Contains(t, text, "normal")
}

func TestDrawHelpOverlay(t *testing.T) {
	h, _ := newHome()
	apply(t, h, action.ToggleShowHelp{})

	buf := runtime.NewBuffer(60, 24)
	require.NoError(t, h.Draw(buf, runtime.NewRect(0, 0, 60, 24)))

	text := bufferText(buf)
	assert.Contains(t, text, "increment_single")
	assert.Contains(t, text, "quit")
}

func TestDrawTinyWindow(t *testing.T) {
	h, _ := newHome()
	buf := runtime.NewBuffer(10, 3)
	require.NoError(t, h.Draw(buf, runtime.NewRect(0, 0, 10, 3)))
}

func TestCursorOnlyInInsertMode(t *testing.T) {
	h, _ := newHome()

	buf := runtime.NewBuffer(60, 20)
	require.NoError(t, h.Draw(buf, runtime.NewRect(0, 0, 60, 20)))

	_, _, ok := h.Cursor()
	assert.False(t, ok)

	apply(t, h, action.EnterInsert{})
	x, y, ok := h.Cursor()
	assert.True(t, ok)
	assert.Greater(t, x, 0)
	assert.Greater(t, y, 0)
}