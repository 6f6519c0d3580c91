// Package home implements the main screen: a counter with immediate and
// delayed mutations, a line editor feeding a history list, and a help
// overlay. All state lives here and is only touched from the event loop.
package home

import (
	"fmt"
	"math"

	"github.com/mdevan/cadence/pkg/action"
	"github.com/mdevan/cadence/pkg/bus"
	"github.com/mdevan/cadence/pkg/keymap"
	"github.com/mdevan/cadence/pkg/logging"
	"github.com/mdevan/cadence/pkg/ui/runtime"
	"github.com/mdevan/cadence/pkg/ui/terminal"
	"github.com/mdevan/cadence/pkg/ui/theme"
	"github.com/mdevan/cadence/pkg/ui/widgets"
)

// Mode determines how key input is interpreted.
type Mode int

const (
	// ModeNormal routes keys through the keymap.
	ModeNormal Mode = iota
	// ModeInsert routes keys to the line editor.
	ModeInsert
	// ModeProcessing ignores key input while background work runs.
	ModeProcessing
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeInsert:
		return "insert"
	case ModeProcessing:
		return "processing"
	default:
		return "unknown"
	}
}

// Tasks starts delayed counter mutations. Satisfied by scheduler.Scheduler.
type Tasks interface {
	ScheduleIncrement(amount uint64)
	ScheduleDecrement(amount uint64)
}

// Config wires the home screen's collaborators.
type Config struct {
	Keymap *keymap.Keymap
	Theme  *theme.Theme
	Tasks  Tasks
	Logger *logging.Logger
}

// Home is the main screen component.
type Home struct {
	tx    *bus.Sender
	keys  *keymap.Keymap
	theme *theme.Theme
	tasks Tasks
	log   *logging.Logger

	mode        Mode
	counter     uint64
	tickCount   uint64
	renderCount uint64

	input    *widgets.TextInput
	history  []string
	selected int

	lastKeys []terminal.KeyEvent
	showHelp bool

	cursorX, cursorY int
}

// New creates the home screen. Nil Keymap and Theme fall back to defaults.
func New(cfg Config) *Home {
	km := cfg.Keymap
	if km == nil {
		km = keymap.Default()
	}
	th := cfg.Theme
	if th == nil {
		th = theme.DefaultTheme()
	}
	return &Home{
		keys:  km,
		theme: th,
		tasks: cfg.Tasks,
		log:   cfg.Logger,
		input: widgets.NewTextInput(),
	}
}

// Register stores the action sender for sends outside the update path.
func (h *Home) Register(tx *bus.Sender) error {
	h.tx = tx
	return nil
}

// Mode returns the current input mode.
func (h *Home) Mode() Mode { return h.mode }

// Counter returns the counter value.
func (h *Home) Counter() uint64 { return h.counter }

// History returns the submitted lines, oldest first.
func (h *Home) History() []string { return h.history }

// HandleEvent turns a terminal event into at most one action.
func (h *Home) HandleEvent(ev terminal.Event) action.Action {
	switch v := ev.(type) {
	case terminal.KeyEvent:
		return h.handleKey(v)
	case terminal.PasteEvent:
		if h.mode == ModeInsert {
			h.input.Insert(v.Text)
			return action.Update{}
		}
	}
	return nil
}

func (h *Home) handleKey(ev terminal.KeyEvent) action.Action {
	h.lastKeys = append(h.lastKeys, ev)

	switch h.mode {
	case ModeProcessing:
		return nil
	case ModeInsert:
		return h.handleInsertKey(ev)
	default:
		return h.handleNormalKey(ev)
	}
}

func (h *Home) handleNormalKey(ev terminal.KeyEvent) action.Action {
	if a, ok := h.keys.Lookup(ev); ok {
		return a
	}
	switch ev.Key {
	case terminal.KeyUp:
		if h.selected > 0 {
			h.selected--
		}
		return action.Update{}
	case terminal.KeyDown:
		if h.selected < len(h.history)-1 {
			h.selected++
		}
		return action.Update{}
	}
	return nil
}

func (h *Home) handleInsertKey(ev terminal.KeyEvent) action.Action {
	switch ev.Key {
	case terminal.KeyEscape:
		return action.EnterNormal{}
	case terminal.KeyEnter:
		return action.CompleteInput{Text: h.input.Value()}
	}
	if h.input.HandleKey(ev) {
		return action.Update{}
	}
	return nil
}

// Update folds one action into the screen state. The returned action, if any,
// is re-enqueued by the driver.
func (h *Home) Update(a action.Action) (action.Action, error) {
	switch v := a.(type) {
	case action.Tick:
		h.tickCount++
		h.lastKeys = nil
	case action.Render:
		h.renderCount++

	case action.IncrementSingle:
		if h.mode != ModeInsert {
			return action.Increment{Amount: 1}, nil
		}
	case action.DecrementSingle:
		if h.mode != ModeInsert {
			return action.Decrement{Amount: 1}, nil
		}
	case action.ScheduleIncrement:
		if h.mode != ModeInsert && h.tasks != nil {
			h.tasks.ScheduleIncrement(1)
		}
	case action.ScheduleDecrement:
		if h.mode != ModeInsert && h.tasks != nil {
			h.tasks.ScheduleDecrement(1)
		}

	case action.Increment:
		if h.counter > math.MaxUint64-v.Amount {
			h.counter = math.MaxUint64
		} else {
			h.counter += v.Amount
		}
		if h.selected < len(h.history)-1 {
			h.selected++
		}
	case action.Decrement:
		if v.Amount > h.counter {
			h.counter = 0
		} else {
			h.counter -= v.Amount
		}
		if h.selected > 0 {
			h.selected--
		}

	case action.CompleteInput:
		h.history = append(h.history, v.Text)
		h.selected = len(h.history) - 1
		h.input.Reset()
		return action.EnterNormal{}, nil

	case action.EnterNormal:
		h.setMode(ModeNormal)
	case action.EnterInsert:
		h.setMode(ModeInsert)
	case action.EnterProcessing:
		h.setMode(ModeProcessing)
	case action.ExitProcessing:
		h.setMode(ModeNormal)

	case action.Help:
		h.showHelp = true
	case action.ToggleShowHelp:
		h.showHelp = !h.showHelp
	}
	return nil, nil
}

// setMode applies a transition. Re-entering the current mode is a no-op.
func (h *Home) setMode(m Mode) {
	if m == h.mode {
		return
	}
	h.log.Debug(logging.CategoryUI, "mode change", map[string]any{
		"from": h.mode.String(),
		"to":   m.String(),
	})
	h.mode = m
}

// Cursor implements runtime.CursorPositioner: the terminal cursor is shown
// at the editor position while in Insert mode.
func (h *Home) Cursor() (x, y int, ok bool) {
	return h.cursorX, h.cursorY, h.mode == ModeInsert
}

const statusWidth = 24

// Draw renders the whole screen into the buffer.
func (h *Home) Draw(buf *runtime.Buffer, area runtime.Rect) error {
	if area.Width < 4 || area.Height < 8 {
		buf.SetString(area.X, area.Y, "window too small", h.theme.Accent)
		return nil
	}

	top, bottom := area.SplitHalvesV()
	counterArea, statusArea := top.SplitFixedRight(statusWidth)

	h.drawCounter(buf, counterArea)
	h.drawStatus(buf, statusArea)
	h.drawBottom(buf, bottom)

	if h.showHelp {
		h.drawHelp(buf, area)
	}
	return nil
}

func (h *Home) drawCounter(buf *runtime.Buffer, area runtime.Rect) {
	border := h.theme.Border
	switch h.mode {
	case ModeProcessing:
		border = h.theme.BorderProcessing
	case ModeInsert:
		border = h.theme.BorderInsert
	}
	buf.DrawBox(area, border)
	buf.SetString(area.X+2, area.Y, " cadence ", h.theme.Title)

	inner := area.Inset(2, 1)
	buf.SetString(inner.X, inner.Y, fmt.Sprintf("counter: %d", h.counter), h.theme.TextBold)
	if h.mode == ModeProcessing {
		buf.SetString(inner.X, inner.Y+2, "working...", h.theme.Highlight)
	} else {
		buf.SetString(inner.X, inner.Y+2, "j/k step, J/K delayed, / to type", h.theme.TextDim)
	}
}

func (h *Home) drawStatus(buf *runtime.Buffer, area runtime.Rect) {
	buf.DrawBox(area, h.theme.Border)
	buf.SetString(area.X+2, area.Y, " status ", h.theme.Title)

	inner := area.Inset(2, 1)
	buf.SetString(inner.X, inner.Y, fmt.Sprintf("mode    %s", h.mode), h.theme.Accent)
	buf.SetString(inner.X, inner.Y+1, fmt.Sprintf("ticks   %d", h.tickCount), h.theme.Text)
	buf.SetString(inner.X, inner.Y+2, fmt.Sprintf("frames  %d", h.renderCount), h.theme.Text)

	if len(h.lastKeys) > 0 && inner.Height > 3 {
		keys := ""
		for _, k := range h.lastKeys {
			if keys != "" {
				keys += " "
			}
			keys += k.String()
		}
		buf.SetString(inner.X, inner.Y+inner.Height-1, clip(keys, inner.Width), h.theme.FooterEvents)
	}
}

func (h *Home) drawBottom(buf *runtime.Buffer, area runtime.Rect) {
	inputArea := runtime.NewRect(area.X, area.Y, area.Width, 3)
	historyArea := runtime.NewRect(area.X, area.Y+3, area.Width, area.Height-3)

	inputBorder := h.theme.Border
	if h.mode == ModeInsert {
		inputBorder = h.theme.BorderInsert
	}
	buf.DrawBox(inputArea, inputBorder)
	buf.SetString(inputArea.X+2, inputArea.Y, " input ", h.theme.Title)

	inner := inputArea.Inset(2, 1)
	view, col := h.input.View(inner.Width)
	style := h.theme.InputText
	if h.mode == ModeInsert {
		style = h.theme.InputActive
	}
	buf.SetString(inner.X, inner.Y, view, style)
	h.cursorX, h.cursorY = inner.X+col, inner.Y

	h.drawHistory(buf, historyArea)
}

// drawHistory lists submitted lines bottom-up so the newest sits nearest the
// input field.
func (h *Home) drawHistory(buf *runtime.Buffer, area runtime.Rect) {
	if area.Height < 3 {
		return
	}
	buf.DrawBox(area, h.theme.Border)
	buf.SetString(area.X+2, area.Y, " history ", h.theme.Title)

	inner := area.Inset(2, 1)
	row := inner.Y + inner.Height - 1
	for i := len(h.history) - 1; i >= 0 && row >= inner.Y; i-- {
		style := h.theme.Text
		if i == h.selected {
			style = h.theme.Selection
		}
		buf.SetString(inner.X, row, clip(h.history[i], inner.Width), style)
		row--
	}
}

func (h *Home) drawHelp(buf *runtime.Buffer, area runtime.Rect) {
	bindings := h.keys.Bindings()

	w := 34
	hgt := len(bindings) + 4
	if w > area.Width {
		w = area.Width
	}
	if hgt > area.Height {
		hgt = area.Height
	}
	box := runtime.NewRect(area.X+(area.Width-w)/2, area.Y+(area.Height-hgt)/2, w, hgt)

	buf.Fill(box, ' ', h.theme.Text)
	buf.DrawBox(box, h.theme.Border)
	buf.SetString(box.X+2, box.Y, " keys ", h.theme.HelpHeader)

	inner := box.Inset(2, 1)
	row := inner.Y
	buf.SetString(inner.X, row, "? closes this overlay", h.theme.TextDim)
	row += 2
	for _, b := range bindings {
		if row >= inner.Y+inner.Height {
			break
		}
		buf.SetString(inner.X, row, fmt.Sprintf("%-10s", b.Chord), h.theme.HelpKey)
		buf.SetString(inner.X+11, row, action.Name(b.Action), h.theme.Text)
		row++
	}
}

func clip(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "…"
}
