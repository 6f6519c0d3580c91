// Package widgets provides small self-contained UI elements that components
// compose into their panes.
package widgets

import (
	"github.com/mattn/go-runewidth"

	"github.com/mdevan/cadence/pkg/ui/terminal"
)

// TextInput is a single-line editor with cursor movement and a horizontal
// scroll window for values wider than the pane.
type TextInput struct {
	value  []rune
	cursor int
	offset int
}

// NewTextInput creates an empty editor.
func NewTextInput() *TextInput {
	return &TextInput{}
}

// Value returns the current contents.
func (t *TextInput) Value() string {
	return string(t.value)
}

// Len returns the number of runes in the buffer.
func (t *TextInput) Len() int {
	return len(t.value)
}

// Cursor returns the rune index of the cursor.
func (t *TextInput) Cursor() int {
	return t.cursor
}

// Reset clears the buffer and moves the cursor home.
func (t *TextInput) Reset() {
	t.value = t.value[:0]
	t.cursor = 0
	t.offset = 0
}

// SetValue replaces the contents and places the cursor at the end.
func (t *TextInput) SetValue(s string) {
	t.value = []rune(s)
	t.cursor = len(t.value)
	t.offset = 0
}

// Insert adds a string at the cursor.
func (t *TextInput) Insert(s string) {
	for _, r := range s {
		t.insertRune(r)
	}
}

// HandleKey applies one key to the buffer. It returns true when the key was
// consumed, false when it is not an editing key.
func (t *TextInput) HandleKey(ev terminal.KeyEvent) bool {
	if ev.Ctrl || ev.Alt {
		return false
	}
	switch ev.Key {
	case terminal.KeyRune:
		t.insertRune(ev.Rune)
	case terminal.KeyBackspace:
		t.deleteBackward()
	case terminal.KeyDelete:
		t.deleteForward()
	case terminal.KeyLeft:
		if t.cursor > 0 {
			t.cursor--
		}
	case terminal.KeyRight:
		if t.cursor < len(t.value) {
			t.cursor++
		}
	case terminal.KeyHome:
		t.cursor = 0
	case terminal.KeyEnd:
		t.cursor = len(t.value)
	default:
		return false
	}
	return true
}

func (t *TextInput) insertRune(r rune) {
	t.value = append(t.value, 0)
	copy(t.value[t.cursor+1:], t.value[t.cursor:])
	t.value[t.cursor] = r
	t.cursor++
}

func (t *TextInput) deleteBackward() {
	if t.cursor == 0 {
		return
	}
	t.value = append(t.value[:t.cursor-1], t.value[t.cursor:]...)
	t.cursor--
}

func (t *TextInput) deleteForward() {
	if t.cursor >= len(t.value) {
		return
	}
	t.value = append(t.value[:t.cursor], t.value[t.cursor+1:]...)
}

// View returns the visible slice of the value for a pane of the given cell
// width, plus the cursor's column within that slice. The scroll window shifts
// so the cursor is always visible.
func (t *TextInput) View(width int) (string, int) {
	if width <= 0 {
		return "", 0
	}
	if t.cursor < t.offset {
		t.offset = t.cursor
	}
	for visibleWidth(t.value[t.offset:t.cursor]) >= width {
		t.offset++
	}
	end := t.offset
	w := 0
	for end < len(t.value) {
		rw := runewidth.RuneWidth(t.value[end])
		if w+rw > width {
			break
		}
		w += rw
		end++
	}
	return string(t.value[t.offset:end]), visibleWidth(t.value[t.offset:t.cursor])
}

func visibleWidth(rs []rune) int {
	w := 0
	for _, r := range rs {
		w += runewidth.RuneWidth(r)
	}
	return w
}
