package widgets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdevan/cadence/pkg/ui/terminal"
)

func typeString(t *TextInput, s string) {
	for _, r := range s {
		t.HandleKey(terminal.KeyEvent{Key: terminal.KeyRune, Rune: r})
	}
}

func TestTextInputTyping(t *testing.T) {
	in := NewTextInput()
	typeString(in, "hello")
	assert.Equal(t, "hello", in.Value())
	assert.Equal(t, 5, in.Cursor())
}

func TestTextInputBackspaceAndDelete(t *testing.T) {
	in := NewTextInput()
	typeString(in, "abcd")

	in.HandleKey(terminal.KeyEvent{Key: terminal.KeyBackspace})
	assert.Equal(t, "abc", in.Value())

	in.HandleKey(terminal.KeyEvent{Key: terminal.KeyHome})
	in.HandleKey(terminal.KeyEvent{Key: terminal.KeyDelete})
	assert.Equal(t, "bc", in.Value())
	assert.Equal(t, 0, in.Cursor())

	// Backspace at column zero is a no-op.
	in.HandleKey(terminal.KeyEvent{Key: terminal.KeyBackspace})
	assert.Equal(t, "bc", in.Value())
}

func TestTextInputCursorMovement(t *testing.T) {
	in := NewTextInput()
	typeString(in, "abc")

	in.HandleKey(terminal.KeyEvent{Key: terminal.KeyLeft})
	in.HandleKey(terminal.KeyEvent{Key: terminal.KeyLeft})
	typeString(in, "X")
	assert.Equal(t, "aXbc", in.Value())

	in.HandleKey(terminal.KeyEvent{Key: terminal.KeyEnd})
	assert.Equal(t, 4, in.Cursor())
	in.HandleKey(terminal.KeyEvent{Key: terminal.KeyHome})
	assert.Equal(t, 0, in.Cursor())

	// Right past the end stays at the end.
	in.HandleKey(terminal.KeyEvent{Key: terminal.KeyEnd})
	in.HandleKey(terminal.KeyEvent{Key: terminal.KeyRight})
	assert.Equal(t, 4, in.Cursor())
}

func TestTextInputUnhandledKeys(t *testing.T) {
	in := NewTextInput()
	assert.False(t, in.HandleKey(terminal.KeyEvent{Key: terminal.KeyEnter}))
	assert.False(t, in.HandleKey(terminal.KeyEvent{Key: terminal.KeyRune, Rune: 'c', Ctrl: true}))
	assert.Equal(t, "", in.Value())
}

func TestTextInputReset(t *testing.T) {
	in := NewTextInput()
	typeString(in, "stale")
	in.Reset()
	assert.Equal(t, "", in.Value())
	assert.Equal(t, 0, in.Cursor())
}

func TestTextInputInsertPaste(t *testing.T) {
	in := NewTextInput()
	typeString(in, "ad")
	in.HandleKey(terminal.KeyEvent{Key: terminal.KeyLeft})
	in.Insert("bc")
	assert.Equal(t, "abcd", in.Value())
	assert.Equal(t, 3, in.Cursor())
}

func TestTextInputViewScrolls(t *testing.T) {
	in := NewTextInput()
	typeString(in, "abcdefghij")

	view, col := in.View(5)
	require.LessOrEqual(t, len(view), 5)
	// Cursor at the end of a long value: window shows the tail.
	assert.Equal(t, "ghij", view[len(view)-4:])
	assert.Less(t, col, 5)

	// Moving home scrolls the window back.
	in.HandleKey(terminal.KeyEvent{Key: terminal.KeyHome})
	view, col = in.View(5)
	assert.Equal(t, "abcde", view)
	assert.Equal(t, 0, col)
}

func TestTextInputViewWideRunes(t *testing.T) {
	in := NewTextInput()
	in.SetValue("日本語")

	view, col := in.View(4)
	// The window shifts until the cursor column fits inside the pane.
	assert.Equal(t, "語", view)
	assert.Equal(t, 2, col)
}
