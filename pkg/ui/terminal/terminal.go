// Package terminal provides the raw input event types exchanged between the
// terminal backend and the event loop.
package terminal

import "strings"

// Event is a raw terminal input event.
type Event interface {
	eventMarker()
}

// KeyEvent represents a key press.
type KeyEvent struct {
	Key   Key
	Rune  rune
	Alt   bool
	Ctrl  bool
	Shift bool
}

func (KeyEvent) eventMarker() {}

// ResizeEvent indicates the terminal size changed.
type ResizeEvent struct {
	Width  int
	Height int
}

func (ResizeEvent) eventMarker() {}

// PasteEvent carries bracketed-paste content as a single event.
type PasteEvent struct {
	Text string
}

func (PasteEvent) eventMarker() {}

// Key identifies special keys. Regular characters use KeyRune with the Rune
// field set; control chords use KeyRune with Ctrl set and the lowercase rune.
type Key int

const (
	KeyNone Key = iota
	KeyRune
	KeyEnter
	KeyBackspace
	KeyTab
	KeyEscape
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyDelete
	KeyInsert
)

var keyNames = map[Key]string{
	KeyEnter:     "enter",
	KeyBackspace: "backspace",
	KeyTab:       "tab",
	KeyEscape:    "esc",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyPageUp:    "pgup",
	KeyPageDown:  "pgdn",
	KeyDelete:    "delete",
	KeyInsert:    "insert",
}

// String renders the event as a chord like "j", "ctrl+c" or "alt+enter".
// The same syntax is accepted by the keymap loader.
func (e KeyEvent) String() string {
	var sb strings.Builder
	if e.Ctrl {
		sb.WriteString("ctrl+")
	}
	if e.Alt {
		sb.WriteString("alt+")
	}
	if e.Key == KeyRune {
		if e.Rune == ' ' {
			sb.WriteString("space")
		} else {
			sb.WriteRune(e.Rune)
		}
		return sb.String()
	}
	if name, ok := keyNames[e.Key]; ok {
		sb.WriteString(name)
		return sb.String()
	}
	sb.WriteString("unknown")
	return sb.String()
}
