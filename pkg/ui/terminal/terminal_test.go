package terminal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyEventString(t *testing.T) {
	tests := []struct {
		name string
		ev   KeyEvent
		want string
	}{
		{"plain rune", KeyEvent{Key: KeyRune, Rune: 'j'}, "j"},
		{"ctrl chord", KeyEvent{Key: KeyRune, Rune: 'c', Ctrl: true}, "ctrl+c"},
		{"alt chord", KeyEvent{Key: KeyEnter, Alt: true}, "alt+enter"},
		{"ctrl alt", KeyEvent{Key: KeyRune, Rune: 'x', Ctrl: true, Alt: true}, "ctrl+alt+x"},
		{"escape", KeyEvent{Key: KeyEscape}, "esc"},
		{"space", KeyEvent{Key: KeyRune, Rune: ' '}, "space"},
		{"unnamed key", KeyEvent{Key: KeyNone}, "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ev.String())
		})
	}
}
