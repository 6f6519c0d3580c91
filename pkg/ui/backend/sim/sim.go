// Package sim provides an in-memory backend for tests, built on tcell's
// simulation screen. Tests inject key events and capture rendered frames as
// strings.
package sim

import (
	"strings"
	"sync"

	tcellv2 "github.com/gdamore/tcell/v2"

	"github.com/mdevan/cadence/pkg/ui/backend/tcell"
	"github.com/mdevan/cadence/pkg/ui/terminal"
)

// Backend is a testable backend with screen capture.
type Backend struct {
	*tcell.Backend
	screen tcellv2.SimulationScreen
	mu     sync.Mutex
}

// New creates a simulation backend with the given dimensions.
func New(width, height int) *Backend {
	screen := tcellv2.NewSimulationScreen("")
	screen.SetSize(width, height)
	return &Backend{
		Backend: tcell.NewWithScreen(screen),
		screen:  screen,
	}
}

// InjectKey injects a key event.
func (s *Backend) InjectKey(key terminal.Key, r rune) {
	_ = s.PostEvent(terminal.KeyEvent{Key: key, Rune: r})
}

// InjectKeyRune injects a regular character keypress.
func (s *Backend) InjectKeyRune(r rune) {
	s.InjectKey(terminal.KeyRune, r)
}

// InjectKeyString injects a string as a sequence of keypresses.
func (s *Backend) InjectKeyString(str string) {
	for _, r := range str {
		s.InjectKeyRune(r)
	}
}

// InjectResize resizes the simulation screen and posts the resize event.
func (s *Backend) InjectResize(width, height int) {
	s.mu.Lock()
	s.screen.SetSize(width, height)
	s.mu.Unlock()
	_ = s.PostEvent(terminal.ResizeEvent{Width: width, Height: height})
}

// InjectPaste injects text as a bracketed paste.
func (s *Backend) InjectPaste(text string) {
	_ = s.screen.PostEvent(tcellv2.NewEventPaste(true))
	for _, r := range text {
		_ = s.screen.PostEvent(tcellv2.NewEventKey(tcellv2.KeyRune, r, 0))
	}
	_ = s.screen.PostEvent(tcellv2.NewEventPaste(false))
}

// Capture returns the current screen content as newline-joined rows.
func (s *Backend) Capture() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, h := s.screen.Size()
	var lines []string
	for y := 0; y < h; y++ {
		var line strings.Builder
		for x := 0; x < w; x++ {
			mainc, _, _, _ := s.screen.GetContent(x, y)
			if mainc == 0 {
				mainc = ' '
			}
			line.WriteRune(mainc)
		}
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

// FindText reports the position of the first occurrence of text on screen,
// or (-1, -1) if absent.
func (s *Backend) FindText(text string) (x, y int) {
	for row, line := range strings.Split(s.Capture(), "\n") {
		if col := strings.Index(line, text); col >= 0 {
			return col, row
		}
	}
	return -1, -1
}

// ContainsText reports whether text appears anywhere on screen.
func (s *Backend) ContainsText(text string) bool {
	_, y := s.FindText(text)
	return y >= 0
}
