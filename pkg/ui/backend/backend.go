// Package backend defines the terminal abstraction the event loop renders
// through. The tcell implementation drives real terminals; the sim
// implementation drives an in-memory screen for tests.
package backend

import "github.com/mdevan/cadence/pkg/ui/terminal"

// Backend is the terminal abstraction layer.
type Backend interface {
	// Init enters the terminal (alt screen, raw mode).
	Init() error

	// Fini restores the terminal state.
	Fini()

	// Size returns the current terminal dimensions.
	Size() (width, height int)

	// SetContent sets the cell at (x, y).
	SetContent(x, y int, r rune, style Style)

	// Show flushes pending cell updates to the terminal.
	Show()

	// Clear clears the screen.
	Clear()

	// HideCursor hides the terminal cursor.
	HideCursor()

	// SetCursorPos shows the cursor at the given position.
	SetCursorPos(x, y int)

	// PollEvent blocks until an input event is available. Returns nil when
	// the backend is shutting down.
	PollEvent() terminal.Event

	// PostEvent injects an event into the input queue. Used by tests.
	PostEvent(ev terminal.Event) error

	// Suspend releases the terminal so the process can stop or shell out.
	Suspend() error

	// Resume re-acquires the terminal after Suspend.
	Resume() error

	// Sync forces a full repaint on the next Show.
	Sync()
}
