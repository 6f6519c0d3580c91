package runtime

import (
	"github.com/mdevan/cadence/pkg/action"
	"github.com/mdevan/cadence/pkg/bus"
	"github.com/mdevan/cadence/pkg/ui/terminal"
)

// Component is the contract every UI unit implements. A component never
// touches the bus consumer side or other components' state; it converts raw
// input into actions and folds dispatched actions into its own state. All
// four methods are called from the driver goroutine only.
//
// Embed BaseComponent to get no-op defaults for the methods a component does
// not need.
type Component interface {
	// Register hands the component a producer handle so it can emit actions
	// outside the regular input/update flow (scheduler brackets, submissions).
	Register(tx *bus.Sender) error

	// HandleEvent converts a raw terminal event into zero or one action.
	// Returning nil means the event produced nothing.
	HandleEvent(ev terminal.Event) action.Action

	// Update folds one dispatched action into component state. It may return
	// at most one follow-up action; the driver re-enqueues it for the next
	// dispatch pass instead of recursing. A non-nil error stops the loop.
	Update(a action.Action) (action.Action, error)

	// Draw renders the component's current state into the given region. It
	// must not mutate component state and must be idempotent for unchanged
	// state and area. A non-nil error stops the loop.
	Draw(buf *Buffer, area Rect) error
}

// CursorPositioner is implemented by components that want a visible terminal
// cursor (e.g. a text input). Checked by the driver after each draw.
type CursorPositioner interface {
	// Cursor returns the desired cursor position; ok false hides it.
	Cursor() (x, y int, ok bool)
}

// BaseComponent provides no-op implementations of the Component contract.
type BaseComponent struct{}

// Register does nothing.
func (BaseComponent) Register(tx *bus.Sender) error { return nil }

// HandleEvent produces no action.
func (BaseComponent) HandleEvent(ev terminal.Event) action.Action { return nil }

// Update ignores the action.
func (BaseComponent) Update(a action.Action) (action.Action, error) { return nil, nil }

// Draw renders nothing.
func (BaseComponent) Draw(buf *Buffer, area Rect) error { return nil }
