// Package action defines the closed set of messages that drive the event
// loop. Timer ticks, key-triggered intents, scheduler brackets and lifecycle
// signals are all values of this set. Actions are immutable; producers hand
// them to the bus and never see them again.
package action

import (
	"fmt"
	"sort"
)

// Action is a single event or intent. The interface is sealed so the set of
// variants is closed and dispatch sites can switch exhaustively.
type Action interface {
	isAction()
}

// Tick fires on the application tick cadence.
type Tick struct{}

func (Tick) isAction() {}

// Render fires on the frame cadence.
type Render struct{}

func (Render) isAction() {}

// Resize reports a new terminal size.
type Resize struct {
	Width  int
	Height int
}

func (Resize) isAction() {}

// Suspend asks the driver to hand the terminal back to the shell.
type Suspend struct{}

func (Suspend) isAction() {}

// Resume restores the terminal after a Suspend.
type Resume struct{}

func (Resume) isAction() {}

// Quit terminates the event loop.
type Quit struct{}

func (Quit) isAction() {}

// Refresh forces a full repaint.
type Refresh struct{}

func (Refresh) isAction() {}

// Error carries a failure reported by a collaborator. The driver logs it and
// surfaces the message in the process exit status; it does not stop the loop.
type Error struct {
	Message string
}

func (Error) isAction() {}

// Help is reserved for collaborators that open contextual help.
type Help struct{}

func (Help) isAction() {}

// ToggleShowHelp flips the help overlay.
type ToggleShowHelp struct{}

func (ToggleShowHelp) isAction() {}

// IncrementSingle bumps the counter by one. Ignored in Insert mode.
type IncrementSingle struct{}

func (IncrementSingle) isAction() {}

// DecrementSingle drops the counter by one. Ignored in Insert mode.
type DecrementSingle struct{}

func (DecrementSingle) isAction() {}

// ScheduleIncrement starts a delayed background increment. Ignored in Insert
// mode.
type ScheduleIncrement struct{}

func (ScheduleIncrement) isAction() {}

// ScheduleDecrement starts a delayed background decrement. Ignored in Insert
// mode.
type ScheduleDecrement struct{}

func (ScheduleDecrement) isAction() {}

// Increment adds Amount to the counter, saturating at the maximum.
type Increment struct {
	Amount uint64
}

func (Increment) isAction() {}

// Decrement subtracts Amount from the counter, saturating at zero.
type Decrement struct {
	Amount uint64
}

func (Decrement) isAction() {}

// CompleteInput submits a finished line of text to the history.
type CompleteInput struct {
	Text string
}

func (CompleteInput) isAction() {}

// EnterNormal switches to Normal mode.
type EnterNormal struct{}

func (EnterNormal) isAction() {}

// EnterInsert switches to Insert mode.
type EnterInsert struct{}

func (EnterInsert) isAction() {}

// EnterProcessing switches to Processing mode while background work runs.
type EnterProcessing struct{}

func (EnterProcessing) isAction() {}

// ExitProcessing returns from Processing to Normal mode.
type ExitProcessing struct{}

func (ExitProcessing) isAction() {}

// Update signals that component state changed and a redraw is wanted.
type Update struct{}

func (Update) isAction() {}

// Name returns the stable identifier used in logs and key-binding files.
// Payload-carrying variants return their bare name without the payload.
func Name(a Action) string {
	switch a.(type) {
	case Tick:
		return "tick"
	case Render:
		return "render"
	case Resize:
		return "resize"
	case Suspend:
		return "suspend"
	case Resume:
		return "resume"
	case Quit:
		return "quit"
	case Refresh:
		return "refresh"
	case Error:
		return "error"
	case Help:
		return "help"
	case ToggleShowHelp:
		return "toggle_show_help"
	case IncrementSingle:
		return "increment_single"
	case DecrementSingle:
		return "decrement_single"
	case ScheduleIncrement:
		return "schedule_increment"
	case ScheduleDecrement:
		return "schedule_decrement"
	case Increment:
		return "increment"
	case Decrement:
		return "decrement"
	case CompleteInput:
		return "complete_input"
	case EnterNormal:
		return "enter_normal"
	case EnterInsert:
		return "enter_insert"
	case EnterProcessing:
		return "enter_processing"
	case ExitProcessing:
		return "exit_processing"
	case Update:
		return "update"
	default:
		return fmt.Sprintf("unknown(%T)", a)
	}
}

// bindable lists the variants a key-binding file may name. Payload-carrying
// variants are produced programmatically and cannot be bound.
var bindable = map[string]Action{
	"quit":               Quit{},
	"suspend":            Suspend{},
	"refresh":            Refresh{},
	"help":               Help{},
	"toggle_show_help":   ToggleShowHelp{},
	"increment_single":   IncrementSingle{},
	"decrement_single":   DecrementSingle{},
	"schedule_increment": ScheduleIncrement{},
	"schedule_decrement": ScheduleDecrement{},
	"enter_normal":       EnterNormal{},
	"enter_insert":       EnterInsert{},
	"enter_processing":   EnterProcessing{},
	"exit_processing":    ExitProcessing{},
}

// Parse resolves an action name from a key-binding file.
func Parse(name string) (Action, error) {
	a, ok := bindable[name]
	if !ok {
		return nil, fmt.Errorf("unknown action %q (bindable: %v)", name, BindableNames())
	}
	return a, nil
}

// BindableNames returns the sorted names accepted by Parse.
func BindableNames() []string {
	names := make([]string, 0, len(bindable))
	for n := range bindable {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
