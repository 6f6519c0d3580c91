// Package scheduler spawns delayed background mutations. Each task emits a
// fixed bracket of three actions: EnterProcessing immediately, then after a
// fixed delay the payload (Increment or Decrement) followed by
// ExitProcessing.
//
// Tasks are deliberately untracked and uncancellable: on Quit an in-flight
// task keeps running and its bracket sends fail against the closed bus. That
// send is logged and dropped; it is a known shutdown leak, not recovered.
package scheduler

import (
	"time"

	"github.com/mdevan/cadence/pkg/action"
	"github.com/mdevan/cadence/pkg/bus"
	"github.com/mdevan/cadence/pkg/logging"
)

// DefaultDelay is how long a scheduled mutation waits before applying.
const DefaultDelay = time.Second

// Scheduler issues bracketed delayed tasks onto the action bus.
type Scheduler struct {
	tx    *bus.Sender
	delay time.Duration
	log   *logging.Logger
}

// New creates a scheduler sending through tx. A non-positive delay uses
// DefaultDelay.
func New(tx *bus.Sender, delay time.Duration, log *logging.Logger) *Scheduler {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Scheduler{tx: tx, delay: delay, log: log}
}

// ScheduleIncrement starts a task that adds amount after the delay.
func (s *Scheduler) ScheduleIncrement(amount uint64) {
	s.schedule(action.Increment{Amount: amount})
}

// ScheduleDecrement starts a task that subtracts amount after the delay.
func (s *Scheduler) ScheduleDecrement(amount uint64) {
	s.schedule(action.Decrement{Amount: amount})
}

func (s *Scheduler) schedule(payload action.Action) {
	go func() {
		s.send(action.EnterProcessing{})
		time.Sleep(s.delay)
		s.send(payload)
		s.send(action.ExitProcessing{})
	}()
}

func (s *Scheduler) send(a action.Action) {
	if err := s.tx.Send(a); err != nil {
		s.log.Warn(logging.CategoryScheduler, "bracket send after shutdown", map[string]any{
			"name": action.Name(a),
		})
	}
}
