// Package bus provides the action bus: a multi-producer, single-consumer
// queue of unbounded capacity. Producers (input handling, scheduler tasks,
// timers) must never stall, so Send never blocks; the accepted tradeoff is
// that the queue grows without bound if producers outrun the consumer.
//
// Each sender's actions are delivered in FIFO order relative to itself.
// Across senders the consumer sees one arbitrary interleaving; there is no
// global ordering guarantee.
package bus

import (
	"errors"
	"sync"

	"github.com/mdevan/cadence/pkg/action"
)

// ErrClosed is returned when sending on a closed bus.
var ErrClosed = errors.New("bus closed")

// Bus is the action queue. The zero value is not usable; call New.
type Bus struct {
	mu     sync.Mutex
	queue  []action.Action
	ready  chan struct{}
	closed bool
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{ready: make(chan struct{}, 1)}
}

// Sender returns a producer handle. Handles are cheap and any number may be
// held concurrently; a handle is safe for use from multiple goroutines.
func (b *Bus) Sender() *Sender {
	return &Sender{bus: b}
}

// Sender is a producer handle onto a Bus.
type Sender struct {
	bus *Bus
}

// Send enqueues an action. It never blocks. Returns ErrClosed if the
// consumer has shut the bus down.
func (s *Sender) Send(a action.Action) error {
	b := s.bus
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrClosed
	}
	b.queue = append(b.queue, a)
	b.mu.Unlock()

	select {
	case b.ready <- struct{}{}:
	default:
	}
	return nil
}

// TryRecv dequeues the next action without blocking. The second return is
// false when the queue is empty.
func (b *Bus) TryRecv() (action.Action, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.queue) == 0 {
		return nil, false
	}
	a := b.queue[0]
	b.queue = b.queue[1:]
	return a, true
}

// Ready returns a channel that receives a signal when the queue may have
// become non-empty. The signal is coalesced: one receive can correspond to
// many queued actions, so consumers should drain with TryRecv until empty.
func (b *Bus) Ready() <-chan struct{} {
	return b.ready
}

// Len returns the number of queued actions.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.queue)
}

// Close stops the bus. Subsequent sends fail with ErrClosed. Actions already
// queued remain drainable via TryRecv.
func (b *Bus) Close() {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()
}
