package runtime

import (
	"context"
	"errors"
	"time"

	"github.com/mdevan/cadence/pkg/action"
	"github.com/mdevan/cadence/pkg/bus"
	"github.com/mdevan/cadence/pkg/logging"
	"github.com/mdevan/cadence/pkg/ui/backend"
	"github.com/mdevan/cadence/pkg/ui/terminal"
)

// ReportedError carries the most recent Error action's message out of the
// loop. The loop itself ended cleanly; the message is surfaced through the
// process exit status.
type ReportedError struct {
	Message string
}

func (e *ReportedError) Error() string {
	return e.Message
}

// Config configures a Driver.
type Config struct {
	Backend    backend.Backend
	Bus        *bus.Bus
	Components []Component
	Logger     *logging.Logger

	// TickRate is the application tick cadence. Defaults to one second.
	TickRate time.Duration

	// FrameRate is the render tick cadence. Defaults to 250ms.
	FrameRate time.Duration
}

// Driver is the event loop: the single consumer of the action bus and the
// only goroutine that ever mutates component state or draws. Input polling
// and scheduler tasks run concurrently but communicate exclusively through
// the bus.
type Driver struct {
	backend    backend.Backend
	bus        *bus.Bus
	tx         *bus.Sender
	components []Component
	log        *logging.Logger
	tickRate   time.Duration
	frameRate  time.Duration

	buf     *Buffer
	events  chan terminal.Event
	done    chan struct{}
	started chan struct{}
	running bool

	lastError string
}

// New creates a driver from config.
func New(cfg Config) *Driver {
	tickRate := cfg.TickRate
	if tickRate <= 0 {
		tickRate = time.Second
	}
	frameRate := cfg.FrameRate
	if frameRate <= 0 {
		frameRate = 250 * time.Millisecond
	}
	b := cfg.Bus
	if b == nil {
		b = bus.New()
	}
	return &Driver{
		backend:    cfg.Backend,
		bus:        b,
		tx:         b.Sender(),
		components: cfg.Components,
		log:        cfg.Logger,
		tickRate:   tickRate,
		frameRate:  frameRate,
		events:     make(chan terminal.Event, 64),
		done:       make(chan struct{}),
		started:    make(chan struct{}),
	}
}

// Started returns a channel closed once the loop is accepting input. Used
// by tests to know when event injection is safe.
func (d *Driver) Started() <-chan struct{} {
	return d.started
}

// Bus returns the driver's action bus, from which external producers
// (scheduler, signal watchers) obtain sender handles.
func (d *Driver) Bus() *bus.Bus {
	return d.bus
}

// Run enters the event loop and blocks until Quit, a fatal error, or
// context cancellation. A clean Quit returns nil unless an Error action was
// reported, in which case it returns *ReportedError with the most recent
// message.
func (d *Driver) Run(ctx context.Context) error {
	if d.backend == nil {
		return errors.New("backend is required")
	}
	if err := d.backend.Init(); err != nil {
		return err
	}
	defer d.backend.Fini()
	defer d.bus.Close()
	defer close(d.done)

	d.backend.HideCursor()
	w, h := d.backend.Size()
	d.buf = NewBuffer(w, h)

	for _, c := range d.components {
		if err := c.Register(d.bus.Sender()); err != nil {
			return err
		}
	}

	go d.pollEvents()

	ticker := time.NewTicker(d.tickRate)
	defer ticker.Stop()
	frames := time.NewTicker(d.frameRate)
	defer frames.Stop()

	d.log.Info(logging.CategoryDriver, "loop started", map[string]any{
		"tick_ms":  d.tickRate.Milliseconds(),
		"frame_ms": d.frameRate.Milliseconds(),
	})

	d.running = true
	close(d.started)
	for d.running {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-d.events:
			d.routeEvent(ev)
		case <-ticker.C:
			d.send(action.Tick{})
		case <-frames.C:
			d.send(action.Render{})
		case <-d.bus.Ready():
		}

		if err := d.drain(); err != nil {
			return err
		}
		if d.running {
			if err := d.draw(); err != nil {
				d.log.Error(logging.CategoryDriver, "draw failed", map[string]any{"error": err.Error()})
				return err
			}
		}
	}

	d.log.Info(logging.CategoryDriver, "loop stopped", nil)
	if d.lastError != "" {
		return &ReportedError{Message: d.lastError}
	}
	return nil
}

// pollEvents forwards raw terminal input to the loop. PollEvent returns nil
// once the backend is finalized, which ends the goroutine.
func (d *Driver) pollEvents() {
	for {
		ev := d.backend.PollEvent()
		if ev == nil {
			return
		}
		select {
		case d.events <- ev:
		case <-d.done:
			return
		}
	}
}

// routeEvent offers a raw event to every component; each may answer with at
// most one action. Resizes also go onto the bus so components observe them
// in dispatch order.
func (d *Driver) routeEvent(ev terminal.Event) {
	if r, ok := ev.(terminal.ResizeEvent); ok {
		d.send(action.Resize{Width: r.Width, Height: r.Height})
		return
	}
	for _, c := range d.components {
		if a := c.HandleEvent(ev); a != nil {
			d.send(a)
		}
	}
}

// drain empties the bus, folding every action through each component and
// re-enqueuing single follow-ups. Returns the first fatal component error.
func (d *Driver) drain() error {
	for d.running {
		a, ok := d.bus.TryRecv()
		if !ok {
			return nil
		}
		if err := d.dispatch(a); err != nil {
			return err
		}
	}
	return nil
}

func (d *Driver) dispatch(a action.Action) error {
	switch a.(type) {
	case action.Tick, action.Render:
		// High-frequency; not worth logging.
	default:
		d.log.Debug(logging.CategoryDispatch, "action", map[string]any{"name": action.Name(a)})
	}

	switch v := a.(type) {
	case action.Quit:
		// Components still fold Quit below; the loop stops after this drain.
		d.running = false
	case action.Resize:
		d.buf.Resize(v.Width, v.Height)
		d.backend.Sync()
	case action.Refresh:
		d.buf.MarkAllDirty()
		d.backend.Sync()
	case action.Suspend:
		d.suspend()
	case action.Resume:
		if err := d.backend.Resume(); err != nil {
			d.log.Error(logging.CategoryDriver, "resume failed", map[string]any{"error": err.Error()})
		}
		d.buf.MarkAllDirty()
		d.backend.Sync()
	case action.Error:
		// Non-fatal: remembered and surfaced in the exit status after Quit.
		d.lastError = v.Message
		d.log.Error(logging.CategoryDriver, "error reported", map[string]any{"message": v.Message})
	}

	for _, c := range d.components {
		follow, err := c.Update(a)
		if err != nil {
			return err
		}
		if follow != nil {
			d.send(follow)
		}
	}
	return nil
}

// suspend hands the terminal back to the shell and stops the process. The
// matching Resume action arrives from the SIGCONT watcher once the process
// continues. Platforms without job control resume immediately.
func (d *Driver) suspend() {
	if err := d.backend.Suspend(); err != nil {
		d.log.Error(logging.CategoryDriver, "suspend failed", map[string]any{"error": err.Error()})
		return
	}
	if err := raiseStop(); err != nil {
		d.send(action.Resume{})
	}
}

// draw clears the frame, runs every component's draw pass once, then
// flushes changed cells. Clearing first keeps the output a pure function of
// current state; dirty tracking keeps the flush cheap when nothing moved.
func (d *Driver) draw() error {
	d.buf.Clear()
	w, h := d.buf.Size()
	area := NewRect(0, 0, w, h)
	for _, c := range d.components {
		if err := c.Draw(d.buf, area); err != nil {
			return err
		}
	}
	d.buf.Flush(d.backend)

	cursorSet := false
	for _, c := range d.components {
		if p, ok := c.(CursorPositioner); ok {
			if x, y, ok := p.Cursor(); ok {
				d.backend.SetCursorPos(x, y)
				cursorSet = true
			}
		}
	}
	if !cursorSet {
		d.backend.HideCursor()
	}

	d.backend.Show()
	return nil
}

func (d *Driver) send(a action.Action) {
	if err := d.tx.Send(a); err != nil {
		d.log.Warn(logging.CategoryDriver, "send on closed bus", map[string]any{"name": action.Name(a)})
	}
}
