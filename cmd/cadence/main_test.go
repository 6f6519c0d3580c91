package main

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mdevan/cadence/pkg/ui/backend/sim"
	"github.com/mdevan/cadence/pkg/ui/home"
	"github.com/mdevan/cadence/pkg/ui/runtime"
)

func TestParseOptionsDefaults(t *testing.T) {
	opts, err := parseOptions(nil)
	if err != nil {
		t.Fatalf("parseOptions: %v", err)
	}
	if opts.tickRate != time.Second {
		t.Errorf("tickRate = %v, want 1s", opts.tickRate)
	}
	if opts.frameRate != 250*time.Millisecond {
		t.Errorf("frameRate = %v, want 250ms", opts.frameRate)
	}
	if opts.showVersion {
		t.Error("showVersion should default to false")
	}
}

func TestParseOptionsOverrides(t *testing.T) {
	opts, err := parseOptions([]string{"-tick", "100ms", "-render", "16ms", "-log-level", "debug"})
	if err != nil {
		t.Fatalf("parseOptions: %v", err)
	}
	if opts.tickRate != 100*time.Millisecond {
		t.Errorf("tickRate = %v, want 100ms", opts.tickRate)
	}
	if opts.frameRate != 16*time.Millisecond {
		t.Errorf("frameRate = %v, want 16ms", opts.frameRate)
	}
	if opts.logLevel != "debug" {
		t.Errorf("logLevel = %q, want debug", opts.logLevel)
	}
}

func TestParseOptionsRejectsPositionalArgs(t *testing.T) {
	if _, err := parseOptions([]string{"extra"}); err == nil {
		t.Error("expected error for positional argument")
	}
}

func TestRunLoopReturnsAfterQuit(t *testing.T) {
	be := sim.New(40, 12)
	screen := home.New(home.Config{})
	drv := runtime.New(runtime.Config{
		Backend:    be,
		Components: []runtime.Component{screen},
	})

	done := make(chan error, 1)
	go func() {
		done <- runLoop(context.Background(), drv)
	}()
	select {
	case <-drv.Started():
	case <-time.After(time.Second):
		t.Fatal("driver did not start")
	}

	be.InjectKeyRune('q')

	// The signal watcher must not keep the group alive after a clean quit.
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("runLoop = %v, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("runLoop still blocked after quit")
	}
}

func TestUsageDocumentsExitCodes(t *testing.T) {
	for _, want := range []string{"exit codes:", "clean quit", "startup failure"} {
		if !strings.Contains(exitCodeUsage, want) {
			t.Errorf("exit code usage should mention %q", want)
		}
	}
}

func TestExitCodeForError(t *testing.T) {
	if got := exitCodeForError(nil); got != 0 {
		t.Errorf("nil error = %d, want 0", got)
	}
	if got := exitCodeForError(errors.New("plain")); got != 1 {
		t.Errorf("plain error = %d, want 1", got)
	}
	if got := exitCodeForError(withExitCode(errors.New("usage"), 2)); got != 2 {
		t.Errorf("coded error = %d, want 2", got)
	}
}

func TestWithExitCodeNilPassthrough(t *testing.T) {
	if withExitCode(nil, 2) != nil {
		t.Error("withExitCode(nil) should stay nil")
	}
}
