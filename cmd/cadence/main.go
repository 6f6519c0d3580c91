// Command cadence is a terminal counter application: immediate and delayed
// counter mutations, a line editor feeding a history list, and vim-flavored
// modal input.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mdevan/cadence/pkg/action"
	"github.com/mdevan/cadence/pkg/bus"
	"github.com/mdevan/cadence/pkg/keymap"
	"github.com/mdevan/cadence/pkg/logging"
	"github.com/mdevan/cadence/pkg/scheduler"
	"github.com/mdevan/cadence/pkg/terminal"
	tcellbackend "github.com/mdevan/cadence/pkg/ui/backend/tcell"
	"github.com/mdevan/cadence/pkg/ui/home"
	"github.com/mdevan/cadence/pkg/ui/runtime"
)

// Version information - set via ldflags during build
var (
	version   = "1.0.0-dev"
	commit    = "unknown"
	buildDate = "unknown"
)

type options struct {
	configPath  string
	logDir      string
	logLevel    string
	tickRate    time.Duration
	frameRate   time.Duration
	taskDelay   time.Duration
	showVersion bool
}

func main() {
	out := terminal.NewWithOutput(os.Stderr)

	err := run(out, os.Args[1:])
	if err != nil && !errors.Is(err, context.Canceled) {
		out.Error("%v", err)
	}
	os.Exit(exitCodeForError(err))
}

func run(out *terminal.Writer, args []string) error {
	opts, err := parseOptions(args)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return withExitCode(err, 2)
	}

	if opts.showVersion {
		out.Println("cadence %s (%s, built %s)", version, commit, buildDate)
		return nil
	}

	if !terminal.IsTerminal() {
		return withExitCode(errors.New("stdout is not a terminal"), 2)
	}

	km, err := keymap.Load(opts.configPath)
	if err != nil {
		return withExitCode(err, 2)
	}

	log, err := logging.New(opts.logDir, logging.Level(opts.logLevel))
	if err != nil {
		return withExitCode(fmt.Errorf("open log: %w", err), 2)
	}
	defer log.Close()
	log.Info(logging.CategoryDriver, "starting", map[string]any{
		"version":    version,
		"tick_rate":  opts.tickRate.String(),
		"frame_rate": opts.frameRate.String(),
	})

	be, err := tcellbackend.New()
	if err != nil {
		return withExitCode(fmt.Errorf("open terminal: %w", err), 2)
	}

	b := bus.New()
	sched := scheduler.New(b.Sender(), opts.taskDelay, log)
	screen := home.New(home.Config{
		Keymap: km,
		Tasks:  sched,
		Logger: log,
	})

	drv := runtime.New(runtime.Config{
		Backend:    be,
		Bus:        b,
		Components: []runtime.Component{screen},
		Logger:     log,
		TickRate:   opts.tickRate,
		FrameRate:  opts.frameRate,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	err = runLoop(ctx, drv)
	var reported *runtime.ReportedError
	if errors.As(err, &reported) {
		log.Error(logging.CategoryDriver, "exited with reported error", map[string]any{
			"message": reported.Message,
		})
		return withExitCode(err, 1)
	}
	if err != nil {
		return err
	}

	log.Info(logging.CategoryDriver, "clean exit", nil)
	out.Dim("session %s", log.SessionID())
	return nil
}

// runLoop runs the driver alongside the signal watcher. The watcher must
// not outlive the driver: a clean Quit returns nil, which alone would never
// cancel the group context, so the driver goroutine cancels it explicitly on
// any exit.
func runLoop(ctx context.Context, drv *runtime.Driver) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return drv.Run(ctx)
	})
	g.Go(func() error {
		return watchSignals(ctx, drv.Bus().Sender())
	})
	return g.Wait()
}

// watchSignals translates process signals into actions. SIGINT quits through
// the normal shutdown path; SIGCONT redraws after the shell resumes us.
func watchSignals(ctx context.Context, tx *bus.Sender) error {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGCONT)
	defer signal.Stop(ch)

	for {
		select {
		case <-ctx.Done():
			return nil
		case sig := <-ch:
			var a action.Action
			switch sig {
			case syscall.SIGINT:
				a = action.Quit{}
			case syscall.SIGCONT:
				a = action.Resume{}
			default:
				continue
			}
			if err := tx.Send(a); err != nil {
				// Loop already shut down.
				return nil
			}
		}
	}
}

func parseOptions(args []string) (options, error) {
	var opts options

	fs := flag.NewFlagSet("cadence", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: cadence [flags]")
		fmt.Fprintln(fs.Output())
		fs.PrintDefaults()
		fmt.Fprint(fs.Output(), exitCodeUsage)
	}
	fs.StringVar(&opts.configPath, "config", defaultConfigPath(), "path to the keymap YAML file")
	fs.StringVar(&opts.logDir, "log-dir", defaultLogDir(), "directory for session logs")
	fs.StringVar(&opts.logLevel, "log-level", string(logging.LevelInfo), "minimum log level (debug, info, warn, error)")
	fs.DurationVar(&opts.tickRate, "tick", time.Second, "application tick interval")
	fs.DurationVar(&opts.frameRate, "render", 250*time.Millisecond, "render interval")
	fs.DurationVar(&opts.taskDelay, "task-delay", scheduler.DefaultDelay, "delay before scheduled counter changes apply")
	fs.BoolVar(&opts.showVersion, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}
	return opts, nil
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "keymap.yaml"
	}
	return filepath.Join(dir, "cadence", "keymap.yaml")
}

func defaultLogDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ".cadence"
	}
	return filepath.Join(dir, "cadence")
}
