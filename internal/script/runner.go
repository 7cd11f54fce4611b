package script

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/bytestr/internal/app"
	"github.com/dshills/bytestr/internal/config"
)

// Runner executes scripts, each in a fresh State.
type Runner struct {
	timeout  time.Duration
	debounce time.Duration
	out      io.Writer
	logger   *app.Logger
}

// NewRunner creates a runner from script settings.
func NewRunner(cfg config.ScriptConfig, out io.Writer, logger *app.Logger) *Runner {
	if out == nil {
		out = os.Stdout
	}
	if logger == nil {
		logger = app.NullLogger
	}
	return &Runner{
		timeout:  cfg.Timeout,
		debounce: cfg.Debounce,
		out:      out,
		logger:   logger.WithComponent("runner"),
	}
}

func (r *Runner) newState() *State {
	return NewState(WithTimeout(r.timeout), WithOutput(r.out), WithLogger(r.logger))
}

// Run executes the script at path.
func (r *Runner) Run(ctx context.Context, path string) error {
	s := r.newState()
	defer s.Close()
	return s.DoFile(ctx, path)
}

// RunString executes inline Lua code.
func (r *Runner) RunString(ctx context.Context, code string) error {
	s := r.newState()
	defer s.Close()
	return s.DoString(ctx, code)
}

// Watch runs the script at path, then runs it again each time the file
// changes, until ctx is done. Changes closer together than the configured
// debounce collapse into one run. fn, if not nil, receives the outcome of
// every run. Script failures do not stop the watch.
func (r *Runner) Watch(ctx context.Context, path string, fn func(error)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(abs); err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	defer w.Close()

	// Watch the directory so the watch survives rename-on-save.
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	run := func() {
		err := r.Run(ctx, abs)
		if err != nil {
			r.logger.Warn("%v", err)
		}
		if fn != nil {
			fn(err)
		}
	}
	run()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			r.logger.Debug("change: %s", ev)
			if timer == nil {
				timer = time.NewTimer(r.debounce)
			} else {
				timer.Reset(r.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			run()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			r.logger.Warn("watch: %v", err)
		}
	}
}
