// Package app ties the string engine to configuration, logging and output
// rendering. It owns the operation registry shared by the command line,
// the REPL and batch documents.
package app

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/dshills/bytestr/internal/config"
)

// Application is the central coordinator for one bstr invocation.
type Application struct {
	config   *config.Config
	logger   *Logger
	renderer *Renderer
	metrics  *Metrics
	runID    string
	out      io.Writer
}

// Options configures the application.
type Options struct {
	// Stdout receives rendered results. Defaults to os.Stdout.
	Stdout io.Writer

	// LogOutput receives log lines. Defaults to os.Stderr.
	LogOutput io.Writer
}

// New creates an Application from a validated configuration.
func New(cfg *config.Config, opts Options) (*Application, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}

	renderer, err := NewRenderer(cfg.Output)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	logger := NewLogger(LoggerConfig{
		Level:  ParseLogLevel(cfg.Logging.Level),
		Output: opts.LogOutput,
		Prefix: "bstr",
	}).WithField("run", runID)

	logger.Debug("configured: format=%s timeout=%s", cfg.Output.Format, cfg.Script.Timeout)

	return &Application{
		config:   cfg,
		logger:   logger,
		renderer: renderer,
		metrics:  NewMetrics(),
		runID:    runID,
		out:      opts.Stdout,
	}, nil
}

// Config returns the application configuration.
func (app *Application) Config() *config.Config {
	return app.config
}

// Logger returns the application logger.
func (app *Application) Logger() *Logger {
	return app.logger
}

// Renderer returns the configured result renderer.
func (app *Application) Renderer() *Renderer {
	return app.renderer
}

// RunID identifies this invocation in log output.
func (app *Application) RunID() string {
	return app.runID
}

// Metrics returns the tracker shared by every session of this application.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}

// Output returns the writer results are rendered to.
func (app *Application) Output() io.Writer {
	return app.out
}

// NewSession creates a session seeded with input that logs through the
// application logger.
func (app *Application) NewSession(input string) *Session {
	return NewSession(input, app.logger).WithMetrics(app.metrics)
}

// Run applies a single operation to input and renders the result.
// In text format print writes the raw contents instead of a rendering.
func (app *Application) Run(input, op string, args ...string) (Result, error) {
	s := app.NewSession(input)
	res, err := s.Apply(op, args...)
	if err != nil {
		app.logger.Error("%v", err)
		return Result{}, err
	}
	if op == OpPrint && app.renderer.Format() == config.FormatText {
		return res, s.Print(app.out)
	}
	return res, app.renderer.Render(app.out, res)
}

// RunBatch runs a batch document and renders every result. On a failing
// step the results of the preceding steps are still rendered.
func (app *Application) RunBatch(r io.Reader) ([]Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read batch: %w", err)
	}
	b, err := ParseBatch(data)
	if err != nil {
		app.logger.Error("batch: %v", err)
		return nil, err
	}

	results, err := b.RunSession(app.NewSession(b.Input))
	if len(results) > 0 {
		if rerr := app.renderer.RenderAll(app.out, results); rerr != nil && err == nil {
			err = rerr
		}
	}
	if err != nil {
		app.logger.Error("batch: %v", err)
		return results, err
	}
	app.logger.Info("batch complete: %s", app.metrics.Snapshot())
	return results, nil
}
