package config

import (
	"fmt"
	"slices"
	"time"

	"github.com/dshills/bytestr/internal/config/loader"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Default configuration values.
const (
	DefaultLogLevel        = "info"
	DefaultFormat          = FormatText
	DefaultScriptTimeout   = 5 * time.Second
	DefaultWatchDebounce   = 100 * time.Millisecond
	DefaultPrompt          = "bstr> "
	DefaultREPLHistorySize = 100
)

var (
	validFormats = []string{FormatText, FormatJSON, FormatYAML}
	validLevels  = []string{"debug", "info", "warn", "warning", "error"}
)

// Config holds all bstr settings.
type Config struct {
	Logging LoggingConfig
	Output  OutputConfig
	Script  ScriptConfig
	REPL    REPLConfig
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level string
}

// OutputConfig controls how results are rendered.
type OutputConfig struct {
	Format  string // text, json or yaml
	Pretty  bool   // Indent JSON output
	Newline bool   // Terminate text output with a newline
}

// ScriptConfig configures the Lua script runner.
type ScriptConfig struct {
	Timeout  time.Duration
	Debounce time.Duration // Delay before re-running a watched script
}

// REPLConfig configures the interactive shell.
type REPLConfig struct {
	Prompt      string
	HistorySize int
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: DefaultLogLevel},
		Output:  OutputConfig{Format: DefaultFormat, Newline: true},
		Script:  ScriptConfig{Timeout: DefaultScriptTimeout, Debounce: DefaultWatchDebounce},
		REPL:    REPLConfig{Prompt: DefaultPrompt, HistorySize: DefaultREPLHistorySize},
	}
}

// Options controls where Load looks for settings.
type Options struct {
	// Path is the configuration file. Empty means no file layer.
	Path string
	// FS overrides the file system used to read Path.
	FS loader.FileSystem
	// SkipEnv disables the environment layer.
	SkipEnv bool
}

// Load resolves defaults, the configuration file and the environment into a
// validated Config.
func Load(opts Options) (*Config, error) {
	data := Default().toMap()

	if opts.Path != "" {
		fileData, err := loader.ForPath(opts.FS, opts.Path).Load()
		if err != nil {
			return nil, err
		}
		data = loader.Merge(data, fileData)
	}

	if !opts.SkipEnv {
		envData, err := loader.NewEnvLoader().Load()
		if err != nil {
			return nil, err
		}
		data = loader.Merge(data, envData)
	}

	cfg, err := FromMap(data)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// toMap renders the config as a nested map for layering.
func (c *Config) toMap() map[string]any {
	return map[string]any{
		"logging": map[string]any{"level": c.Logging.Level},
		"output": map[string]any{
			"format":  c.Output.Format,
			"pretty":  c.Output.Pretty,
			"newline": c.Output.Newline,
		},
		"script": map[string]any{
			"timeout": c.Script.Timeout.String(),
			"watch":   map[string]any{"debounce": c.Script.Debounce.String()},
		},
		"repl": map[string]any{
			"prompt":       c.REPL.Prompt,
			"history_size": int64(c.REPL.HistorySize),
		},
	}
}

// FromMap builds a Config from a nested settings map. Missing settings keep
// their defaults; settings of the wrong type are reported as ErrTypeMismatch.
func FromMap(data map[string]any) (*Config, error) {
	cfg := Default()
	r := mapReader{data: data}

	r.str("logging.level", &cfg.Logging.Level)
	r.str("output.format", &cfg.Output.Format)
	r.boolean("output.pretty", &cfg.Output.Pretty)
	r.boolean("output.newline", &cfg.Output.Newline)
	r.duration("script.timeout", &cfg.Script.Timeout)
	r.duration("script.watch.debounce", &cfg.Script.Debounce)
	r.str("repl.prompt", &cfg.REPL.Prompt)
	r.integer("repl.history_size", &cfg.REPL.HistorySize)

	if r.err != nil {
		return nil, r.err
	}
	return cfg, nil
}

// Validate checks that every setting is within its allowed values.
func (c *Config) Validate() error {
	switch {
	case !slices.Contains(validLevels, c.Logging.Level):
		return invalid("logging.level", c.Logging.Level, fmt.Sprintf("want one of %v", validLevels))
	case !slices.Contains(validFormats, c.Output.Format):
		return invalid("output.format", c.Output.Format, fmt.Sprintf("want one of %v", validFormats))
	case c.Script.Timeout <= 0:
		return invalid("script.timeout", c.Script.Timeout, "must be positive")
	case c.Script.Debounce < 0:
		return invalid("script.watch.debounce", c.Script.Debounce, "must not be negative")
	case c.REPL.HistorySize < 0:
		return invalid("repl.history_size", c.REPL.HistorySize, "must not be negative")
	}
	return nil
}

func invalid(path string, value any, reason string) error {
	return &SettingError{Path: path, Value: value, Err: fmt.Errorf("%w: %s", ErrValidationFailed, reason)}
}

// mapReader copies typed values out of a settings map, keeping the first error.
type mapReader struct {
	data map[string]any
	err  error
}

func (r *mapReader) get(path string) (any, bool) {
	if r.err != nil {
		return nil, false
	}
	return loader.GetByPath(r.data, path)
}

func (r *mapReader) mismatch(path string, v any, want string) {
	r.err = &SettingError{Path: path, Value: v, Err: fmt.Errorf("%w: want %s, got %T", ErrTypeMismatch, want, v)}
}

func (r *mapReader) str(path string, dst *string) {
	v, ok := r.get(path)
	if !ok {
		return
	}
	s, ok := v.(string)
	if !ok {
		r.mismatch(path, v, "string")
		return
	}
	*dst = s
}

func (r *mapReader) boolean(path string, dst *bool) {
	v, ok := r.get(path)
	if !ok {
		return
	}
	b, ok := v.(bool)
	if !ok {
		r.mismatch(path, v, "bool")
		return
	}
	*dst = b
}

func (r *mapReader) integer(path string, dst *int) {
	v, ok := r.get(path)
	if !ok {
		return
	}
	switch n := v.(type) {
	case int:
		*dst = n
	case int64:
		*dst = int(n)
	case uint64:
		*dst = int(n)
	case float64:
		if n != float64(int(n)) {
			r.mismatch(path, v, "integer")
			return
		}
		*dst = int(n)
	default:
		r.mismatch(path, v, "integer")
	}
}

func (r *mapReader) duration(path string, dst *time.Duration) {
	v, ok := r.get(path)
	if !ok {
		return
	}
	switch d := v.(type) {
	case time.Duration:
		*dst = d
	case string:
		parsed, err := time.ParseDuration(d)
		if err != nil {
			r.mismatch(path, v, "duration")
			return
		}
		*dst = parsed
	default:
		r.mismatch(path, v, "duration string")
	}
}
