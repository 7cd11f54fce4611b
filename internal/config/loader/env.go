package loader

import (
	"sort"
	"strconv"
	"strings"

	"github.com/xyproto/env/v2"
)

// EnvLoader loads configuration from environment variables.
type EnvLoader struct {
	mapping map[string]string // Env var -> config path
}

// NewEnvLoader creates an environment loader with the default BSTR_* mapping.
func NewEnvLoader() *EnvLoader {
	return NewEnvLoaderWithMapping(DefaultEnvMapping())
}

// NewEnvLoaderWithMapping creates a loader with custom environment variable mappings.
func NewEnvLoaderWithMapping(mapping map[string]string) *EnvLoader {
	return &EnvLoader{mapping: mapping}
}

// DefaultEnvMapping returns the default environment variable mappings.
func DefaultEnvMapping() map[string]string {
	return map[string]string{
		"BSTR_LOG_LEVEL":       "logging.level",
		"BSTR_OUTPUT_FORMAT":   "output.format",
		"BSTR_OUTPUT_PRETTY":   "output.pretty",
		"BSTR_OUTPUT_NEWLINE":  "output.newline",
		"BSTR_SCRIPT_TIMEOUT":  "script.timeout",
		"BSTR_SCRIPT_DEBOUNCE": "script.watch.debounce",
		"BSTR_REPL_PROMPT":     "repl.prompt",
		"BSTR_REPL_HISTORY":    "repl.history_size",
	}
}

// Load reads the mapped environment variables and returns a configuration map.
// Unset and empty variables are skipped.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)

	for _, name := range l.Variables() {
		if !env.Has(name) {
			continue
		}
		value := env.Str(name)
		if value == "" {
			continue
		}
		SetByPath(config, l.mapping[name], parseValue(value))
	}

	return config, nil
}

// Variables returns the mapped variable names in sorted order.
func (l *EnvLoader) Variables() []string {
	names := make([]string, 0, len(l.mapping))
	for name := range l.mapping {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// parseValue converts booleans and integers; everything else stays a string.
// Durations stay strings and are parsed where they are consumed.
func parseValue(s string) any {
	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	return s
}
