package loader

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"
)

func TestTOMLLoader_Load(t *testing.T) {
	fsys := fstest.MapFS{
		"config.toml": {Data: []byte(`
[logging]
level = "debug"

[output]
format = "json"
pretty = true

[repl]
history_size = 50
`)},
	}

	config, err := NewTOMLLoaderWithFS(fsys, "config.toml").Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	tests := []struct {
		path string
		want any
	}{
		{"logging.level", "debug"},
		{"output.format", "json"},
		{"output.pretty", true},
		{"repl.history_size", int64(50)},
	}
	for _, tt := range tests {
		got, ok := GetByPath(config, tt.path)
		if !ok || got != tt.want {
			t.Errorf("%s = %v (%T), want %v (%T)", tt.path, got, got, tt.want, tt.want)
		}
	}
}

func TestTOMLLoader_Missing(t *testing.T) {
	config, err := NewTOMLLoaderWithFS(fstest.MapFS{}, "nope.toml").Load()
	if err != nil || config != nil {
		t.Errorf("Load() = %v, %v; want nil, nil", config, err)
	}
}

func TestTOMLLoader_ParseError(t *testing.T) {
	_, err := NewTOMLLoader("").LoadFromReader(strings.NewReader("[broken"))
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	if perr.Format != "toml" || perr.Path != "<reader>" {
		t.Errorf("ParseError = %+v", perr)
	}
}

func TestYAMLLoader_Load(t *testing.T) {
	fsys := fstest.MapFS{
		"config.yaml": {Data: []byte(`
logging:
  level: warn
script:
  timeout: 2s
  watch:
    debounce: 50ms
`)},
	}

	config, err := ForPath(fsys, "config.yaml").Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got, _ := GetByPath(config, "logging.level"); got != "warn" {
		t.Errorf("logging.level = %v", got)
	}
	if got, _ := GetByPath(config, "script.watch.debounce"); got != "50ms" {
		t.Errorf("script.watch.debounce = %v", got)
	}
}

func TestYAMLLoader_ParseError(t *testing.T) {
	_, err := NewYAMLLoader("").LoadFromReader(strings.NewReader("a: [1, 2"))
	var perr *ParseError
	if !errors.As(err, &perr) || perr.Format != "yaml" {
		t.Fatalf("error = %v, want yaml *ParseError", err)
	}
}

func TestForPath(t *testing.T) {
	tests := []struct {
		path string
		yaml bool
	}{
		{"bstr.toml", false},
		{"bstr.yaml", true},
		{"bstr.YML", true},
		{"bstr", false},
	}
	for _, tt := range tests {
		src, ok := ForPath(nil, tt.path).(*FileSource)
		if !ok {
			t.Fatalf("ForPath(%q) returned %T", tt.path, ForPath(nil, tt.path))
		}
		if isYAML := src.Format() == FormatYAML; isYAML != tt.yaml {
			t.Errorf("ForPath(%q) yaml = %v, want %v", tt.path, isYAML, tt.yaml)
		}
	}
}

func TestEnvLoader(t *testing.T) {
	t.Setenv("BSTR_LOG_LEVEL", "error")
	t.Setenv("BSTR_OUTPUT_PRETTY", "yes")
	t.Setenv("BSTR_REPL_HISTORY", "12")
	t.Setenv("BSTR_REPL_PROMPT", "")

	config, err := NewEnvLoader().Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	tests := []struct {
		path string
		want any
	}{
		{"logging.level", "error"},
		{"output.pretty", true},
		{"repl.history_size", int64(12)},
	}
	for _, tt := range tests {
		got, ok := GetByPath(config, tt.path)
		if !ok || got != tt.want {
			t.Errorf("%s = %v (%T), want %v", tt.path, got, got, tt.want)
		}
	}
	if _, ok := GetByPath(config, "repl.prompt"); ok {
		t.Error("empty variable should be skipped")
	}
}

func TestEnvLoader_CustomMapping(t *testing.T) {
	t.Setenv("MY_FORMAT", "yaml")
	config, err := NewEnvLoaderWithMapping(map[string]string{
		"MY_FORMAT": "output.format",
		"MY_UNSET":  "output.newline",
	}).Load()
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := GetByPath(config, "output.format"); got != "yaml" {
		t.Errorf("output.format = %v", got)
	}
	if _, ok := GetByPath(config, "output.newline"); ok {
		t.Error("unset variable should not appear")
	}
}

func TestMerge(t *testing.T) {
	dst := map[string]any{
		"output":  map[string]any{"format": "text", "pretty": false},
		"logging": map[string]any{"level": "info"},
	}
	src := map[string]any{
		"output": map[string]any{"format": "json"},
		"repl":   map[string]any{"prompt": "> "},
	}

	got := Merge(dst, src)

	checks := map[string]any{
		"output.format": "json",
		"output.pretty": false,
		"logging.level": "info",
		"repl.prompt":   "> ",
	}
	for path, want := range checks {
		if v, ok := GetByPath(got, path); !ok || v != want {
			t.Errorf("%s = %v, want %v", path, v, want)
		}
	}

	// The merged nested map must not alias src.
	src["repl"].(map[string]any)["prompt"] = "changed"
	if v, _ := GetByPath(got, "repl.prompt"); v != "> " {
		t.Errorf("merge aliased src map: %v", v)
	}
}

func TestSetByPath(t *testing.T) {
	data := map[string]any{"a": "scalar"}
	SetByPath(data, "a.b.c", 1)
	if v, ok := GetByPath(data, "a.b.c"); !ok || v != 1 {
		t.Errorf("a.b.c = %v", v)
	}
	if _, ok := GetByPath(data, "a.x"); ok {
		t.Error("a.x should not exist")
	}
}
