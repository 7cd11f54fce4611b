package app

import (
	"bytes"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/dshills/bytestr/internal/config"
)

func newTestRenderer(t *testing.T, format string, pretty bool) *Renderer {
	t.Helper()
	r, err := NewRenderer(config.OutputConfig{Format: format, Pretty: pretty, Newline: true})
	if err != nil {
		t.Fatalf("NewRenderer(%q) error = %v", format, err)
	}
	return r
}

func TestNewRenderer_UnknownFormat(t *testing.T) {
	_, err := NewRenderer(config.OutputConfig{Format: "xml"})
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("error = %v, want ErrUnknownFormat", err)
	}
}

func TestNewRenderer_EmptyFormat(t *testing.T) {
	r, err := NewRenderer(config.OutputConfig{})
	if err != nil {
		t.Fatal(err)
	}
	if r.Format() != config.FormatText {
		t.Errorf("Format() = %q, want text", r.Format())
	}
}

func TestRenderer_Text(t *testing.T) {
	tests := []struct {
		res      Result
		expected string
	}{
		{Result{Kind: KindText, Text: "abc"}, "abc\n"},
		{Result{Kind: KindParts, Parts: []string{"a", "b"}}, "a\nb\n"},
		{Result{Kind: KindNumber, Number: -1}, "-1\n"},
		{Result{Kind: KindBool, Bool: true}, "true\n"},
	}

	r := newTestRenderer(t, config.FormatText, false)
	for _, tt := range tests {
		var buf bytes.Buffer
		if err := r.Render(&buf, tt.res); err != nil {
			t.Fatal(err)
		}
		if buf.String() != tt.expected {
			t.Errorf("Render(%+v) = %q, want %q", tt.res, buf.String(), tt.expected)
		}
	}
}

func TestRenderer_TextNoNewline(t *testing.T) {
	r, err := NewRenderer(config.OutputConfig{Format: config.FormatText})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := r.Render(&buf, Result{Kind: KindText, Text: "abc"}); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "abc" {
		t.Errorf("Render() = %q, want %q", buf.String(), "abc")
	}
}

func TestRenderer_JSON(t *testing.T) {
	r := newTestRenderer(t, config.FormatJSON, false)

	var buf bytes.Buffer
	res := Result{Op: "split", Kind: KindParts, Parts: []string{"a", "b\"c"}}
	if err := r.Render(&buf, res); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if !strings.HasSuffix(out, "\n") {
		t.Errorf("expected trailing newline, got %q", out)
	}
	if !gjson.Valid(out) {
		t.Fatalf("invalid JSON: %s", out)
	}
	if got := gjson.Get(out, "op").String(); got != "split" {
		t.Errorf("op = %q", got)
	}
	if got := gjson.Get(out, "kind").String(); got != "parts" {
		t.Errorf("kind = %q", got)
	}
	if got := gjson.Get(out, "value.1").String(); got != "b\"c" {
		t.Errorf("value.1 = %q", got)
	}
}

func TestRenderer_JSONValues(t *testing.T) {
	tests := []struct {
		res  Result
		want string
	}{
		{Result{Op: "find", Kind: KindNumber, Number: 6}, "6"},
		{Result{Op: "empty", Kind: KindBool, Bool: false}, "false"},
		{Result{Op: "print", Kind: KindText, Text: "x"}, `"x"`},
		{Result{Op: "split", Kind: KindParts}, "[]"},
	}
	for _, tt := range tests {
		b, err := resultJSON(tt.res)
		if err != nil {
			t.Fatal(err)
		}
		if got := gjson.GetBytes(b, "value").Raw; got != tt.want {
			t.Errorf("%s value = %s, want %s", tt.res.Op, got, tt.want)
		}
	}
}

func TestRenderer_JSONPretty(t *testing.T) {
	r := newTestRenderer(t, config.FormatJSON, true)

	var buf bytes.Buffer
	if err := r.Render(&buf, Result{Op: "size", Kind: KindNumber, Number: 3}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "\n  \"op\": \"size\"") {
		t.Errorf("expected indented JSON, got:\n%s", buf.String())
	}
}

func TestRenderer_YAML(t *testing.T) {
	r := newTestRenderer(t, config.FormatYAML, false)

	var buf bytes.Buffer
	if err := r.Render(&buf, Result{Op: "split", Kind: KindParts, Parts: []string{"x", "y"}}); err != nil {
		t.Fatal(err)
	}

	var doc struct {
		Op    string   `yaml:"op"`
		Kind  string   `yaml:"kind"`
		Value []string `yaml:"value"`
	}
	if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid YAML: %v\n%s", err, buf.String())
	}
	if doc.Op != "split" || doc.Kind != "parts" || len(doc.Value) != 2 || doc.Value[1] != "y" {
		t.Errorf("decoded %+v", doc)
	}
}

func TestRenderer_RenderAll(t *testing.T) {
	results := []Result{
		{Op: "append", Kind: KindText, Text: "ab"},
		{Op: "size", Kind: KindNumber, Number: 2},
	}

	var buf bytes.Buffer
	if err := newTestRenderer(t, config.FormatJSON, false).RenderAll(&buf, results); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if n := gjson.Get(out, "#").Int(); n != 2 {
		t.Fatalf("array length = %d, want 2: %s", n, out)
	}
	if got := gjson.Get(out, "1.value").Int(); got != 2 {
		t.Errorf("1.value = %d", got)
	}

	buf.Reset()
	if err := newTestRenderer(t, config.FormatText, false).RenderAll(&buf, results); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "ab\n2\n" {
		t.Errorf("text RenderAll = %q", buf.String())
	}

	buf.Reset()
	if err := newTestRenderer(t, config.FormatYAML, false).RenderAll(&buf, results); err != nil {
		t.Fatal(err)
	}
	var docs []map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &docs); err != nil {
		t.Fatal(err)
	}
	if len(docs) != 2 || docs[0]["op"] != "append" {
		t.Errorf("yaml RenderAll = %v", docs)
	}
}

func TestBatchJSON_Empty(t *testing.T) {
	b, err := BatchJSON(nil)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "[]" {
		t.Errorf("BatchJSON(nil) = %s, want []", b)
	}
}

func TestRenderer_JSONBinary(t *testing.T) {
	r := newTestRenderer(t, config.FormatJSON, false)

	tests := []struct {
		name     string
		res      Result
		encoding string
		want     []string
	}{
		{"invalid text", Result{Op: "set", Kind: KindText, Text: "a\xffb"}, "base64", []string{"a\xffb"}},
		{"invalid part", Result{Op: "split", Kind: KindParts, Parts: []string{"ok", "\xfe"}}, "base64", []string{"ok", "\xfe"}},
		{"valid non-ascii", Result{Op: "set", Kind: KindText, Text: "héllo"}, "", []string{"héllo"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := r.Render(&buf, tt.res); err != nil {
				t.Fatal(err)
			}
			doc := gjson.Parse(buf.String())
			if got := doc.Get("encoding").String(); got != tt.encoding {
				t.Errorf("encoding = %q, want %q", got, tt.encoding)
			}

			values := []gjson.Result{doc.Get("value")}
			if tt.res.Kind == KindParts {
				values = doc.Get("value").Array()
			}
			if len(values) != len(tt.want) {
				t.Fatalf("got %d values, want %d: %s", len(values), len(tt.want), buf.String())
			}
			for i, v := range values {
				got := v.String()
				if tt.encoding == "base64" {
					raw, err := base64.StdEncoding.DecodeString(got)
					if err != nil {
						t.Fatalf("value %d is not base64: %v", i, err)
					}
					got = string(raw)
				}
				if got != tt.want[i] {
					t.Errorf("value %d = %q, want %q", i, got, tt.want[i])
				}
			}
		})
	}
}

func TestRenderer_YAMLBinary(t *testing.T) {
	r := newTestRenderer(t, config.FormatYAML, false)

	var buf bytes.Buffer
	if err := r.Render(&buf, Result{Op: "set", Kind: KindText, Text: "a\xffb"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "!!binary") {
		t.Errorf("yaml output = %q, want a !!binary value", buf.String())
	}

	var doc struct {
		Value string `yaml:"value"`
	}
	if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatal(err)
	}
	if doc.Value != "a\xffb" {
		t.Errorf("decoded value = %q", doc.Value)
	}
}
