package app

import (
	"encoding/base64"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
	"gopkg.in/yaml.v3"

	"github.com/dshills/bytestr/internal/config"
)

// Renderer formats results for output.
type Renderer struct {
	format  string
	pretty  bool
	newline bool
}

// NewRenderer creates a renderer from output settings.
func NewRenderer(cfg config.OutputConfig) (*Renderer, error) {
	switch cfg.Format {
	case config.FormatText, config.FormatJSON, config.FormatYAML:
	case "":
		cfg.Format = config.DefaultFormat
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, cfg.Format)
	}
	return &Renderer{format: cfg.Format, pretty: cfg.Pretty, newline: cfg.Newline}, nil
}

// Format returns the renderer's output format.
func (r *Renderer) Format() string {
	return r.format
}

// Render writes one result.
func (r *Renderer) Render(w io.Writer, res Result) error {
	var (
		out []byte
		err error
	)
	switch r.format {
	case config.FormatJSON:
		out, err = resultJSON(res)
		if err == nil {
			out = r.finishJSON(out)
		}
	case config.FormatYAML:
		out, err = yaml.Marshal(toDocument(res))
	default:
		out = []byte(resultText(res))
		if r.newline {
			out = append(out, '\n')
		}
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", res.Op, err)
	}
	_, err = w.Write(out)
	return err
}

// RenderAll writes a sequence of results. JSON and YAML output is a single
// array; text output is one rendered result after another.
func (r *Renderer) RenderAll(w io.Writer, results []Result) error {
	switch r.format {
	case config.FormatJSON:
		out, err := BatchJSON(results)
		if err != nil {
			return err
		}
		_, err = w.Write(r.finishJSON(out))
		return err
	case config.FormatYAML:
		docs := make([]document, len(results))
		for i, res := range results {
			docs[i] = toDocument(res)
		}
		out, err := yaml.Marshal(docs)
		if err != nil {
			return fmt.Errorf("render batch: %w", err)
		}
		_, err = w.Write(out)
		return err
	default:
		for _, res := range results {
			if err := r.Render(w, res); err != nil {
				return err
			}
		}
		return nil
	}
}

func (r *Renderer) finishJSON(b []byte) []byte {
	if r.pretty {
		return pretty.Pretty(b)
	}
	return append(b, '\n')
}

// resultText renders a result value without decoration.
func resultText(res Result) string {
	switch res.Kind {
	case KindParts:
		return strings.Join(res.Parts, "\n")
	case KindNumber:
		return strconv.Itoa(res.Number)
	case KindBool:
		return strconv.FormatBool(res.Bool)
	default:
		return res.Text
	}
}

// resultJSON encodes a result as {"op":..,"kind":..,"value":..}.
// JSON strings cannot carry invalid UTF-8, so text and parts holding such
// bytes are base64 encoded and marked with "encoding":"base64".
func resultJSON(res Result) ([]byte, error) {
	out, err := sjson.SetBytes([]byte(`{}`), "op", res.Op)
	if err != nil {
		return nil, err
	}
	if out, err = sjson.SetBytes(out, "kind", res.Kind.String()); err != nil {
		return nil, err
	}
	if !isBinary(res) {
		return sjson.SetBytes(out, "value", resultValue(res))
	}

	if out, err = sjson.SetBytes(out, "encoding", "base64"); err != nil {
		return nil, err
	}
	if res.Kind == KindParts {
		parts := make([]string, len(res.Parts))
		for i, p := range res.Parts {
			parts[i] = base64.StdEncoding.EncodeToString([]byte(p))
		}
		return sjson.SetBytes(out, "value", parts)
	}
	return sjson.SetBytes(out, "value", base64.StdEncoding.EncodeToString([]byte(res.Text)))
}

// isBinary reports whether a text or parts result holds invalid UTF-8.
func isBinary(res Result) bool {
	switch res.Kind {
	case KindText:
		return !utf8.ValidString(res.Text)
	case KindParts:
		for _, p := range res.Parts {
			if !utf8.ValidString(p) {
				return true
			}
		}
	}
	return false
}

// BatchJSON encodes results as a compact JSON array.
func BatchJSON(results []Result) ([]byte, error) {
	out := []byte(`[]`)
	for _, res := range results {
		item, err := resultJSON(res)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", res.Op, err)
		}
		if out, err = sjson.SetRawBytes(out, "-1", item); err != nil {
			return nil, fmt.Errorf("render batch: %w", err)
		}
	}
	return out, nil
}

func resultValue(res Result) any {
	switch res.Kind {
	case KindParts:
		if res.Parts == nil {
			return []string{}
		}
		return res.Parts
	case KindNumber:
		return res.Number
	case KindBool:
		return res.Bool
	default:
		return res.Text
	}
}

// document is the YAML form of a result. yaml.v3 writes strings holding
// invalid UTF-8 as !!binary base64 scalars.
type document struct {
	Op    string `yaml:"op"`
	Kind  string `yaml:"kind"`
	Value any    `yaml:"value"`
}

func toDocument(res Result) document {
	return document{Op: res.Op, Kind: res.Kind.String(), Value: resultValue(res)}
}
