package app

import (
	"errors"
	"fmt"
	"io"

	"github.com/tidwall/gjson"
)

// Step is one operation of a batch document.
type Step struct {
	Op   string
	Args []string
}

// Batch is a parsed batch document:
//
//	{"input": "a,b", "ops": [["append", ",c"], {"op": "split", "args": [","]}]}
//
// Each step is either an array whose first element is the operation name,
// or an object with "op" and optional "args". String and number arguments
// are accepted.
type Batch struct {
	Input string
	Steps []Step
}

// ParseBatch parses a batch document.
func ParseBatch(data []byte) (*Batch, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidBatch)
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, fmt.Errorf("%w: top level must be an object", ErrInvalidBatch)
	}

	b := &Batch{}
	if in := doc.Get("input"); in.Exists() {
		if in.Type != gjson.String {
			return nil, fmt.Errorf("%w: input must be a string", ErrInvalidBatch)
		}
		b.Input = in.Str
	}

	ops := doc.Get("ops")
	if !ops.IsArray() {
		return nil, fmt.Errorf("%w: ops must be an array", ErrInvalidBatch)
	}

	for i, v := range ops.Array() {
		step, err := parseStep(i, v)
		if err != nil {
			return nil, err
		}
		b.Steps = append(b.Steps, step)
	}
	return b, nil
}

func parseStep(i int, v gjson.Result) (Step, error) {
	var (
		name gjson.Result
		args []gjson.Result
	)
	switch {
	case v.IsArray():
		elems := v.Array()
		if len(elems) == 0 {
			return Step{}, fmt.Errorf("%w: step %d is empty", ErrInvalidBatch, i)
		}
		name, args = elems[0], elems[1:]
	case v.IsObject():
		name = v.Get("op")
		if a := v.Get("args"); a.Exists() {
			if !a.IsArray() {
				return Step{}, fmt.Errorf("%w: step %d: args must be an array", ErrInvalidBatch, i)
			}
			args = a.Array()
		}
	default:
		return Step{}, fmt.Errorf("%w: step %d must be an array or object", ErrInvalidBatch, i)
	}

	if name.Type != gjson.String || name.Str == "" {
		return Step{}, fmt.Errorf("%w: step %d: missing operation name", ErrInvalidBatch, i)
	}

	step := Step{Op: name.Str, Args: make([]string, 0, len(args))}
	for _, a := range args {
		switch a.Type {
		case gjson.String, gjson.Number:
			step.Args = append(step.Args, a.String())
		default:
			return Step{}, fmt.Errorf("%w: step %d: argument %s is not a string or number", ErrInvalidBatch, i, a.Raw)
		}
	}
	return step, nil
}

// Run applies every step to a fresh session seeded with the batch input.
func (b *Batch) Run(logger *Logger) ([]Result, error) {
	return b.RunSession(NewSession(b.Input, logger))
}

// RunSession applies every step to s. It stops at the first failing step;
// results of the preceding steps are returned along with the error.
func (b *Batch) RunSession(s *Session) ([]Result, error) {
	results := make([]Result, 0, len(b.Steps))
	for i, step := range b.Steps {
		res, err := s.Apply(step.Op, step.Args...)
		if err != nil {
			var oe *OperationError
			if errors.As(err, &oe) {
				oe.WithContext(fmt.Sprintf("step %d", i))
			}
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// RunBatch reads, parses and runs a batch document.
func RunBatch(r io.Reader, logger *Logger) ([]Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read batch: %w", err)
	}
	b, err := ParseBatch(data)
	if err != nil {
		return nil, err
	}
	return b.Run(logger)
}
