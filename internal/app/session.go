package app

import (
	"fmt"
	"io"

	"github.com/dshills/bytestr/internal/engine/bytestr"
	"github.com/dshills/bytestr/internal/engine/history"
)

// Session applies named operations to one owned string.
// A Session is not safe for concurrent use.
type Session struct {
	str     *bytestr.String
	logger  *Logger
	metrics *Metrics
	history *history.History
	steps   int
}

// NewSession creates a session holding a copy of initial.
// A nil logger discards output.
func NewSession(initial string, logger *Logger) *Session {
	if logger == nil {
		logger = NullLogger
	}
	return &Session{
		str:     bytestr.FromString(initial),
		logger:  logger.WithComponent("session"),
		metrics: NewMetrics(),
		history: history.NewHistory(history.DefaultMaxEntries),
	}
}

// WithMetrics makes the session record into m instead of its own tracker.
func (s *Session) WithMetrics(m *Metrics) *Session {
	if m != nil {
		s.metrics = m
	}
	return s
}

// Metrics returns the tracker the session records into.
func (s *Session) Metrics() *Metrics {
	return s.metrics
}

// String returns the current contents.
func (s *Session) String() string {
	return s.str.String()
}

// Value returns the underlying string. Mutating it mutates the session.
func (s *Session) Value() *bytestr.String {
	return s.str
}

// Print writes the contents followed by a newline to w.
func (s *Session) Print(w io.Writer) error {
	return s.str.Fprint(w)
}

// Steps returns the number of operations applied successfully.
func (s *Session) Steps() int {
	return s.steps
}

// Apply runs the named operation with args.
// Errors are returned as *OperationError wrapping the cause.
func (s *Session) Apply(name string, args ...string) (Result, error) {
	op, _ := Lookup(name)
	var snapshot []byte
	if op.Mutates {
		snapshot = s.str.Bytes()
	}
	capBefore := s.str.Cap()
	timer := StartTimer()

	res, err := ApplyTo(s.str, name, args...)
	if err != nil {
		s.metrics.RecordFailure()
		s.logger.Debug("%v", err)
		return Result{}, err
	}
	s.metrics.RecordApply(timer.Elapsed(), op.Mutates)
	s.metrics.RecordCapacity(capBefore, s.str.Cap())
	if op.Mutates {
		s.history.Record(name, snapshot, s.str.Bytes())
	}
	s.steps++

	s.logger.WithFields(map[string]any{
		"op":   name,
		"size": s.str.Len(),
		"cap":  s.str.Cap(),
	}).Debug("applied")
	return res, nil
}

// Undo reverts the last operation that changed the contents. The result
// holds the restored contents.
func (s *Session) Undo() (Result, error) {
	e, err := s.history.Undo(s.str)
	if err != nil {
		return Result{}, NewOperationError("undo", err)
	}
	s.logger.Debug("undo %s", e.Label)
	return Result{Op: "undo", Kind: KindText, Text: s.str.String()}, nil
}

// Redo reapplies the last undone operation.
func (s *Session) Redo() (Result, error) {
	e, err := s.history.Redo(s.str)
	if err != nil {
		return Result{}, NewOperationError("redo", err)
	}
	s.logger.Debug("redo %s", e.Label)
	return Result{Op: "redo", Kind: KindText, Text: s.str.String()}, nil
}

// ApplyTo runs the named operation directly on str.
func ApplyTo(str *bytestr.String, name string, args ...string) (Result, error) {
	op, ok := Lookup(name)
	if !ok {
		return Result{}, NewOperationError(name, ErrUnknownOperation)
	}
	if len(args) != len(op.Args) {
		err := fmt.Errorf("%w: want %d, got %d", ErrArgumentCount, len(op.Args), len(args))
		return Result{}, NewOperationError(name, err).WithContext("usage: " + op.Usage())
	}

	res, err := op.run(str, args)
	if err != nil {
		return Result{}, NewOperationError(name, err)
	}
	res.Op = name
	return res, nil
}
