package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrUnknownOperation indicates an operation name that is not registered.
	ErrUnknownOperation = errors.New("unknown operation")

	// ErrArgumentCount indicates the wrong number of operation arguments.
	ErrArgumentCount = errors.New("wrong number of arguments")

	// ErrBadArgument indicates an argument that cannot be parsed.
	ErrBadArgument = errors.New("bad argument")

	// ErrInvalidBatch indicates a malformed batch document.
	ErrInvalidBatch = errors.New("invalid batch document")

	// ErrUnknownFormat indicates an unsupported output format.
	ErrUnknownFormat = errors.New("unknown output format")
)

// OperationError represents an error that occurred during a specific operation.
type OperationError struct {
	Op      string // Operation name (e.g., "split", "erase")
	Context string // Additional context
	Err     error  // Underlying error
}

// NewOperationError creates a new OperationError.
func NewOperationError(op string, err error) *OperationError {
	return &OperationError{
		Op:  op,
		Err: err,
	}
}

// WithContext adds context to the error.
// Safe to call on nil receiver - returns nil.
func (e *OperationError) WithContext(ctx string) *OperationError {
	if e == nil {
		return nil
	}
	e.Context = ctx
	return e
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}

	msg := e.Op
	if e.Context != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Context)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
