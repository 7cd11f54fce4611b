package bytestr

import (
	"errors"
	"fmt"
)

// Errors returned by String operations.
var (
	// ErrOutOfRange indicates an index outside the valid range.
	ErrOutOfRange = errors.New("index out of range")

	// ErrInvalidArgument indicates an argument the operation cannot accept,
	// such as an empty separator.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrAllocation indicates the buffer could not grow to the requested size.
	ErrAllocation = errors.New("allocation failed")
)

// Error describes a failed String operation.
type Error struct {
	Op    string // Operation name (e.g., "at", "split")
	Index int    // Offending index, when Err is ErrOutOfRange
	Len   int    // Length of the string at the time of the failure
	Err   error  // One of the package sentinels
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	switch {
	case errors.Is(e.Err, ErrOutOfRange):
		return fmt.Sprintf("bytestr: %s: index %d out of range [0,%d)", e.Op, e.Index, e.Len)
	case errors.Is(e.Err, ErrAllocation):
		return fmt.Sprintf("bytestr: %s: %v (length %d)", e.Op, e.Err, e.Len)
	default:
		return fmt.Sprintf("bytestr: %s: %v", e.Op, e.Err)
	}
}

// Unwrap returns the sentinel error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func outOfRange(op string, index, length int) error {
	return &Error{Op: op, Index: index, Len: length, Err: ErrOutOfRange}
}

func invalidArgument(op, detail string) error {
	return &Error{Op: op, Err: fmt.Errorf("%w: %s", ErrInvalidArgument, detail)}
}

// IsOutOfRange reports whether err is an out-of-range failure.
func IsOutOfRange(err error) bool {
	return errors.Is(err, ErrOutOfRange)
}

// IsInvalidArgument reports whether err is an invalid-argument failure.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}
