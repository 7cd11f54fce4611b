package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration operations.
var (
	// ErrTypeMismatch indicates the value type doesn't match the expected type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrValidationFailed indicates a value outside its allowed set or range.
	ErrValidationFailed = errors.New("validation failed")
)

// SettingError reports a problem with one setting.
type SettingError struct {
	Path  string // Dotted setting path, e.g. "output.format"
	Value any    // Offending value
	Err   error  // ErrTypeMismatch or ErrValidationFailed, possibly wrapped
}

func (e *SettingError) Error() string {
	return fmt.Sprintf("config %s = %v: %v", e.Path, e.Value, e.Err)
}

func (e *SettingError) Unwrap() error {
	return e.Err
}
