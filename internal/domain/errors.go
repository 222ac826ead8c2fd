package domain

import (
	"errors"
	"fmt"
)

var (
	ErrEventNotFound     = errors.New("event not found")
	ErrNoPreferredOrigin = errors.New("event has no preferred origin")
)

// CoordinateError reports a latitude or longitude outside its valid range.
type CoordinateError struct {
	Field string
	Value float64
}

func (e *CoordinateError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Value)
}

// GazetteerError is fatal to a run: the gazetteer could not be loaded at all.
type GazetteerError struct {
	Path   string
	Reason string
	Err    error
}

func (e *GazetteerError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("gazetteer %q: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("gazetteer %q: %s", e.Path, e.Reason)
}

func (e *GazetteerError) Unwrap() error { return e.Err }

// RowValidationError describes a single skipped gazetteer row.
// Line is the 1-based line number in the source file (the header is line 1).
type RowValidationError struct {
	Line  int
	Field string
	Value string
	Err   error
}

func (e *RowValidationError) Error() string {
	return fmt.Sprintf("row at line %d: field %s=%q: %v", e.Line, e.Field, e.Value, e.Err)
}

func (e *RowValidationError) Unwrap() error { return e.Err }

// ConfigError reports an invalid resolution option.
type ConfigError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}
