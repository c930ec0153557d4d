// Package parsererror defines the error taxonomy of the report pipeline.
package parsererror

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is checks on fatal pipeline failures.
var (
	ErrLoad   = errors.New("load error")
	ErrSchema = errors.New("schema error")
)

// LoadError is returned when the input file is missing, unreadable or empty
// after parsing. It aborts the run.
type LoadError struct {
	FilePath string
	Reason   string
	Err      error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot load %s: %s: %v", e.FilePath, e.Reason, e.Err)
	}
	return fmt.Sprintf("cannot load %s: %s", e.FilePath, e.Reason)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Is makes every LoadError match ErrLoad.
func (e *LoadError) Is(target error) bool {
	return target == ErrLoad
}

// SchemaError is returned when no recognizable amount column exists.
type SchemaError struct {
	FilePath string
	Columns  []string
	Msg      string
}

func (e *SchemaError) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = "no valid amount column found"
	}
	if e.FilePath != "" {
		return fmt.Sprintf("schema error in %s: %s (columns: %v)", e.FilePath, msg, e.Columns)
	}
	return fmt.Sprintf("schema error: %s (columns: %v)", msg, e.Columns)
}

// Is makes every SchemaError match ErrSchema.
func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}

// ParseError describes a single cell that failed coercion. The normalizer
// only logs it: rows carrying one are dropped, never reported.
type ParseError struct {
	Row   int
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("row %d: failed to parse %s='%s': %v", e.Row, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError reports an invalid configuration or command input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
