// Package errors provides the classified error types returned by the OpenCLI
// document loader and its supporting stores.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors, one per failure class.
var (
	// ErrParse indicates a structured-text decoding failure.
	ErrParse = errors.New("parse error")
	// ErrIO indicates a failure reading the underlying byte source.
	ErrIO = errors.New("io error")
	// ErrNotText indicates input bytes that are not valid UTF-8 text.
	ErrNotText = errors.New("input is not valid text")
)

// ParseError represents a structured-text decoding failure.
type ParseError struct {
	Format  string // Format being decoded (e.g., "JSON", "YAML")
	Path    string // File path, if applicable
	Message string // Underlying decoder diagnostic
	Err     error  // Underlying error, if any
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to parse %s at %s: %s", e.Format, e.Path, e.Message)
	}
	return fmt.Sprintf("failed to parse %s: %s", e.Format, e.Message)
}

func (e *ParseError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrParse
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// IOError represents an I/O operation error with context.
type IOError struct {
	Operation string // Operation being performed (e.g., "read", "open")
	Path      string // File/resource path involved
	Err       error  // Underlying error
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to %s %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("failed to %s: %v", e.Operation, e.Err)
}

func (e *IOError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrIO
}

func (e *IOError) Is(target error) bool {
	return target == ErrIO
}

// OtherError represents a fixed, named failure that is neither a decoder
// error nor an I/O error.
type OtherError struct {
	Reason string // What went wrong (e.g., "input bytes are not valid UTF-8 text")
	Err    error  // Underlying error, if any
}

func (e *OtherError) Error() string {
	return e.Reason
}

func (e *OtherError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrNotText
}

// Helper functions for creating common errors

// NewParse creates a ParseError.
func NewParse(format, path, message string) *ParseError {
	return &ParseError{
		Format:  format,
		Path:    path,
		Message: message,
	}
}

// NewIO creates an IOError.
func NewIO(operation, path string, err error) *IOError {
	return &IOError{
		Operation: operation,
		Path:      path,
		Err:       err,
	}
}

// NewOther creates an OtherError.
func NewOther(reason string) *OtherError {
	return &OtherError{Reason: reason}
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// Is wraps errors.Is for convenience
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
