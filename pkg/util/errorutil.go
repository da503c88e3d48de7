package util

import (
	"errors"
	"fmt"
)

// Error codes for the pipeline error taxonomy.
const (
	CodeConfigInvalid    = "CONFIG_INVALID"
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeIOFailure        = "IO_FAILURE"
)

// PipelineError standardizes application errors.
type PipelineError struct {
	Code    string
	Message string
	Details map[string]any
	Err     error
}

func (e *PipelineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// NewConfigError reports an invalid parameter, detected before any work
// starts. Details should name the offending parameter and constraint.
func NewConfigError(message string, details map[string]any) error {
	return &PipelineError{Code: CodeConfigInvalid, Message: message, Details: details}
}

// NewValidationError reports a record that violates the domain schema
// or one of its invariants.
func NewValidationError(message string, details map[string]any) error {
	return &PipelineError{Code: CodeValidationFailed, Message: message, Details: details}
}

// NewIOError reports an unreadable source or unwritable destination,
// carrying the path and the underlying cause.
func NewIOError(message, path string, err error) error {
	return &PipelineError{
		Code:    CodeIOFailure,
		Message: message,
		Details: map[string]any{"path": path},
		Err:     err,
	}
}

// AsPipelineError extracts a PipelineError from an error chain.
func AsPipelineError(err error) (*PipelineError, bool) {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// IsCode reports whether err carries the given pipeline error code.
func IsCode(err error, code string) bool {
	pe, ok := AsPipelineError(err)
	return ok && pe.Code == code
}
