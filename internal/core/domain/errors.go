package domain

import (
	"errors"
	"fmt"
)

var (
	ErrTaskNotFound         = errors.New("task not found")
	ErrScheduleNotFound     = errors.New("schedule not found")
	ErrGenerationInProgress = errors.New("schedule generation already in progress")
	ErrGenerationFailed     = errors.New("schedule generation failed")
	ErrPersistence          = errors.New("persistence failure")
	ErrValidation           = errors.New("validation failed")
	ErrScheduleOverflow     = errors.New("schedule extends past midnight")
	ErrInvalidIndex         = errors.New("index out of range")
)

// ValidationError reports malformed input. It matches ErrValidation and, when
// set, the more specific Err.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrValidation}
	}
	return []error{ErrValidation, e.Err}
}
