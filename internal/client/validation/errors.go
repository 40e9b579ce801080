package validation

import "errors"

// ErrValidation matches every *ValidationError.
var ErrValidation = errors.New("validation error")

// ValidationError is a local form failure. Reason is user-facing text.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
