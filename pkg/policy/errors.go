package policy

import (
	"errors"
	"fmt"
)

// ErrInvalidPolicy indicates a policy config that fails structural validation.
var ErrInvalidPolicy = errors.New("invalid policy")

// ValidationError describes a specific invalid field in a policy config.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid policy field %q: %s", e.Field, e.Message)
}

// Unwrap lets errors.Is match ErrInvalidPolicy.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidPolicy
}

// NewValidationError creates a ValidationError for a field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidationError checks whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
