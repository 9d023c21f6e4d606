package activities

import (
	"errors"
	"fmt"
)

var (
	// ErrActivityNotFound is returned when the activity doesn't exist
	ErrActivityNotFound = errors.New("activity not found")

	// ErrActivityExists is returned when an activity id is reused
	ErrActivityExists = errors.New("activity already exists")
)

// ValidationError represents an input validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) error {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
