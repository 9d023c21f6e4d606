package activityfeed

import (
	"errors"
	"fmt"
)

var (
	// ErrStoreUnavailable is returned when the ranked-set store cannot be reached
	// or rejects a command. The underlying store error is wrapped alongside it.
	ErrStoreUnavailable = errors.New("feed store unavailable")

	// ErrResolverFailure is returned when the configured item loader fails while
	// resolving a page. The page is never returned partially resolved.
	ErrResolverFailure = errors.New("item loader failed")
)

// ValidationError represents an invalid argument detected before any store call
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

// IsStoreUnavailable reports whether err came from the ranked-set store
func IsStoreUnavailable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
}

// IsResolverFailure reports whether err came from the item loader
func IsResolverFailure(err error) bool {
	return errors.Is(err, ErrResolverFailure)
}

func storeError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStoreUnavailable, op, err)
}

func resolverError(err error) error {
	return fmt.Errorf("%w: %w", ErrResolverFailure, err)
}
