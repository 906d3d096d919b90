package errors

import (
	"errors"
	"fmt"
)

// Domain errors - these map to specific HTTP responses
var (
	// Authentication errors
	ErrSessionAbsent  = errors.New("authentication required")
	ErrSessionExpired = errors.New("session expired")
	ErrTokenInvalid   = errors.New("invalid or expired token")

	// OAuth errors
	ErrProviderExchange = errors.New("provider code exchange failed")
	ErrStateMismatch    = errors.New("oauth state mismatch")

	// Identity errors
	ErrIdentityResolution    = errors.New("identity resolution failed")
	ErrIdentityNotFound      = errors.New("identity not found")
	ErrIdentityAlreadyExists = errors.New("identity already exists")

	// Resource errors
	ErrNotFound      = errors.New("not found")
	ErrHasDependents = errors.New("resource has dependent records")

	// General errors
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrValidation   = errors.New("validation error")
)

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Required creates a "field is required" validation error.
func Required(field string) *ValidationError {
	return &ValidationError{Field: field, Message: field + " is required"}
}

// Is wraps errors.Is for convenience.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
