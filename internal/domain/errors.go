package domain

import "errors"

var (
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("resource conflict")

	// ErrInvalidCredentials is returned by login when the email or password does not match.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ValidationError represents a field-level validation failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// DetailError attaches a client-facing message to one of the sentinel errors above.
type DetailError struct {
	Kind    error
	Message string
}

func (e *DetailError) Error() string {
	return e.Kind.Error() + ": " + e.Message
}

func (e *DetailError) Unwrap() error { return e.Kind }

// NewError wraps kind with a message that is safe to show to API clients.
func NewError(kind error, message string) error {
	return &DetailError{Kind: kind, Message: message}
}
