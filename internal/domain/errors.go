package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")

	// ErrInvalidEntity is returned when the storage boundary rejects an
	// entity (CHECK constraint violation). The transaction is rolled back
	// whole; nothing is partially committed.
	ErrInvalidEntity = errors.New("invalid entity")

	// Membership authorization failures. Each maps to exactly one violated
	// precondition; operations check preconditions in a documented order
	// and return the error for the first one that fails.
	ErrNotMember     = errors.New("not a member of the group")
	ErrNotAuthorized = errors.New("not an admin of the group")
	ErrTargetIsAdmin = errors.New("target is an admin of the group")
	ErrSelfKick      = errors.New("a user cannot kick themselves from a group")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s — %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}
