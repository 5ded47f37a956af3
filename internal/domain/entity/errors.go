package entity

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain layer operations.
var (
	// ErrNotFound indicates that a requested entity was not found
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidInput indicates that the provided input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrDuplicate indicates a uniqueness constraint violation (slug, username, email)
	ErrDuplicate = errors.New("already exists")

	// ErrCategoryCycle indicates a parent assignment that would create a cycle
	// in a category tree
	ErrCategoryCycle = errors.New("category parent assignment would create a cycle")
)

// ValidationError represents a validation error with detailed field information.
// It implements the error interface and provides context about which field failed validation.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// TransitionError reports an editorial status change rejected by the
// workflow table.
type TransitionError struct {
	From Status
	To   Status
}

// Error returns a formatted error message for the rejected transition.
func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from '%s' to '%s'", e.From, e.To)
}
