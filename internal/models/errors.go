package models

import (
	"errors"
	"fmt"
)

// ValidationError reports a domain rule violation. All validation runs
// before any persistent write, so a ValidationError implies no side effects.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a validation error for a field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// NotFoundError reports a missing referenced entity
type NotFoundError struct {
	Resource string
	ID       int64
}

// NewNotFoundError creates a not-found error
func NewNotFoundError(resource string, id int64) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

// ConstraintViolationError reports a store-level constraint failure,
// typically the loser of a concurrent duplicate write. Not retried.
type ConstraintViolationError struct {
	Constraint string
	Err        error
}

// NewConstraintViolationError wraps a store constraint failure
func NewConstraintViolationError(constraint string, err error) *ConstraintViolationError {
	return &ConstraintViolationError{Constraint: constraint, Err: err}
}

// Error implements the error interface
func (e *ConstraintViolationError) Error() string {
	return fmt.Sprintf("constraint %s violated: %v", e.Constraint, e.Err)
}

// Unwrap returns the underlying store error
func (e *ConstraintViolationError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is a NotFoundError
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsConstraintViolation reports whether err is a ConstraintViolationError
func IsConstraintViolation(err error) bool {
	var cv *ConstraintViolationError
	return errors.As(err, &cv)
}
