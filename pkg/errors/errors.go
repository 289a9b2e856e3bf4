// Package errors holds the error taxonomy shared by the service and API layers.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrOptimisticLock the row was changed by another operation between read and write
	ErrOptimisticLock = errors.New("record was modified by another operation, please retry")

	ErrValidation        = errors.New("validation failed")
	ErrForbidden         = errors.New("forbidden")
	ErrNotFound          = errors.New("not found")
	ErrIllegalTransition = errors.New("approved orders cannot be cancelled")
	ErrStorage           = errors.New("storage failure")
)

// ValidationError malformed or missing input, tied to a request field
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError builds a ValidationError for field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// StorageError a persistence failure surfaced to the host
type StorageError struct {
	Op  string
	Err error
}

// Storage wraps err as a StorageError; nil stays nil
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() []error { return []error{ErrStorage, e.Err} }

// NotFoundError a missing resource; unwraps to ErrNotFound
type NotFoundError struct {
	Resource string
}

// NewNotFoundError builds a NotFoundError for resource
func NewNotFoundError(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

func (e *NotFoundError) Unwrap() error { return ErrNotFound }
