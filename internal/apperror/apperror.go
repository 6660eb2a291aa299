// Package apperror defines the error taxonomy shared by the store, the
// services and the HTTP layer. Validation maps to 400, not-found to 404,
// conflict to 409; anything else is an internal error surfaced as 500
// without implementation detail.
package apperror

import (
	"errors"
	"fmt"
)

// NotFoundError signals that a referenced entity does not exist
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// NotFound creates a NotFoundError
func NotFound(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError signals a malformed or missing input field
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validation creates a ValidationError without field detail
func Validation(message string) error {
	return &ValidationError{Message: message}
}

// ValidationFields creates a ValidationError with per-field detail
func ValidationFields(message string, fields map[string]string) error {
	return &ValidationError{Message: message, Fields: fields}
}

// ConflictError signals a unique-constraint violation
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// Conflict creates a ConflictError
func Conflict(message string) error {
	return &ConflictError{Message: message}
}

// IsNotFound reports whether err is a NotFoundError
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsConflict reports whether err is a ConflictError
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}
