package apperrors

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// The engine and store report failures through four error kinds:
// ValidationError (malformed input, 400), NotFoundError (missing entity,
// 404), ConflictError (invariant violation, 409) and StoreError
// (persistence failure, 500). Controllers map them to HTTP with Status.

// ValidationError rejects a malformed or incomplete inbound event.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validation builds a ValidationError from a format string.
func Validation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError signals that a referenced entity does not exist.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// NotFound builds a NotFoundError for the given entity kind and id.
func NotFound(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// ConflictError signals an invariant violation, e.g. booking a slot that
// is not available.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// Conflict builds a ConflictError from a format string.
func Conflict(format string, args ...interface{}) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// StoreError wraps a failure of the underlying persistence layer. The
// engine never retries; retry policy belongs to the caller.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Store wraps err as a StoreError for the named operation.
func Store(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

// Status maps an error to the HTTP status code it surfaces as. Unknown
// errors are treated as unexpected and map to 500.
func Status(err error) int {
	switch {
	case IsValidation(err):
		return fiber.StatusBadRequest
	case IsNotFound(err):
		return fiber.StatusNotFound
	case IsConflict(err):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}
