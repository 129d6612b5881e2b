package apperrors

import (
	"errors"
	"fmt"
)

// NotFoundError means the requested entity or history version does not exist.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

func NotFound(resource, key string) *NotFoundError {
	return &NotFoundError{Resource: resource, Key: key}
}

func NotFoundf(resource, format string, args ...any) *NotFoundError {
	return &NotFoundError{Resource: resource, Key: fmt.Sprintf(format, args...)}
}

// ConflictError means a uniqueness constraint was violated, e.g. a slug collision.
type ConflictError struct {
	Field string
	Value string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Field, e.Value)
}

func Conflict(field, value string) *ConflictError {
	return &ConflictError{Field: field, Value: value}
}

// ValidationError means the caller supplied bad input: a missing required
// field, an empty patch, an unknown enum value.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func Validation(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// StorageError wraps backend store failures. The Safe message is what callers
// may see; Err keeps the full cause for logs.
type StorageError struct {
	Safe string
	Err  error
}

func (e *StorageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Safe, e.Err)
	}
	return e.Safe
}

func (e *StorageError) Unwrap() error { return e.Err }

func Storage(safe string, err error) *StorageError {
	return &StorageError{Safe: safe, Err: err}
}

func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

func IsConflict(err error) bool {
	var e *ConflictError
	return errors.As(err, &e)
}

func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}
