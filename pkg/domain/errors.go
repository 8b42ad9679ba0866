package domain

import (
	"errors"
	"fmt"
)

// Common domain errors
var (
	// ErrNotFound is returned when a requested record does not exist in
	// the caller's store scope. Whether the id is unknown or belongs to
	// another store is deliberately not distinguishable.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists is returned when trying to create a resource that already exists
	ErrAlreadyExists = errors.New("resource already exists")
	// ErrValidation is returned when input validation fails
	ErrValidation = errors.New("validation error")
	// ErrNoStore is returned when an operation needs an active store and
	// the user owns none.
	ErrNoStore = errors.New("no store associated with this user")
	// ErrUnauthorized is returned when credentials do not match any user
	ErrUnauthorized = errors.New("invalid username or password")
)

// StorageError wraps a failure from the underlying store. The operation
// is abandoned but the process keeps running; callers render Message.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error in %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// NewStorageError wraps err as a StorageError for the named operation.
func NewStorageError(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

// ValidationError builds an ErrValidation with a human-readable message.
func ValidationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
