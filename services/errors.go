package services

import (
	"fmt"
)

// NotFoundError means a referenced donation, request, user or badge does not
// exist. It is surfaced to the caller unchanged and never retried.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// ConflictError means the entity's current state forbids the operation,
// e.g. requesting a donation that is no longer PENDING.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// ValidationError means a supplied value breaks a domain rule, e.g. assigning
// a non-volunteer user as volunteer or rating outside 1-5.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// StorageError wraps a database failure. The service layer never retries or
// swallows these; orchestration above decides what to do.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("storage: %s: %v", e.Op, e.Err) }

func (e *StorageError) Unwrap() error { return e.Err }

func notFound(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

func storage(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
