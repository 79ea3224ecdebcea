// Package domain defines the error taxonomy shared by the storage and
// service layers. Handlers match these with errors.As to pick HTTP
// status codes.
package domain

import "fmt"

// ValidationError reports an empty or invalid required field. Callers
// should re-prompt, not retry.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError reports that a referenced entity does not exist.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// AuthorizationError reports that a resolved resource is not owned by
// the caller. Handlers surface it like a not-found so existence is not
// leaked to non-owners.
type AuthorizationError struct {
	Kind string
	ID   string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("%s %s is not accessible by the caller", e.Kind, e.ID)
}

// StoreError wraps an underlying persistence failure. It is propagated
// upward untouched; non-idempotent writes must not be retried blindly.
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
