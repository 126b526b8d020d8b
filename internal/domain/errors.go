package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for classifying domain failures. Callers use errors.Is
// against these to decide how a failure is surfaced.
var (
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrInvalidState  = errors.New("invalid state")
	ErrUnprocessable = errors.New("unprocessable")
)

// DomainError carries a sentinel kind together with a human-readable message.
type DomainError struct {
	Err     error
	Message string
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	return e.Message
}

// Unwrap exposes the sentinel for errors.Is checks.
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewNotFoundError reports that an entity with the given identifier does not exist.
func NewNotFoundError(entity, id string) *DomainError {
	return &DomainError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s %s not found", entity, id),
	}
}

// NewConflictError reports that a write lost to a concurrent state change
// or would violate a uniqueness constraint.
func NewConflictError(message string) *DomainError {
	return &DomainError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewInvalidStateError reports an illegal aggregate state transition.
func NewInvalidStateError(from, to string) *DomainError {
	return &DomainError{
		Err:     ErrInvalidState,
		Message: fmt.Sprintf("invalid state transition from '%s' to '%s'", from, to),
	}
}

// NewUnprocessableError reports a request that was understood but rejected
// by a collaborator, such as a declined payment.
func NewUnprocessableError(message string) *DomainError {
	return &DomainError{
		Err:     ErrUnprocessable,
		Message: message,
	}
}
