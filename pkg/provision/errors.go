package provision

import (
	"errors"
	"fmt"
)

// ErrorCategory categorizes errors for handling and reporting.
type ErrorCategory string

const (
	// ErrCategoryMalformedInput indicates caller-supplied properties the
	// normalizer cannot interpret. Fails the invocation before any store
	// mutation.
	ErrCategoryMalformedInput ErrorCategory = "malformed_input"
	// ErrCategoryConflict indicates a resource that already exists.
	// Expected and handled during create.
	ErrCategoryConflict ErrorCategory = "conflict"
	// ErrCategoryNotFound indicates a resource that does not exist.
	// Expected and swallowed during delete.
	ErrCategoryNotFound ErrorCategory = "not_found"
	// ErrCategoryTransient indicates an unexpected store failure. Aborts
	// the remaining work.
	ErrCategoryTransient ErrorCategory = "transient"
	// ErrCategoryProtocol indicates an unrecognized request type.
	ErrCategoryProtocol ErrorCategory = "protocol"
	// ErrCategoryInternal indicates an internal error.
	ErrCategoryInternal ErrorCategory = "internal"
)

// Error is a structured error with category and context.
type Error struct {
	// Category classifies the error type.
	Category ErrorCategory

	// Message is a human-readable error message.
	Message string

	// Operation is the store operation that failed.
	Operation string

	// ResourceType is the type of resource involved.
	ResourceType string

	// ResourceID is the ID of the resource involved.
	ResourceID string

	// Cause is the underlying error.
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Category, e.Message)
	if e.Operation != "" {
		msg = fmt.Sprintf("[%s:%s] %s", e.Operation, e.Category, e.Message)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the target error matches this error's category.
func (e *Error) Is(target error) bool {
	var pe *Error
	if errors.As(target, &pe) {
		return e.Category == pe.Category
	}
	return false
}

// NewError creates a new Error.
func NewError(category ErrorCategory, message string) *Error {
	return &Error{Category: category, Message: message}
}

// WithOperation sets the failing operation.
func (e *Error) WithOperation(op string) *Error {
	e.Operation = op
	return e
}

// WithResource sets the resource type and ID.
func (e *Error) WithResource(resourceType, resourceID string) *Error {
	e.ResourceType = resourceType
	e.ResourceID = resourceID
	return e
}

// WithCause sets the underlying error.
func (e *Error) WithCause(err error) *Error {
	e.Cause = err
	return e
}

// Convenience constructors for common error types

// ErrMalformedInput creates a malformed input error.
func ErrMalformedInput(message string) *Error {
	return NewError(ErrCategoryMalformedInput, message)
}

// ErrConflict creates a conflict error.
func ErrConflict(resourceType, resourceID string) *Error {
	return NewError(ErrCategoryConflict, fmt.Sprintf("%s already exists: %s", resourceType, resourceID)).
		WithResource(resourceType, resourceID)
}

// ErrNotFound creates a not found error.
func ErrNotFound(resourceType, resourceID string) *Error {
	return NewError(ErrCategoryNotFound, fmt.Sprintf("%s not found: %s", resourceType, resourceID)).
		WithResource(resourceType, resourceID)
}

// ErrTransient creates a transient store error.
func ErrTransient(message string) *Error {
	return NewError(ErrCategoryTransient, message)
}

// ErrProtocol creates a protocol error.
func ErrProtocol(message string) *Error {
	return NewError(ErrCategoryProtocol, message)
}

// ErrInternal creates an internal error.
func ErrInternal(message string) *Error {
	return NewError(ErrCategoryInternal, message)
}

// IsCategory checks if an error is of a specific category.
func IsCategory(err error, category ErrorCategory) bool {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Category == category
	}
	return false
}
