package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrInvalidArgument is returned when a domain precondition is violated,
	// for example constructing a task with a blank title.
	// It is usually wrapped by an *ArgumentError carrying the offending field.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidTaskStatus is returned when a status string is not one of
	// the recognized TaskStatus values.
	ErrInvalidTaskStatus = errors.New("invalid task status")
)

// Task-specific argument errors
var (
	// ErrTaskTitleRequired is returned when a title is empty or whitespace-only.
	ErrTaskTitleRequired = NewArgumentError("title", "title is required")
)

// ArgumentError describes a domain-level precondition failure on a single
// argument. It always unwraps to ErrInvalidArgument.
type ArgumentError struct {
	Field   string
	Message string
}

// NewArgumentError creates an ArgumentError for the named field.
func NewArgumentError(field, message string) *ArgumentError {
	return &ArgumentError{Field: field, Message: message}
}

// Error implements the error interface.
func (e *ArgumentError) Error() string {
	return e.Message
}

// Unwrap returns ErrInvalidArgument so callers can use errors.Is.
func (e *ArgumentError) Unwrap() error {
	return ErrInvalidArgument
}
