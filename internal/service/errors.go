// Package service provides the task lifecycle service.
package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/validation"
)

// Error handling principles:
//  1. Validation failures are returned as *validation.Error, unwrapped.
//  2. Domain precondition failures are returned as *domain.ArgumentError, unwrapped.
//  3. Storage and other unexpected failures are wrapped in *TaskServiceError,
//     which keeps the underlying error reachable through errors.Is/As.
//  4. A missing task on status update is not an error: the result is nil.

// TaskServiceError wraps errors from the task service with context.
type TaskServiceError struct {
	// Operation is the operation that failed (e.g., "create_task", "update_task_status")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for TaskServiceError.
func (e *TaskServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("task service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("task service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TaskServiceError) Unwrap() error {
	return e.Err
}

// NewTaskServiceError creates a new TaskServiceError.
// Validation and argument errors are client-caused and returned directly
// so the API layer can classify them.
func NewTaskServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if validation.IsValidationError(err) || errors.Is(err, domain.ErrInvalidArgument) {
		return err
	}

	return &TaskServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
