package api

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/redact"
	"github.com/phrazzld/todo-api/internal/validation"
)

// Error codes reported in extensions.code.
const (
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeInvalidArgument  = "INVALID_ARGUMENT"
	CodeCanceled         = "CANCELED"
	CodeInternal         = "INTERNAL"
)

// Message prefixes of presented errors.
const (
	validationPrefix = "Validation failed: "
	argumentPrefix   = "Invalid argument: "
	canceledPrefix   = "Request canceled: "
	unexpectedPrefix = "Unexpected execution error: "
)

// Error is a resolver error as the client sees it.
type Error struct {
	Message    string
	Code       string
	Violations []validation.Violation
	cause      error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying failure.
func (e *Error) Unwrap() error {
	return e.cause
}

// Extensions is picked up by graphql-go and rendered as the error's
// "extensions" member.
func (e *Error) Extensions() map[string]interface{} {
	ext := map[string]interface{}{"code": e.Code}
	if len(e.Violations) > 0 {
		ext["violations"] = e.Violations
	}
	return ext
}

// PresentError classifies err into a client-facing Error.
func PresentError(err error) *Error {
	if err == nil {
		return nil
	}

	var presented *Error
	if errors.As(err, &presented) {
		return presented
	}

	var verr *validation.Error
	if errors.As(err, &verr) {
		return &Error{
			Message:    validationPrefix + strings.Join(verr.Messages(), ", "),
			Code:       CodeValidationFailed,
			Violations: verr.Violations,
			cause:      err,
		}
	}

	if errors.Is(err, domain.ErrInvalidArgument) {
		msg := err.Error()
		var argErr *domain.ArgumentError
		if errors.As(err, &argErr) {
			msg = argErr.Message
		}
		return &Error{Message: argumentPrefix + msg, Code: CodeInvalidArgument, cause: err}
	}

	switch {
	case errors.Is(err, context.Canceled):
		return &Error{Message: canceledPrefix + context.Canceled.Error(), Code: CodeCanceled, cause: err}
	case errors.Is(err, context.DeadlineExceeded):
		return &Error{Message: canceledPrefix + context.DeadlineExceeded.Error(), Code: CodeCanceled, cause: err}
	}

	return &Error{Message: unexpectedPrefix + redact.Error(err), Code: CodeInternal, cause: err}
}

// presentAndLog presents err and logs it at a level matching its class.
func presentAndLog(ctx context.Context, fallback *slog.Logger, operation string, err error) error {
	presented := PresentError(err)
	if presented == nil {
		return nil
	}

	log := logger.FromContextOrDefault(ctx, fallback)
	attrs := []any{
		slog.String("operation", operation),
		slog.String("code", presented.Code),
		slog.String("error", redact.Error(err)),
	}

	switch presented.Code {
	case CodeInternal:
		log.Error("graphql operation failed", attrs...)
	case CodeCanceled:
		log.Warn("graphql operation canceled", attrs...)
	default:
		log.Debug("graphql operation rejected", attrs...)
	}
	return presented
}
