// Package apperrors defines the error taxonomy shared by services and
// handlers, and the single translation point that turns any error into the
// uniform {"success": false, "error": "..."} JSON body.
package apperrors

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"phonetech/pkg/logx"
)

// Kind classifies an application error for HTTP status mapping.
type Kind int

const (
	// KindInternal covers storage and downstream faults (500).
	KindInternal Kind = iota
	// KindNotFound marks a missing referenced entity (404).
	KindNotFound
	// KindUnauthorized marks a missing or invalid credential (401).
	KindUnauthorized
	// KindForbidden marks an action on a resource the caller does not own (403).
	KindForbidden
	// KindValidation marks a schema constraint violation (400).
	KindValidation
	// KindInvalidState marks a business-rule violation such as insufficient stock (400).
	KindInvalidState
)

// Error wraps an underlying error with a kind and a safe user-facing message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// Status maps the error kind to an HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindNotFound:
		return fiber.StatusNotFound
	case KindUnauthorized:
		return fiber.StatusUnauthorized
	case KindForbidden:
		return fiber.StatusForbidden
	case KindValidation, KindInvalidState:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// NotFound reports a missing entity.
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Unauthorized reports a missing or invalid credential.
func Unauthorized(format string, args ...any) *Error {
	return &Error{Kind: KindUnauthorized, Message: fmt.Sprintf(format, args...)}
}

// Forbidden reports an ownership or role violation.
func Forbidden(format string, args ...any) *Error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

// Validation reports a schema constraint violation.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// InvalidState reports a business-rule violation.
func InvalidState(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidState, Message: fmt.Sprintf(format, args...)}
}

// Internal wraps a storage or downstream fault. The wrapped error is kept for
// logging; only the message is shown to clients.
func Internal(err error, message string) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// IsKind reports whether err is an application error of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// ErrorHandler is the Fiber error handler wired into the app config. It maps
// application errors to their status, preserves Fiber's own errors (404 on
// unknown routes and the like), and converts anything unexpected into a 500
// without leaking internals.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var appErr *Error
	if errors.As(err, &appErr) {
		if appErr.Kind == KindInternal {
			logx.Error().Err(appErr.Err).Str("path", c.Path()).Msg(appErr.Message)
		}
		return c.Status(appErr.Status()).JSON(fiber.Map{
			"success": false,
			"error":   appErr.Message,
		})
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{
			"success": false,
			"error":   fiberErr.Message,
		})
	}

	logx.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"error":   "internal server error",
	})
}
