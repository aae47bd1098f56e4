package shared

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized indicates missing, malformed or expired credentials.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden indicates the caller lacks permission or the account is disabled.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound indicates a referenced record does not exist or is outside the caller's scope.
	ErrNotFound = errors.New("not found")
	// ErrBadRequest indicates invalid input, including duplicate unique fields.
	ErrBadRequest = errors.New("bad request")
)

// Error pairs a sentinel kind with a message safe to show to API clients.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

// Unwrap exposes the sentinel so errors.Is keeps working.
func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Unauthorized builds an ErrUnauthorized with a client message.
func Unauthorized(format string, args ...any) error {
	return newError(ErrUnauthorized, format, args...)
}

// Forbidden builds an ErrForbidden with a client message.
func Forbidden(format string, args ...any) error {
	return newError(ErrForbidden, format, args...)
}

// NotFound builds an ErrNotFound with a client message.
func NotFound(format string, args ...any) error {
	return newError(ErrNotFound, format, args...)
}

// BadRequest builds an ErrBadRequest with a client message.
func BadRequest(format string, args ...any) error {
	return newError(ErrBadRequest, format, args...)
}

// UserSafeMessage returns the client message carried by err, or a generic fallback.
func UserSafeMessage(err error) string {
	var se *Error
	if errors.As(err, &se) {
		return se.Message
	}
	return "internal server error"
}
