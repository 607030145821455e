// AngelaMos | 2026
// errors.go

package core

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound        = errors.New("resource not found")
	ErrDuplicateKey    = errors.New("duplicate key")
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrTokenInvalid    = errors.New("invalid token")
	ErrInactiveAccount = errors.New("inactive account")
)

type AppError struct {
	Err     error
	Message string
	Status  int
	Code    string
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "application error"
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(err error, message string, status int, code string) *AppError {
	return &AppError{
		Err:     err,
		Message: message,
		Status:  status,
		Code:    code,
	}
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

func UnauthorizedError(message string) *AppError {
	if message == "" {
		message = "could not validate credentials"
	}
	return NewAppError(
		ErrUnauthorized,
		message,
		http.StatusUnauthorized,
		"UNAUTHORIZED",
	)
}

func ForbiddenError(message string) *AppError {
	return NewAppError(
		ErrForbidden,
		message,
		http.StatusForbidden,
		"FORBIDDEN",
	)
}

func NotFoundError(resource string) *AppError {
	return NewAppError(
		ErrNotFound,
		resource+" not found",
		http.StatusNotFound,
		"NOT_FOUND",
	)
}

func DuplicateError(field string) *AppError {
	code := "DUPLICATE_KEY"
	switch field {
	case "email":
		code = "DUPLICATE_EMAIL"
	case "username":
		code = "DUPLICATE_USERNAME"
	}
	return NewAppError(
		ErrDuplicateKey,
		field+" already registered",
		http.StatusBadRequest,
		code,
	)
}

// TokenInvalidError is the single authentication failure surfaced to
// clients. Signature mismatch, malformed structure and expiry all map
// here so callers cannot distinguish the root cause.
func TokenInvalidError() *AppError {
	return NewAppError(
		ErrTokenInvalid,
		"could not validate credentials",
		http.StatusUnauthorized,
		"UNAUTHORIZED",
	)
}

func InactiveAccountError() *AppError {
	return NewAppError(
		ErrInactiveAccount,
		"inactive account",
		http.StatusBadRequest,
		"INACTIVE_ACCOUNT",
	)
}
