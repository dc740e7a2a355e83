package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeNotFound        = "RESOURCE_NOT_FOUND"
	CodeBadRequest      = "BAD_REQUEST"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeValidation      = "VALIDATION_ERROR"
	CodeVersionConflict = "VERSION_CONFLICT"
	CodeRateLimited     = "RATE_LIMITED"
	CodeUnexpected      = "UNEXPECTED_ERROR"
)

// Exception is a domain error that knows its HTTP status and envelope code.
type Exception struct {
	Message    string
	StatusCode int
	Code       string
}

func (e *Exception) Error() string {
	return e.Message
}

// Is matches exceptions by status and code so sentinel comparisons work
// for formatted messages of the same kind.
func (e *Exception) Is(target error) bool {
	t, ok := target.(*Exception)
	if !ok {
		return false
	}
	return e.StatusCode == t.StatusCode && e.Code == t.Code && (t.Message == "" || t.Message == e.Message)
}

func NotFound(format string, args ...any) *Exception {
	return &Exception{Message: fmt.Sprintf(format, args...), StatusCode: http.StatusNotFound, Code: CodeNotFound}
}

func BadRequest(format string, args ...any) *Exception {
	return &Exception{Message: fmt.Sprintf(format, args...), StatusCode: http.StatusBadRequest, Code: CodeBadRequest}
}

func Unauthorized(format string, args ...any) *Exception {
	return &Exception{Message: fmt.Sprintf(format, args...), StatusCode: http.StatusUnauthorized, Code: CodeUnauthorized}
}

func Validation(format string, args ...any) *Exception {
	return &Exception{Message: fmt.Sprintf(format, args...), StatusCode: http.StatusBadRequest, Code: CodeValidation}
}

func Conflict(format string, args ...any) *Exception {
	return &Exception{Message: fmt.Sprintf(format, args...), StatusCode: http.StatusConflict, Code: CodeVersionConflict}
}

func TooManyRequests(format string, args ...any) *Exception {
	return &Exception{Message: fmt.Sprintf(format, args...), StatusCode: http.StatusTooManyRequests, Code: CodeRateLimited}
}

func Unexpected(format string, args ...any) *Exception {
	return &Exception{Message: fmt.Sprintf(format, args...), StatusCode: http.StatusInternalServerError, Code: CodeUnexpected}
}

// StatusCode returns the HTTP status carried by err, or 500.
func StatusCode(err error) int {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// Code returns the envelope error code carried by err, or UNEXPECTED_ERROR.
func Code(err error) string {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnexpected
}

// Message returns the client-facing message for err. Errors that are not
// exceptions are storage or programming failures and are not echoed back.
func Message(err error) string {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "An unexpected error occurred"
}

// Kind sentinels for errors.Is checks.
var (
	ErrNotFound        = &Exception{StatusCode: http.StatusNotFound, Code: CodeNotFound}
	ErrBadRequest      = &Exception{StatusCode: http.StatusBadRequest, Code: CodeBadRequest}
	ErrUnauthorized    = &Exception{StatusCode: http.StatusUnauthorized, Code: CodeUnauthorized}
	ErrValidation      = &Exception{StatusCode: http.StatusBadRequest, Code: CodeValidation}
	ErrVersionConflict = &Exception{StatusCode: http.StatusConflict, Code: CodeVersionConflict}
)
