package models

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrTokenMissing       = errors.New("authentication required, please log in")
	ErrTokenInvalid       = errors.New("session token is invalid or expired")
)

// ErrorValidation reports malformed or missing input. Fields maps a json
// field name to its problems and may be nil.
type ErrorValidation struct {
	Message string
	Fields  map[string][]string
}

func (e ErrorValidation) Error() string { return e.Message }

func NewValidationError(message string) error {
	return ErrorValidation{Message: message}
}

func NewFieldError(field, message string) error {
	return ErrorValidation{
		Message: message,
		Fields:  map[string][]string{field: {message}},
	}
}

type ErrorUnauthorized struct {
	Message string
	Kind    string
}

func (e ErrorUnauthorized) Error() string { return e.Message }

type ErrorNotFound struct {
	Message string
}

func (e ErrorNotFound) Error() string { return e.Message }

func NewNotFoundError(resource string) error {
	return ErrorNotFound{Message: resource + " not found"}
}

// ErrorConflict reports a relational invariant violation. Status defaults to
// 409; ArticleCount is set when a tag is still referenced.
type ErrorConflict struct {
	Message      string
	Status       int
	ArticleCount int64
}

func (e ErrorConflict) Error() string { return e.Message }

func (e ErrorConflict) StatusCode() int {
	if e.Status == 0 {
		return http.StatusConflict
	}
	return e.Status
}

func NewConflictError(message string) error {
	return ErrorConflict{Message: message, Status: http.StatusConflict}
}

func NewTagInUseError(count int64) error {
	noun := "articles"
	if count == 1 {
		noun = "article"
	}
	return ErrorConflict{
		Message:      fmt.Sprintf("tag is used by %d %s and cannot be deleted", count, noun),
		Status:       http.StatusBadRequest,
		ArticleCount: count,
	}
}

// ErrorInternalServer wraps an unexpected store failure. Only Message is ever
// shown to clients.
type ErrorInternalServer struct {
	Message string
	Cause   error
}

func (e ErrorInternalServer) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e ErrorInternalServer) Unwrap() error { return e.Cause }

func NewInternalError(message string, cause error) error {
	return ErrorInternalServer{Message: message, Cause: cause}
}
