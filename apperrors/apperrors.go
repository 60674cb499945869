// Package apperrors defines the error kinds surfaced by the HTTP API and
// their mapping to status codes. Handlers build these from repository and
// file store failures; anything that is not an *Error is reported as a
// generic internal error.
package apperrors

import (
	"errors"
	"net/http"
)

// Kind classifies an API error
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuthentication
	KindConflict
	KindNotFound
	KindStore
	KindUpload
)

// GenericMessage is returned for failures that carry no client-facing message
const GenericMessage = "An unexpected error occurred"

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthentication:
		return "authentication"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindStore:
		return "store"
	case KindUpload:
		return "upload"
	default:
		return "internal"
	}
}

// Error is an API error with a message that is safe to send to the client
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so errors.Is(err, &Error{Kind: KindConflict}) works
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind && t.Message == ""
}

// StatusCode returns the HTTP status for the kind
func (k Kind) StatusCode() int {
	switch k {
	case KindValidation, KindUpload:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func NewValidationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func NewAuthenticationError(message string) *Error {
	return &Error{Kind: KindAuthentication, Message: message}
}

func NewConflictError(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func NewNotFoundError(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func NewUploadError(message string, err error) *Error {
	return &Error{Kind: KindUpload, Message: message, Err: err}
}

// NewStoreError wraps a storage failure; the cause is logged, never sent to the client
func NewStoreError(err error) *Error {
	return &Error{Kind: KindStore, Message: "Database error", Err: err}
}

// KindOf returns the kind of err, KindInternal when err is not an *Error
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// StatusCode maps err to an HTTP status code
func StatusCode(err error) int {
	return KindOf(err).StatusCode()
}

// Message returns the client-facing message for err
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return GenericMessage
}
