// Package apperrors defines the closed error taxonomy shared by every
// operation and both transports. Each failure in the system reduces to
// exactly one of BadInput, NotFound, Conflict or Internal; anything else is
// coerced to Internal before it crosses a transport boundary.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error into the taxonomy.
type Kind int

const (
	// BadInput covers malformed ids and failed schema validation.
	BadInput Kind = iota
	// NotFound means a referenced entity id does not resolve.
	NotFound
	// Conflict is a uniqueness violation, e.g. a duplicate manufacturer
	// name or a duplicate-key write.
	Conflict
	// Internal covers store unavailability and any unexpected failure.
	Internal
)

// Code returns the stable symbolic code carried across both transports.
func (k Kind) Code() string {
	switch k {
	case BadInput:
		return "BAD_USER_INPUT"
	case NotFound:
		return "NOT_FOUND"
	case Conflict:
		return "CONFLICT"
	default:
		return "INTERNAL_SERVER_ERROR"
	}
}

// HTTPStatus returns the fixed REST status for the kind.
func (k Kind) HTTPStatus() int {
	switch k {
	case BadInput:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// FieldError is one violated field of a BadInput error.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error is a classified application error.
type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldError
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error { return e.Err }

// Extensions implements the GraphQL extended-error contract so the code and
// field details surface in the response's error extensions.
func (e *Error) Extensions() map[string]interface{} {
	ext := map[string]interface{}{"code": e.Kind.Code()}
	if len(e.Fields) > 0 {
		ext["fields"] = e.Fields
	}
	return ext
}

// NewBadInput builds a BadInput error with per-field details.
func NewBadInput(message string, fields ...FieldError) *Error {
	return &Error{Kind: BadInput, Message: message, Fields: fields}
}

// NewNotFound builds a NotFound error.
func NewNotFound(message string) *Error {
	return &Error{Kind: NotFound, Message: message}
}

// NewConflict builds a Conflict error.
func NewConflict(message string) *Error {
	return &Error{Kind: Conflict, Message: message}
}

// NewInternal wraps an unexpected failure. The cause is kept for logging but
// never serialized to callers.
func NewInternal(message string, err error) *Error {
	return &Error{Kind: Internal, Message: message, Err: err}
}

// From coerces any error into a taxonomy error. Unclassified errors become
// Internal so raw driver errors never leak to callers.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return NewInternal("internal server error", err)
}

// KindOf returns the kind of a classified error, or Internal for anything
// unclassified.
func KindOf(err error) Kind { return From(err).Kind }

// IsNotFound reports whether err is classified NotFound.
func IsNotFound(err error) bool { return KindOf(err) == NotFound }

// IsConflict reports whether err is classified Conflict.
func IsConflict(err error) bool { return KindOf(err) == Conflict }

// IsBadInput reports whether err is classified BadInput.
func IsBadInput(err error) bool { return KindOf(err) == BadInput }
