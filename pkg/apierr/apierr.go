// Package apierr carries the service-wide error taxonomy. Services return
// these; the HTTP request layer maps them to status codes. The core never
// depends on transport semantics.
package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for transport mapping.
type Kind string

const (
	KindValidation Kind = "validation_error" // malformed or contradictory input
	KindConflict   Kind = "conflict_error"   // uniqueness violation
	KindNotFound   Kind = "not_found"        // missing entity or credential mismatch
	KindForbidden  Kind = "forbidden"        // authorization check failed
	KindExpired    Kind = "expired"          // token expired or absent from the allowlist
	KindInternal   Kind = "internal_error"   // invariant violation
)

// Error is a classified, terminal error. Nothing in the core retries one.
type Error struct {
	Kind    Kind   `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// HTTPStatus maps the taxonomy to a transport status code.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindExpired:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func Validation(msg string) *Error { return &Error{Kind: KindValidation, Message: msg} }
func Conflict(msg string) *Error   { return &Error{Kind: KindConflict, Message: msg} }
func NotFound(msg string) *Error   { return &Error{Kind: KindNotFound, Message: msg} }
func Forbidden(msg string) *Error  { return &Error{Kind: KindForbidden, Message: msg} }
func Expired(msg string) *Error    { return &Error{Kind: KindExpired, Message: msg} }
func Internal(msg string) *Error   { return &Error{Kind: KindInternal, Message: msg} }

// IsKind reports whether err is an apierr.Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// From extracts the apierr.Error from err, or wraps err as an internal
// error when it carries no classification.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Kind: KindInternal, Message: "internal server error"}
}
