// Package errs defines the error kinds every handler can return.
//
// Services return these (or wrap them with %w); the ctx.Handle tail maps
// them onto HTTP status codes and the JSON envelope:
//
//	return errs.NotFound("Product not found")
//	return errs.Validation("Invalid input", map[string]string{"name": "is required"})
package errs

import (
	"errors"
	"net/http"
	"strings"

	"gorm.io/gorm"
)

// Kind classifies an Error.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindValidation
	KindDuplicate
	KindUnauthorized
	KindForbidden
)

// Status maps the kind onto an HTTP status code.
func (k Kind) Status() int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	case KindDuplicate:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified application error.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func NotFound(msg string) *Error     { return &Error{Kind: KindNotFound, Message: msg} }
func Unauthorized(msg string) *Error { return &Error{Kind: KindUnauthorized, Message: msg} }
func Forbidden(msg string) *Error    { return &Error{Kind: KindForbidden, Message: msg} }
func Duplicate(msg string) *Error    { return &Error{Kind: KindDuplicate, Message: msg} }

// Validation builds a 400 error, optionally carrying per-field messages.
func Validation(msg string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: msg, Fields: fields}
}

// Internal wraps an unexpected failure. The cause is logged, never sent.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "Internal Server Error", Err: err}
}

// From classifies any error. Persistence errors are recognised here so
// repositories can return gorm errors untouched.
func From(err error) *Error {
	if err == nil {
		return nil
	}

	var e *Error
	if errors.As(err, &e) {
		return e
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &Error{Kind: KindNotFound, Message: "Resource not found", Err: err}
	}

	if IsDuplicateKey(err) {
		return &Error{Kind: KindDuplicate, Message: "Duplicate field value entered", Err: err}
	}

	return Internal(err)
}

// IsNotFound reports whether err resolves to KindNotFound.
func IsNotFound(err error) bool {
	return err != nil && From(err).Kind == KindNotFound
}

// IsDuplicateKey recognises unique-constraint violations across drivers.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "duplicate entry")
}
