// Package service implements calendar and schedule operations on top of
// small store interfaces. All authorization decisions live here; handlers
// only translate the typed failures into HTTP responses.
package service

import (
	"fmt"
	"net/http"
)

// Error is a request-scoped, recoverable-by-client failure. Code follows
// the "<httpStatus>-<subcode>" convention used by the wire envelope.
type Error struct {
	Status int
	Code   string
	Msg    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

// ErrUnauthorized is returned when an operation that needs an actor runs
// without one.
var ErrUnauthorized = &Error{Status: http.StatusUnauthorized, Code: "401-1", Msg: "login required"}

func notFound(sub int, msg string) *Error {
	return &Error{Status: http.StatusNotFound, Code: fmt.Sprintf("404-%d", sub), Msg: msg}
}

func forbidden(sub int, msg string) *Error {
	return &Error{Status: http.StatusForbidden, Code: fmt.Sprintf("403-%d", sub), Msg: msg}
}

func badRequest(sub int, msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: fmt.Sprintf("400-%d", sub), Msg: msg}
}
