// Package apperr is the error taxonomy shared by repo, gate and handlers.
// Each kind maps to one HTTP status; anything unrecognized is a 500 with a
// generic message so internals never leak to the caller.
package apperr

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindValidation Kind = iota // malformed or missing input
	KindNotFound               // no matching event/response/invitation
	KindStateConflict          // event not currently accepting responses
	KindDependencyUnavailable  // storage/config failure
)

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

// Error keeps the cause for server-side logs; Status decides what the
// caller sees.
func (e *Error) Error() string {
	switch {
	case e.Msg != "" && e.Err != nil:
		return e.Msg + ": " + e.Err.Error()
	case e.Msg != "":
		return e.Msg
	case e.Err != nil:
		return e.Err.Error()
	}
	return "internal error"
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(msg string) *Error    { return &Error{Kind: KindValidation, Msg: msg} }
func NotFound(msg string) *Error      { return &Error{Kind: KindNotFound, Msg: msg} }
func StateConflict(msg string) *Error { return &Error{Kind: KindStateConflict, Msg: msg} }

func Dependency(err error) *Error {
	return &Error{Kind: KindDependencyUnavailable, Msg: "internal server error", Err: err}
}

// Status maps an error to (HTTP status, caller-facing message). Validation
// and state errors keep their specific message; everything else is generic.
func Status(err error) (int, string) {
	var ae *Error
	if !errors.As(err, &ae) {
		return http.StatusInternalServerError, "internal server error"
	}
	switch ae.Kind {
	case KindValidation:
		return http.StatusBadRequest, ae.Msg
	case KindNotFound:
		return http.StatusNotFound, ae.Msg
	case KindStateConflict:
		return http.StatusForbidden, ae.Msg
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
