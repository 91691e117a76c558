// Package errs holds the typed failures the marketplace components return.
// Handlers return them as-is; controllers map the kind onto an HTTP status.
package errs

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

type Kind string

const (
	KindValidation        Kind = "validation"
	KindForbidden         Kind = "forbidden"
	KindNotFound          Kind = "not_found"
	KindConflict          Kind = "conflict"
	KindInvalidTransition Kind = "invalid_transition"
	KindInvalidState      Kind = "invalid_state"
	KindCapacityExceeded  Kind = "capacity_exceeded"
	KindNotEligible       Kind = "not_eligible"
)

var kindStatus = map[Kind]int{
	KindValidation:        http.StatusBadRequest,
	KindForbidden:         http.StatusForbidden,
	KindNotFound:          http.StatusNotFound,
	KindConflict:          http.StatusConflict,
	KindInvalidTransition: http.StatusBadRequest,
	KindInvalidState:      http.StatusBadRequest,
	KindCapacityExceeded:  http.StatusBadRequest,
	KindNotEligible:       http.StatusBadRequest,
}

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...interface{}) error {
	return newError(KindValidation, format, args...)
}

func Forbidden(format string, args ...interface{}) error {
	return newError(KindForbidden, format, args...)
}

func NotFound(format string, args ...interface{}) error {
	return newError(KindNotFound, format, args...)
}

func Conflict(format string, args ...interface{}) error {
	return newError(KindConflict, format, args...)
}

func InvalidTransition(format string, args ...interface{}) error {
	return newError(KindInvalidTransition, format, args...)
}

func InvalidState(format string, args ...interface{}) error {
	return newError(KindInvalidState, format, args...)
}

func CapacityExceeded(format string, args ...interface{}) error {
	return newError(KindCapacityExceeded, format, args...)
}

func NotEligible(format string, args ...interface{}) error {
	return newError(KindNotEligible, format, args...)
}

// KindOf unwraps err looking for a typed failure.
func KindOf(err error) (Kind, bool) {
	var typed *Error
	if errors.As(err, &typed) {
		return typed.Kind, true
	}
	return "", false
}

func Is(err error, kind Kind) bool {
	found, ok := KindOf(err)
	return ok && found == kind
}

// HTTPStatus returns 500 for untyped errors.
func HTTPStatus(err error) int {
	kind, ok := KindOf(err)
	if !ok {
		return http.StatusInternalServerError
	}
	if status, exist := kindStatus[kind]; exist {
		return status
	}
	return http.StatusInternalServerError
}

// Message returns the message of the typed error inside err, or err.Error().
func Message(err error) string {
	var typed *Error
	if errors.As(err, &typed) {
		return typed.Message
	}
	return err.Error()
}
