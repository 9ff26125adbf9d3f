package service

import (
	"fmt"
	"net/http"
)

// Error is a request-level failure with a client-safe message. Anything else
// returned from a service is an infrastructure error: handlers log it and
// answer with a generic message instead.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func validationErrorf(format string, args ...any) *Error {
	return &Error{Status: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

func notFoundErrorf(format string, args ...any) *Error {
	return &Error{Status: http.StatusNotFound, Message: fmt.Sprintf(format, args...)}
}

func conflictErrorf(format string, args ...any) *Error {
	return &Error{Status: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}
