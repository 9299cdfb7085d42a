package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnauthenticated = errors.New("not logged in")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrValidation      = errors.New("validation failed")
	ErrUnavailable     = errors.New("server unavailable")
	ErrServer          = errors.New("server error")
)

// APIError is a non-2xx response from the backend. It unwraps to one of
// ErrUnauthorized, ErrValidation or ErrServer depending on the status.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s (%d)", e.kind(), e.Status)
	}
	return fmt.Sprintf("%s (%d): %s", e.kind(), e.Status, e.Body)
}

func (e *APIError) Unwrap() error { return e.kind() }

func (e *APIError) kind() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusBadRequest:
		return ErrValidation
	default:
		return ErrServer
	}
}
