package backend

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

var (
	// ErrNetwork wraps every transport level failure (refused, reset, timeout, unreadable body).
	ErrNetwork = errors.New("network error")
	// ErrUnauthorized means the backend rejected the session cookies.
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)

// APIError is a non-2xx answer from the backend. Message is the body's "error" field, if any.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned %d", e.Status)
	}
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
}

// Is lets errors.Is match the sentinels against the status code.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

// Message returns the backend supplied message of err, or fallback.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

func IsUnauthorized(err error) bool { return errors.Is(err, ErrUnauthorized) }

func IsNetwork(err error) bool { return errors.Is(err, ErrNetwork) }
