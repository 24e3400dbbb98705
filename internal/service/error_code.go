package service

import (
	"asset-scan/internal/backend"
	"asset-scan/internal/metrics"

	"github.com/pkg/errors"
)

// UserError carries the message shown to the user. Err, when set, is the cause,
// so errors.Is(err, backend.ErrUnauthorized) still works through it.
type UserError struct {
	Msg string
	Err error
}

func (e *UserError) Error() string { return e.Msg }

func (e *UserError) Unwrap() error { return e.Err }

func userError(msg string, cause error) error {
	return &UserError{Msg: msg, Err: cause}
}

// MessageOf returns the user-facing text of err.
func MessageOf(err error) string {
	var ue *UserError
	if errors.As(err, &ue) {
		return ue.Msg
	}
	return err.Error()
}

// outcome maps an error onto a metrics label.
func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OK
	case backend.IsUnauthorized(err):
		return metrics.Unauthorized
	case errors.Is(err, backend.ErrNotFound):
		return metrics.NotFound
	case backend.IsNetwork(err):
		return metrics.NetworkError
	}
	return metrics.Failed
}
