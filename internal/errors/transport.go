package errors

import (
	"context"
	"errors"
	"net"
	"net/http"
)

// FromTransport maps a transport-level failure (context expiry, connection
// errors) into an AppError. Pass the operation name for the message.
func FromTransport(err error, op string) *AppError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return Wrap(err, ErrCodeTimeout, op+" timed out")
	case errors.Is(err, context.Canceled):
		return Wrap(err, ErrCodeCanceled, op+" canceled")
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return Wrap(err, ErrCodeTimeout, op+" timed out")
	}
	return Wrap(err, ErrCodeBackend, op+" failed")
}

// FromStatus maps an HTTP response status into an AppError code.
// Callers should only invoke it for non-2xx statuses.
func FromStatus(status int, message string) *AppError {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &AppError{Code: ErrCodeUnauthorized, Message: message}
	case status == http.StatusNotFound:
		return &AppError{Code: ErrCodeNotFound, Message: message}
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return &AppError{Code: ErrCodeValidation, Message: message}
	default:
		return &AppError{Code: ErrCodeBackend, Message: message}
	}
}
