package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	plain := Unauthorized("token rejected")
	assert.Equal(t, "token rejected", plain.Error())

	wrapped := Wrap(errors.New("connection refused"), ErrCodeBackend, "exchange failed")
	assert.Equal(t, "exchange failed: connection refused", wrapped.Error())
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(cause, ErrCodeBackend, "request failed")

	assert.ErrorIs(t, err, cause)

	var appErr *AppError
	require.ErrorAs(t, fmt.Errorf("outer: %w", err), &appErr)
	assert.Equal(t, ErrCodeBackend, appErr.Code)
}

func TestWrap_NilCause(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrCodeBackend, "ignored"))
	assert.Nil(t, Wrapf(nil, ErrCodeBackend, "ignored %d", 1))
}

func TestPredicates(t *testing.T) {
	assert.True(t, IsUnauthorized(Unauthorized("x")))
	assert.True(t, IsNotFound(NotFoundf("item %s", "t1")))
	assert.True(t, IsValidation(ValidationField("amount", "must be positive")))
	assert.True(t, IsBackend(Backendf("status %d", 502)))

	assert.False(t, IsUnauthorized(Backend("x")))
	assert.False(t, IsNotFound(errors.New("plain")))
	assert.False(t, IsValidation(nil))
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, ErrCodeValidation, GetCode(Validation("bad input")))
	assert.Equal(t, ErrCodeUnauthorized, GetCode(fmt.Errorf("wrapped: %w", Unauthorized("no"))))
	assert.Equal(t, ErrorCode(""), GetCode(errors.New("plain")))
	assert.Equal(t, ErrorCode(""), GetCode(nil))
}

func TestValidationField(t *testing.T) {
	err := ValidationField("category", "category is required")
	assert.Equal(t, "category", err.Field)
	assert.Equal(t, ErrCodeValidation, err.Code)
}

type timeoutNetError struct{}

func (timeoutNetError) Error() string   { return "i/o timeout" }
func (timeoutNetError) Timeout() bool   { return true }
func (timeoutNetError) Temporary() bool { return true }

func TestFromTransport(t *testing.T) {
	assert.Nil(t, FromTransport(nil, "GET /x"))

	err := FromTransport(fmt.Errorf("do: %w", context.DeadlineExceeded), "GET /x")
	assert.Equal(t, ErrCodeTimeout, err.Code)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	err = FromTransport(fmt.Errorf("do: %w", context.Canceled), "GET /x")
	assert.Equal(t, ErrCodeCanceled, err.Code)

	err = FromTransport(timeoutNetError{}, "GET /x")
	assert.Equal(t, ErrCodeTimeout, err.Code)

	err = FromTransport(errors.New("connection refused"), "GET /x")
	assert.Equal(t, ErrCodeBackend, err.Code)
	assert.Contains(t, err.Error(), "GET /x failed")
}

func TestFromStatus(t *testing.T) {
	tests := []struct {
		status int
		want   ErrorCode
	}{
		{http.StatusUnauthorized, ErrCodeUnauthorized},
		{http.StatusForbidden, ErrCodeUnauthorized},
		{http.StatusNotFound, ErrCodeNotFound},
		{http.StatusBadRequest, ErrCodeValidation},
		{http.StatusUnprocessableEntity, ErrCodeValidation},
		{http.StatusInternalServerError, ErrCodeBackend},
		{http.StatusTooManyRequests, ErrCodeBackend},
	}

	for _, tt := range tests {
		err := FromStatus(tt.status, "msg")
		assert.Equal(t, tt.want, err.Code, "status %d", tt.status)
		assert.Equal(t, "msg", err.Message)
	}
}
