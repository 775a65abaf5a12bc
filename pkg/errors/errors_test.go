package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCoder(t *testing.T) {
	tests := []struct {
		name   string
		err    StatusCoder
		status int
		code   string
		msg    string
	}{
		{
			name:   "validation with field",
			err:    NewValidationError("email", "is required"),
			status: http.StatusBadRequest,
			code:   CodeValidation,
			msg:    "validation failed: email - is required",
		},
		{
			name:   "validation without field",
			err:    NewValidationError("", "bad input"),
			status: http.StatusBadRequest,
			code:   CodeValidation,
			msg:    "validation failed: bad input",
		},
		{
			name:   "not found with message",
			err:    NewNotFoundError("user", "user not found: id=7"),
			status: http.StatusNotFound,
			code:   CodeNotFound,
			msg:    "user not found: id=7",
		},
		{
			name:   "not found default message",
			err:    NewNotFoundError("user", ""),
			status: http.StatusNotFound,
			code:   CodeNotFound,
			msg:    "user not found",
		},
		{
			name:   "internal keeps cause",
			err:    NewInternalError("failed to list users", stderrors.New("connection refused")),
			status: http.StatusInternalServerError,
			code:   CodeInternal,
			msg:    "failed to list users: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.StatusCode())
			assert.Equal(t, tt.code, tt.err.Code())
			assert.Equal(t, tt.msg, tt.err.Error())
		})
	}
}

func TestInternalError_Unwrap(t *testing.T) {
	cause := stderrors.New("driver: bad connection")
	wrapped := fmt.Errorf("repo: %w", NewInternalError("failed to get user", cause))

	assert.ErrorIs(t, wrapped, cause)

	var sc StatusCoder
	require.True(t, stderrors.As(wrapped, &sc))
	assert.Equal(t, http.StatusInternalServerError, sc.StatusCode())
}
