package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAPIError(t *testing.T) {
	tests := []struct {
		status  int
		message string
		want    Code
	}{
		{http.StatusBadRequest, "invalid credentials", CodeInvalidCredentials},
		{http.StatusUnauthorized, "unauthorized", CodeUnauthorized},
		{http.StatusPaymentRequired, "insufficient credits", CodeInsufficientCredits},
		{http.StatusBadRequest, "expected type i32 but got type f32", CodeWrongParameterType},
		{http.StatusBadRequest, "signature i32->x is invalid", CodeInvalidSignature},
		{http.StatusNotFound, "endpoint 12 not found", CodeEndpointNotFound},
		{http.StatusNotFound, "function add not found", CodeFunctionNotFound},
		{http.StatusNotFound, "/api/v1/nope not found", CodeNotFound},
		{http.StatusBadRequest, "out of fuel", CodeWasmInstanceCreation},
		{http.StatusTeapot, "invalid credentials", CodeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			err := NewAPIError(tt.status, tt.message)
			assert.Equal(t, tt.want, err.Code)
			assert.Equal(t, tt.status, err.Status)
			assert.Equal(t, tt.message, err.Message)
		})
	}
}

func TestAPIErrorMatchesSentinels(t *testing.T) {
	err := fmt.Errorf("call failed: %w", NewAPIError(http.StatusNotFound, "function add not found"))

	assert.ErrorIs(t, err, ErrFunctionNotFound)
	assert.True(t, IsNotFound(err))
	assert.True(t, IsAPICode(err, CodeFunctionNotFound))
	assert.False(t, IsAPICode(err, CodeNotFound))
	assert.False(t, errors.Is(err, ErrModuleNotFound))
	assert.EqualError(t, errors.Unwrap(err), "[function_not_found:404] function add not found")
}

func TestWithDetails(t *testing.T) {
	err := WithDetails(ErrModuleNotFound, "module 4")
	assert.EqualError(t, err, "module 4: module not found")
	assert.ErrorIs(t, err, ErrModuleNotFound)
	assert.True(t, IsNotFound(err))
	assert.False(t, IsInvalidPayload(err))
}
