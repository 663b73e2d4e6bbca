package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeInvalidCredentials, http.StatusUnauthorized},
		{ErrCodeTokenExpired, http.StatusUnauthorized},
		{ErrCodeSessionExpired, http.StatusUnauthorized},
		{ErrCodeNotConnected, http.StatusUnauthorized},
		{ErrCodePermissionDenied, http.StatusForbidden},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeAlreadyExists, http.StatusConflict},
		{ErrCodeConcurrencyConflict, http.StatusConflict},
		{ErrCodeUpstream, http.StatusBadGateway},
		{ErrCodeInternal, http.StatusInternalServerError},
		{"INVALID_PROVIDER", http.StatusBadRequest},
		{"INVALID_CUSTOM_ID_FORMAT", http.StatusBadRequest},
		{"SOMETHING_NOBODY_MAPPED", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPStatus(tt.code))
		})
	}
}

func TestRequiresConnection(t *testing.T) {
	assert.True(t, RequiresConnection(ErrCodeSessionExpired))
	assert.True(t, RequiresConnection(ErrCodeNotConnected))
	assert.False(t, RequiresConnection(ErrCodeUnauthorized))
	assert.False(t, RequiresConnection(ErrCodeNotFound))
}

func TestNewErrorResponse_FlagsReconnect(t *testing.T) {
	resp := NewErrorResponse(ErrCodeSessionExpired, "Provider session expired")
	assert.False(t, resp.Success)
	assert.True(t, resp.Error.RequiresConnection)

	resp = NewErrorResponse(ErrCodeNotFound, "Inventory not found")
	assert.False(t, resp.Error.RequiresConnection)
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	resp := NewErrorResponseWithRequestID(ErrCodeInternal, "boom", "req-123")
	assert.Equal(t, "req-123", resp.Error.RequestID)
	assert.Equal(t, ErrCodeInternal, resp.Error.Code)
}
