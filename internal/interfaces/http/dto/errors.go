package dto

import (
	"net/http"
	"strings"
)

// Error codes shared between the domain layer and the HTTP surface
const (
	ErrCodeValidation          = "VALIDATION_ERROR"
	ErrCodeInvalidCredentials  = "INVALID_CREDENTIALS"
	ErrCodeUnauthorized        = "UNAUTHORIZED"
	ErrCodeTokenExpired        = "TOKEN_EXPIRED"
	ErrCodeTokenInvalid        = "TOKEN_INVALID"
	ErrCodeTokenMaxRefresh     = "TOKEN_MAX_REFRESH"
	ErrCodeSessionExpired      = "SESSION_EXPIRED"
	ErrCodeNotConnected        = "NOT_CONNECTED"
	ErrCodePermissionDenied    = "PERMISSION_DENIED"
	ErrCodeForbidden           = "FORBIDDEN"
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeAlreadyExists       = "ALREADY_EXISTS"
	ErrCodeConcurrencyConflict = "CONCURRENCY_CONFLICT"
	ErrCodeUpstream            = "UPSTREAM_ERROR"
	ErrCodeInternal            = "INTERNAL_ERROR"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes
var errorCodeHTTPStatus = map[string]int{
	ErrCodeValidation:          http.StatusBadRequest,
	ErrCodeInvalidCredentials:  http.StatusUnauthorized,
	ErrCodeUnauthorized:        http.StatusUnauthorized,
	ErrCodeTokenExpired:        http.StatusUnauthorized,
	ErrCodeTokenInvalid:        http.StatusUnauthorized,
	ErrCodeTokenMaxRefresh:     http.StatusUnauthorized,
	ErrCodeSessionExpired:      http.StatusUnauthorized,
	ErrCodeNotConnected:        http.StatusUnauthorized,
	ErrCodePermissionDenied:    http.StatusForbidden,
	ErrCodeForbidden:           http.StatusForbidden,
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,
	ErrCodeUpstream:            http.StatusBadGateway,
	ErrCodeInternal:            http.StatusInternalServerError,
	"PASSWORD_HASH_ERROR":      http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for a domain error code.
// Codes of the form INVALID_* (INVALID_PROVIDER, INVALID_FORMAT, ...) are
// client errors unless the map says otherwise; anything unknown is a 500.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// RequiresConnection reports whether the error means the user has to go
// through the provider's OAuth flow again
func RequiresConnection(code string) bool {
	return code == ErrCodeSessionExpired || code == ErrCodeNotConnected
}
