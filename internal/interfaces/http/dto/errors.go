package dto

import "net/http"

// Error codes the API surfaces. Domain errors carry these codes directly.
const (
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeAccountInactive    = "ACCOUNT_INACTIVE"
	ErrCodePermissionDenied   = "PERMISSION_DENIED"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeNotSupported       = "NOT_SUPPORTED"
	ErrCodeAlreadyExists      = "ALREADY_EXISTS"
	ErrCodeConcurrency        = "CONCURRENCY_CONFLICT"
	ErrCodeHierarchyCycle     = "HIERARCHY_CYCLE"
	ErrCodeRateLimited        = "RATE_LIMITED"
	ErrCodeInternal           = "INTERNAL_ERROR"
)

// errorCodeHTTPStatus maps error codes to HTTP status codes
var errorCodeHTTPStatus = map[string]int{
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeInvalidCredentials: http.StatusUnauthorized,
	ErrCodeAccountInactive:    http.StatusForbidden,
	ErrCodePermissionDenied:   http.StatusForbidden,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeNotSupported:       http.StatusMethodNotAllowed,
	ErrCodeAlreadyExists:      http.StatusConflict,
	ErrCodeConcurrency:        http.StatusConflict,
	ErrCodeHierarchyCycle:     http.StatusInternalServerError,
	ErrCodeRateLimited:        http.StatusTooManyRequests,
	ErrCodeInternal:           http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for an error code, defaulting to 500
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
