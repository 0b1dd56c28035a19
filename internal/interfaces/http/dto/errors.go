package dto

import "net/http"

// Transport-level error codes
const (
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
)

// ErrorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes not listed here fall back to 422: they signal a business rule
// the request ran into, not a transport problem.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:     http.StatusInternalServerError,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeNotFound:     http.StatusNotFound,

	// Auth
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"INVALID_TOKEN":       http.StatusUnauthorized,
	"ACCOUNT_DEACTIVATED": http.StatusForbidden,

	// Resource lookups
	"SERVICE_NOT_FOUND":  http.StatusNotFound,
	"UNKNOWN_ORDER_CODE": http.StatusNotFound,

	// Conflicts
	"ALREADY_EXISTS":        http.StatusConflict,
	"DUPLICATE_USERNAME":    http.StatusConflict,
	"DUPLICATE_ROOM":        http.StatusConflict,
	"SERVICE_ALREADY_ADDED": http.StatusConflict,
	"ROOM_OCCUPIED":         http.StatusConflict,
	"CONCURRENCY_CONFLICT":  http.StatusConflict,

	// Malformed input
	"INVALID_INPUT":         http.StatusBadRequest,
	"INVALID_MONTH":         http.StatusBadRequest,
	"INVALID_PRICE":         http.StatusBadRequest,
	"INVALID_AMOUNT":        http.StatusBadRequest,
	"INVALID_AREA":          http.StatusBadRequest,
	"INVALID_INDEX":         http.StatusBadRequest,
	"INVALID_ROOM_ID":       http.StatusBadRequest,
	"INVALID_USERNAME":      http.StatusBadRequest,
	"INVALID_ROLE":          http.StatusBadRequest,
	"WEAK_PASSWORD":         http.StatusBadRequest,
	"INVALID_SETTING_KEY":   http.StatusBadRequest,
	"INVALID_SETTING_VALUE": http.StatusBadRequest,
	"INVALID_TARGET":        http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status code for a domain error code
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusUnprocessableEntity
}
