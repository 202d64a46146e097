package dto

import "net/http"

// Domain error codes surfaced over HTTP
const (
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
	ErrCodeInvalidInput  = "INVALID_INPUT"
	ErrCodeInvalidStatus = "INVALID_STATUS"
	ErrCodeIsBeingUsed   = "IS_BEING_USED"
	ErrCodeContention    = "CONTENTION"
	ErrCodeTransport     = "TRANSPORT"
	ErrCodeInternal      = "INTERNAL_ERROR"
)

// errorCodeStatus maps domain error codes to HTTP status codes
var errorCodeStatus = map[string]int{
	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusBadRequest,
	ErrCodeInvalidInput:  http.StatusBadRequest,
	ErrCodeInvalidStatus: http.StatusBadRequest,
	ErrCodeIsBeingUsed:   http.StatusBadRequest,
	ErrCodeContention:    http.StatusConflict,
	ErrCodeTransport:     http.StatusBadGateway,
}

// StatusForCode returns the HTTP status for a domain error code. Unknown
// codes collapse to 500 so internals never leak through the API.
func StatusForCode(code string) int {
	if status, ok := errorCodeStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
