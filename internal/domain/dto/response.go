package dto

import (
	"net/http"
	"time"
)

// Error codes of ErrorResponse.
const (
	ErrCodeInvalidRequest = "invalid_request"
	ErrCodeInternal       = "internal_error"
	ErrCodeUnauthorized   = "unauthorized"
	ErrCodeForbidden      = "forbidden"
	ErrCodeNotFound       = "not_found"
	ErrCodeRateLimit      = "rate_limit_exceeded"
	ErrCodeConflict       = "conflict"
	ErrCodeTimeout        = "timeout"
	// ErrCodeUnavailable means the backing store cannot be reached. Scans
	// already accepted stay in the session and are saved later.
	ErrCodeUnavailable = "backend_unavailable"
)

var statusCodes = map[int]string{
	http.StatusBadRequest:         ErrCodeInvalidRequest,
	http.StatusUnauthorized:       ErrCodeUnauthorized,
	http.StatusForbidden:          ErrCodeForbidden,
	http.StatusNotFound:           ErrCodeNotFound,
	http.StatusConflict:           ErrCodeConflict,
	http.StatusTooManyRequests:    ErrCodeRateLimit,
	http.StatusRequestTimeout:     ErrCodeTimeout,
	http.StatusGatewayTimeout:     ErrCodeTimeout,
	http.StatusServiceUnavailable: ErrCodeUnavailable,
}

// SuccessResponse is the envelope of every successful API response.
// @Description Successful API response wrapper
type SuccessResponse struct {
	// Data is a PickingView for the session endpoints.
	Data      any       `json:"data" swaggertype:"object"`
	RequestID string    `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time `json:"timestamp" example:"2025-01-28T10:00:00Z"`
} // @name SuccessResponse

// ErrorResponse is the envelope of every failed API response.
// @Description Error response with a stable code and a translated message
type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_request"`
	Message string `json:"message,omitempty" example:"barcode: must not be empty"`
	// Field names the rejected request field of a validation error.
	Field     string    `json:"field,omitempty" example:"barcode"`
	RequestID string    `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time `json:"timestamp" example:"2025-01-28T10:00:00Z"`
} // @name ErrorResponse

// NewError creates an ErrorResponse stamped with the current time.
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{Error: code, Message: message, Timestamp: time.Now()}
}

// NewStatusError creates an ErrorResponse whose code matches status.
func NewStatusError(status int, message string) ErrorResponse {
	return NewError(ErrCodeFromStatus(status), message)
}

// WithRequestID returns a copy of e tagged with the request id.
func (e ErrorResponse) WithRequestID(requestID string) ErrorResponse {
	e.RequestID = requestID
	return e
}

// WithField returns a copy of e naming the rejected field.
func (e ErrorResponse) WithField(field string) ErrorResponse {
	e.Field = field
	return e
}

// ErrCodeFromStatus maps an HTTP status to an error code. Unknown statuses
// are internal errors.
func ErrCodeFromStatus(status int) string {
	if code, ok := statusCodes[status]; ok {
		return code
	}
	return ErrCodeInternal
}
