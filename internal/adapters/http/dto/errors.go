// Package dto provides Data Transfer Objects for the sandbox catalog API:
// request payloads with their validation rules and the response envelopes.
package dto

import "net/http"

// ErrorResponse is the error envelope of the catalog API. Message is always
// set; Errors carries per-field messages for validation failures.
type ErrorResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
	Code    string              `json:"code,omitempty"`
	TraceID string              `json:"trace_id,omitempty"`
}

// Machine-readable error codes carried next to the catalog message.
const (
	ErrorCodeNotFound     = "NOT_FOUND"
	ErrorCodeConflict     = "CONFLICT" // duplicate slug or SKU, or a type still in use
	ErrorCodeValidation   = "VALIDATION_ERROR"
	ErrorCodeUnauthorized = "UNAUTHORIZED" // missing or wrong store token
	ErrorCodeUnavailable  = "SERVICE_UNAVAILABLE"
	ErrorCodeInternal     = "INTERNAL_ERROR"
	ErrorCodeTimeout      = "TIMEOUT"
	ErrorCodeBadRequest   = "BAD_REQUEST"
	ErrorCodeTooLarge     = "REQUEST_TOO_LARGE"
)

var codeStatus = map[string]int{
	ErrorCodeNotFound:     http.StatusNotFound,
	ErrorCodeConflict:     http.StatusConflict,
	ErrorCodeValidation:   http.StatusUnprocessableEntity,
	ErrorCodeUnauthorized: http.StatusUnauthorized,
	ErrorCodeUnavailable:  http.StatusServiceUnavailable,
	ErrorCodeTimeout:      http.StatusGatewayTimeout,
	ErrorCodeBadRequest:   http.StatusBadRequest,
	ErrorCodeTooLarge:     http.StatusRequestEntityTooLarge,
}

// NewErrorResponse builds an envelope without field errors.
func NewErrorResponse(code, message string) *ErrorResponse {
	return &ErrorResponse{Code: code, Message: message}
}

// NewValidationErrorResponse builds the 422 envelope.
func NewValidationErrorResponse(message string, fields map[string][]string) *ErrorResponse {
	return &ErrorResponse{Code: ErrorCodeValidation, Message: message, Errors: fields}
}

// WithTraceID sets TraceID and returns e.
func (e *ErrorResponse) WithTraceID(traceID string) *ErrorResponse {
	e.TraceID = traceID
	return e
}

// HTTPStatusFromCode is the status an error code is served with. Unknown
// codes are 500.
func HTTPStatusFromCode(code string) int {
	if status, ok := codeStatus[code]; ok {
		return status
	}

	return http.StatusInternalServerError
}
