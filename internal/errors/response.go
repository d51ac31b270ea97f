package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorResponse is the envelope every error leaves the API in
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries the machine-readable code, a human message, optional
// per-field details and the request's trace ID
type ErrorDetail struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
	TraceID string   `json:"trace_id"`
}

// ErrorOption customizes an error response at construction
type ErrorOption func(*ErrorResponse)

// WithDetails attaches detail lines to the response
func WithDetails(details ...string) ErrorOption {
	return func(er *ErrorResponse) {
		er.Error.Details = details
	}
}

// WithMessage replaces the code's default message
func WithMessage(message string) ErrorOption {
	return func(er *ErrorResponse) {
		er.Error.Message = message
	}
}

// NewErrorResponse builds a response for the given code with its default
// message, applying any options
func NewErrorResponse(code ErrorCode, traceID string, opts ...ErrorOption) *ErrorResponse {
	response := &ErrorResponse{
		Error: ErrorDetail{
			Code:    string(code),
			Message: GetErrorMessage(code),
			Details: []string{},
			TraceID: traceID,
		},
	}

	for _, opt := range opts {
		opt(response)
	}

	return response
}

// NewValidationError builds a VALIDATION_001 response with one detail line
// per failing field
func NewValidationError(fieldErrors map[string]string, traceID string) *ErrorResponse {
	details := make([]string, 0, len(fieldErrors))
	for field, message := range fieldErrors {
		details = append(details, fmt.Sprintf("%s: %s", field, message))
	}

	return NewErrorResponse(ValidationGeneral, traceID, WithDetails(details...))
}

// WrapSystemError hides an internal error behind the generic SYSTEM_001
// response. The original error comes back alongside so the caller can log
// it; clients only ever see the generic message and the trace ID.
func WrapSystemError(err error, traceID string) (*ErrorResponse, error) {
	return NewErrorResponse(SystemInternalError, traceID), err
}

// ToJSON serializes the response
func (er *ErrorResponse) ToJSON() ([]byte, error) {
	return json.Marshal(er)
}

// statusByCode maps each error code to its HTTP status. Codes missing from
// the table fall through to 500.
var statusByCode = map[ErrorCode]int{
	ValidationGeneral:       http.StatusBadRequest,
	ValidationRequiredField: http.StatusBadRequest,
	ValidationInvalidFormat: http.StatusBadRequest,
	ValidationInvalidEmail:  http.StatusBadRequest,
	ValidationInvalidDate:   http.StatusBadRequest,
	ValidationWeakPassword:  http.StatusBadRequest,
	UserInvalidID:           http.StatusBadRequest,

	ExpenseInvalidAmount:     http.StatusBadRequest,
	ExpenseInvalidType:       http.StatusBadRequest,
	ExpenseAmbiguousCategory: http.StatusBadRequest,
	ExpenseNothingToUpdate:   http.StatusBadRequest,

	AuthInvalidCredentials: http.StatusUnauthorized,
	AuthMissingToken:       http.StatusUnauthorized,
	AuthExpiredToken:       http.StatusUnauthorized,
	AuthInvalidTokenFormat: http.StatusUnauthorized,

	UserNotFound:     http.StatusNotFound,
	CategoryNotFound: http.StatusNotFound,
	ExpenseNotFound:  http.StatusNotFound,

	UserAlreadyExists:     http.StatusConflict,
	CategoryAlreadyExists: http.StatusConflict,
	CategoryNameReserved:  http.StatusConflict,

	CategoryInvalidRef: http.StatusUnprocessableEntity,

	SystemRateLimitExceeded: http.StatusTooManyRequests,

	SystemInternalError: http.StatusInternalServerError,
	SystemDatabaseError: http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for an error code
func GetHTTPStatus(code ErrorCode) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// GetHTTPStatus returns the HTTP status for the response's code
func (er *ErrorResponse) GetHTTPStatus() int {
	return GetHTTPStatus(ErrorCode(er.Error.Code))
}

// IsClientError reports whether the response maps to a 4xx status
func (er *ErrorResponse) IsClientError() bool {
	status := er.GetHTTPStatus()
	return status >= 400 && status < 500
}

// IsServerError reports whether the response maps to a 5xx status
func (er *ErrorResponse) IsServerError() bool {
	return er.GetHTTPStatus() >= 500
}

func (er *ErrorResponse) String() string {
	return fmt.Sprintf("[%s] %s (trace: %s)", er.Error.Code, er.Error.Message, er.Error.TraceID)
}
