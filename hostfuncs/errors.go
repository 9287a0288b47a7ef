package hostfuncs

import (
	"encoding/json"

	domainerrors "github.com/reglet-dev/rosmsg-sdk/go/domain/errors"
)

// Error identifiers carried in ErrorResponse.Error.
const (
	ErrorBadArgument = "BAD_ARGUMENT"
	ErrorValidation  = "VALIDATION_ERROR"
	ErrorNotFound    = "NOT_FOUND"
	ErrorInternal    = "INTERNAL_ERROR"
)

// ErrorResponse represents a structured error that can be returned as JSON to guests.
// This ensures guests receive consistent, parseable errors instead of causing WASM traps.
type ErrorResponse struct {
	// Error is a machine-readable error type identifier (e.g., "BAD_ARGUMENT", "INTERNAL_ERROR").
	Error string `json:"error"`

	// Message is a human-readable error description.
	Message string `json:"message"`

	// Reason refines BAD_ARGUMENT errors (e.g., "arity", "too_long").
	Reason string `json:"reason,omitempty"`

	// Code is a numeric error code (e.g., 400, 500).
	Code int `json:"code"`
}

// ToJSON serializes the ErrorResponse to JSON bytes.
// Returns nil if serialization fails (which should never happen for this simple type).
func (e ErrorResponse) ToJSON() []byte {
	data, err := json.Marshal(e)
	if err != nil {
		return nil
	}
	return data
}

// NewBadArgumentError creates an error response for a rejected call.
func NewBadArgumentError(err error) ErrorResponse {
	return ErrorResponse{
		Error:   ErrorBadArgument,
		Message: err.Error(),
		Reason:  domainerrors.Reason(err),
		Code:    400,
	}
}

// NewValidationError creates an error response for bad input (e.g., malformed JSON).
func NewValidationError(message string) ErrorResponse {
	return ErrorResponse{
		Error:   ErrorValidation,
		Message: message,
		Code:    400,
	}
}

// NewNotFoundError creates an error response for unknown handler names.
func NewNotFoundError(name string) ErrorResponse {
	return ErrorResponse{
		Error:   ErrorNotFound,
		Message: "unknown host function: " + name,
		Code:    404,
	}
}

// NewInternalError creates an error response for unexpected failures.
func NewInternalError(message string) ErrorResponse {
	return ErrorResponse{
		Error:   ErrorInternal,
		Message: message,
		Code:    500,
	}
}

// NewPanicError creates an error response for recovered panics.
func NewPanicError(panicValue any) ErrorResponse {
	var msg string
	if err, ok := panicValue.(error); ok {
		msg = err.Error()
	} else if s, ok := panicValue.(string); ok {
		msg = s
	} else {
		msg = "panic recovered"
	}
	return ErrorResponse{
		Error:   ErrorInternal,
		Message: "panic: " + msg,
		Code:    500,
	}
}

// errorKind extracts the error identifier from a JSON response, or "" for
// successful responses.
func errorKind(resp []byte) string {
	var probe struct {
		Error string `json:"error"`
	}
	if len(resp) == 0 || json.Unmarshal(resp, &probe) != nil {
		return ""
	}
	return probe.Error
}
