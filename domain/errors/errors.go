// Package errors provides domain-specific error types for the SDK.
// All error types support error unwrapping via errors.As() and errors.Is().
//
// Every failure of a message operation is a single kind, ErrBadArgument.
// The concrete types below only refine it with a machine-readable reason,
// so callers that only care about "the call was rejected" can keep using
// errors.Is(err, ErrBadArgument).
package errors

import (
	stdErrors "errors"
	"fmt"

	"github.com/reglet-dev/rosmsg-sdk/go/domain/entities"
)

// ErrorDetail is an alias to entities.ErrorDetail for backward compatibility/convenience.
type ErrorDetail = entities.ErrorDetail

// ErrBadArgument is the sentinel matched by every rejected message operation.
var ErrBadArgument = stdErrors.New("bad argument")

// Reasons attached to bad-argument errors.
const (
	ReasonArity         = "arity"
	ReasonResourceKind  = "resource_kind"
	ReasonStaleHandle   = "stale_handle"
	ReasonAllocation    = "allocation"
	ReasonUninitialized = "uninitialized"
	ReasonTooLong       = "too_long"
	ReasonEncoding      = "encoding"
	ReasonType          = "type"
)

// DetailedError is an interface for custom error types that can convert themselves
// to a structured ErrorDetail. New error types only need to implement this
// interface without modifying ToErrorDetail.
type DetailedError interface {
	error
	ToErrorDetail() *entities.ErrorDetail
}

// ToErrorDetail converts a Go error to our structured ErrorDetail.
// This function recognizes custom error types and categorizes them appropriately.
func ToErrorDetail(err error) *entities.ErrorDetail {
	if err == nil {
		return nil
	}

	// If the error is already a *ErrorDetail (entity), use it directly.
	var e *entities.ErrorDetail
	if stdErrors.As(err, &e) {
		return e
	}

	var de DetailedError
	if stdErrors.As(err, &de) {
		return de.ToErrorDetail()
	}

	if stdErrors.Is(err, ErrBadArgument) {
		return &entities.ErrorDetail{Message: err.Error(), Type: "bad_argument"}
	}

	// Generic error - categorize as internal
	return &entities.ErrorDetail{
		Message: err.Error(),
		Type:    "internal",
	}
}

// Reason returns the bad-argument reason carried by err, or "" if err is
// not a bad-argument error with a reason.
func Reason(err error) string {
	var r interface{ Reason() string }
	if stdErrors.As(err, &r) {
		return r.Reason()
	}
	return ""
}

// badArgument is embedded by every bad-argument error type.
type badArgument struct{}

// Is makes every embedding type match ErrBadArgument.
func (badArgument) Is(target error) bool {
	return target == ErrBadArgument
}

func badArgumentDetail(err error, reason string) *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: err.Error(), Type: "bad_argument", Code: reason}
}

// ArityError is returned when an operation receives the wrong number of arguments.
type ArityError struct {
	badArgument
	Operation string
	Want      int
	Got       int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("%s: expected %d argument(s), got %d", e.Operation, e.Want, e.Got)
}

// Reason returns ReasonArity.
func (e *ArityError) Reason() string { return ReasonArity }

// ToErrorDetail implements DetailedError.
func (e *ArityError) ToErrorDetail() *entities.ErrorDetail {
	return badArgumentDetail(e, ReasonArity)
}

// ResourceKindError is returned when a handle was issued for another resource
// kind, or by another resource table.
type ResourceKindError struct {
	badArgument
	Want         string
	Got          string
	ForeignOwner bool
}

func (e *ResourceKindError) Error() string {
	if e.ForeignOwner {
		return fmt.Sprintf("handle of kind %s was issued by another resource table", e.Got)
	}
	return fmt.Sprintf("wrong resource kind: expected %s, got %q", e.Want, e.Got)
}

// Reason returns ReasonResourceKind.
func (e *ResourceKindError) Reason() string { return ReasonResourceKind }

// ToErrorDetail implements DetailedError.
func (e *ResourceKindError) ToErrorDetail() *entities.ErrorDetail {
	return badArgumentDetail(e, ReasonResourceKind)
}

// StaleHandleError is returned for handles that were released or never issued.
type StaleHandleError struct {
	badArgument
	Handle entities.Handle
}

func (e *StaleHandleError) Error() string {
	return fmt.Sprintf("stale or unknown handle %s", e.Handle)
}

// Reason returns ReasonStaleHandle.
func (e *StaleHandleError) Reason() string { return ReasonStaleHandle }

// ToErrorDetail implements DetailedError.
func (e *StaleHandleError) ToErrorDetail() *entities.ErrorDetail {
	return badArgumentDetail(e, ReasonStaleHandle)
}

// AllocationError is returned when a resource table cannot hold another record.
type AllocationError struct {
	badArgument
	Kind  string
	Live  int
	Limit int
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("cannot allocate %s: %d live handle(s), limit %d", e.Kind, e.Live, e.Limit)
}

// Reason returns ReasonAllocation.
func (e *AllocationError) Reason() string { return ReasonAllocation }

// ToErrorDetail implements DetailedError.
func (e *AllocationError) ToErrorDetail() *entities.ErrorDetail {
	return badArgumentDetail(e, ReasonAllocation)
}

// UninitializedError is returned when a record is written or read before init.
type UninitializedError struct {
	badArgument
	Handle entities.Handle
}

func (e *UninitializedError) Error() string {
	return fmt.Sprintf("record %s has not been initialized", e.Handle)
}

// Reason returns ReasonUninitialized.
func (e *UninitializedError) Reason() string { return ReasonUninitialized }

// ToErrorDetail implements DetailedError.
func (e *UninitializedError) ToErrorDetail() *entities.ErrorDetail {
	return badArgumentDetail(e, ReasonUninitialized)
}

// TextTooLongError is returned when a text does not fit the staging buffer.
type TextTooLongError struct {
	badArgument
	Length int
	Limit  int
}

func (e *TextTooLongError) Error() string {
	return fmt.Sprintf("text is %d bytes, limit is %d", e.Length, e.Limit)
}

// Reason returns ReasonTooLong.
func (e *TextTooLongError) Reason() string { return ReasonTooLong }

// ToErrorDetail implements DetailedError.
func (e *TextTooLongError) ToErrorDetail() *entities.ErrorDetail {
	return badArgumentDetail(e, ReasonTooLong)
}

// EncodingError is returned when a text cannot be represented in the record encoding.
type EncodingError struct {
	badArgument
	Err      error
	Encoding string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("text is not representable as %s: %v", e.Encoding, e.Err)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

// Reason returns ReasonEncoding.
func (e *EncodingError) Reason() string { return ReasonEncoding }

// ToErrorDetail implements DetailedError.
func (e *EncodingError) ToErrorDetail() *entities.ErrorDetail {
	return badArgumentDetail(e, ReasonEncoding)
}

// TermTypeError is returned when an argument has the wrong type.
// A negative Position refers to the request envelope rather than an argument.
type TermTypeError struct {
	badArgument
	Want     string
	Got      string
	Position int
}

func (e *TermTypeError) Error() string {
	if e.Position < 0 {
		return fmt.Sprintf("request: expected %s, got %s", e.Want, e.Got)
	}
	return fmt.Sprintf("argument %d: expected %s, got %s", e.Position, e.Want, e.Got)
}

// Reason returns ReasonType.
func (e *TermTypeError) Reason() string { return ReasonType }

// ToErrorDetail implements DetailedError.
func (e *TermTypeError) ToErrorDetail() *entities.ErrorDetail {
	return badArgumentDetail(e, ReasonType)
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Err   error
	Field string
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config validation failed for field '%s': %v", e.Field, e.Err)
	}
	return fmt.Sprintf("config validation failed: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *ConfigError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "config", Code: e.Field}
}

// SchemaError represents a schema generation error.
type SchemaError struct {
	Err  error
	Type string
}

func (e *SchemaError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("schema error for type %s: %v", e.Type, e.Err)
	}
	return fmt.Sprintf("schema error: %v", e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *SchemaError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "config", Code: "schema"}
}
