// Package errors provides structured error types for netplan.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the planning library, CLI and API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Non-fatal warnings collected next to a valid partial result
//
// # Error Codes
//
// Codes fall into a small taxonomy:
//   - Configuration errors: the planner was set up with an invalid catalog,
//     packet size, threshold set or config file
//   - Input errors: the network snapshot or the demand list is inconsistent
//     (duplicate ids, unknown endpoints, negative volumes, ...)
//   - Precondition errors: an operation was called in the wrong order
//   - Internal errors: an assertion inside an algorithm failed
//
// Saturated links are not errors. They carry an infinite delay and are
// handled structurally by the evaluation code.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnknownNode, "edge %d-%d references unknown node %d", a, b, a)
//	if errors.IsInput(err) {
//	    // reject the request
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidConfig, origErr, "read %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Configuration errors
	ErrCodeInvalidConfig     Code = "INVALID_CONFIG"
	ErrCodeInvalidCatalog    Code = "INVALID_CATALOG"
	ErrCodeInvalidPacketSize Code = "INVALID_PACKET_SIZE"
	ErrCodeInvalidThresholds Code = "INVALID_THRESHOLDS"

	// Input errors
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeDuplicateNode     Code = "DUPLICATE_NODE"
	ErrCodeUnknownNode       Code = "UNKNOWN_NODE"
	ErrCodeDuplicateEdge     Code = "DUPLICATE_EDGE"
	ErrCodeInvalidDemand     Code = "INVALID_DEMAND"
	ErrCodeEmptyTopology     Code = "EMPTY_TOPOLOGY"
	ErrCodeStaleRoutes       Code = "STALE_ROUTES"
	ErrCodeCapacityBelowFlow Code = "CAPACITY_BELOW_FLOW"
	ErrCodeInvalidFormat     Code = "INVALID_FORMAT"

	// Ordering errors
	ErrCodePrecondition Code = "PRECONDITION"

	// Resource not found errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

var configurationCodes = map[Code]bool{
	ErrCodeInvalidConfig:     true,
	ErrCodeInvalidCatalog:    true,
	ErrCodeInvalidPacketSize: true,
	ErrCodeInvalidThresholds: true,
}

var inputCodes = map[Code]bool{
	ErrCodeInvalidInput:      true,
	ErrCodeDuplicateNode:     true,
	ErrCodeUnknownNode:       true,
	ErrCodeDuplicateEdge:     true,
	ErrCodeInvalidDemand:     true,
	ErrCodeEmptyTopology:     true,
	ErrCodeStaleRoutes:       true,
	ErrCodeCapacityBelowFlow: true,
	ErrCodeInvalidFormat:     true,
}

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsConfiguration reports whether err is a configuration error.
func IsConfiguration(err error) bool {
	return configurationCodes[GetCode(err)]
}

// IsInput reports whether err is an input validation error.
func IsInput(err error) bool {
	return inputCodes[GetCode(err)]
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// Assert panics with an internal error when cond is false. It guards states
// that validated inputs cannot reach.
func Assert(cond bool, format string, args ...any) {
	if !cond {
		panic(New(ErrCodeInternal, format, args...))
	}
}
