package engine

import (
	"errors"
	"fmt"
)

// RuntimeError represents a fatal pipeline failure.
//
// Runtime errors include:
//   - Unreadable input: the source could not be read
//   - Rejected line: a malformed line under PolicyStrict
//   - Bound exceeded: a segment falls outside a fixed grid bound
type RuntimeError struct {
	// Code identifies the error category.
	Code RuntimeErrorCode

	// Message is a human-readable description.
	Message string

	// Line is the 1-based input line involved, if any.
	Line int

	// Err is the underlying cause.
	Err error
}

// RuntimeErrorCode categorizes runtime errors.
type RuntimeErrorCode string

const (
	// ErrCodeUnreadableInput indicates the input source failed to read.
	ErrCodeUnreadableInput RuntimeErrorCode = "UNREADABLE_INPUT"

	// ErrCodeRejectedLine indicates a malformed line under PolicyStrict.
	ErrCodeRejectedLine RuntimeErrorCode = "REJECTED_LINE"

	// ErrCodeBoundExceeded indicates a segment outside a fixed bound.
	ErrCodeBoundExceeded RuntimeErrorCode = "BOUND_EXCEEDED"
)

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Line > 0 {
		msg = fmt.Sprintf("%s (line %d)", msg, e.Line)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// CodeOf returns the RuntimeErrorCode of a wrapped *RuntimeError, or "".
func CodeOf(err error) RuntimeErrorCode {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re.Code
	}
	return ""
}

// IsBoundError returns true if the error is a bound exceeded error.
func IsBoundError(err error) bool {
	return CodeOf(err) == ErrCodeBoundExceeded
}

// IsRejectedLineError returns true if the error is a strict-mode rejection.
func IsRejectedLineError(err error) bool {
	return CodeOf(err) == ErrCodeRejectedLine
}

// IsInputError returns true if the input source could not be read.
func IsInputError(err error) bool {
	return CodeOf(err) == ErrCodeUnreadableInput
}

// NewRejectedLineError creates a RuntimeError for a strict-mode rejection.
func NewRejectedLineError(line int, cause error) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeRejectedLine,
		Message: "malformed line rejected by strict policy",
		Line:    line,
		Err:     cause,
	}
}

// NewBoundError creates a RuntimeError for a segment outside a fixed bound.
func NewBoundError(line int, cause error) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeBoundExceeded,
		Message: "segment outside fixed grid bound",
		Line:    line,
		Err:     cause,
	}
}
