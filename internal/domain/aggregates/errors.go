package aggregates

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode standardizes view-aggregation failure semantics across components.
type ErrorCode string

const (
	CodeValidation ErrorCode = "validation"
	CodeNotFound   ErrorCode = "not_found"
	// CodePartialResolution marks a secondary record (category, related item,
	// order line product) that could not be resolved. Aggregators absorb it.
	CodePartialResolution ErrorCode = "partial_resolution"
	// CodeConstraintViolation marks a quantity request outside [1, stock].
	CodeConstraintViolation     ErrorCode = "constraint_violation"
	CodeCollaboratorUnavailable ErrorCode = "collaborator_unavailable"
	CodeUnauthenticated         ErrorCode = "unauthenticated"
	CodeRetryable               ErrorCode = "retryable"
	CodeInternal                ErrorCode = "internal"
)

// Error is the canonical aggregation error wrapper.
type Error struct {
	Code    ErrorCode
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	op := strings.TrimSpace(e.Op)
	msg := strings.TrimSpace(e.Message)
	switch {
	case op != "" && msg != "":
		return fmt.Sprintf("%s: %s (%s)", op, msg, e.Code)
	case op != "":
		return fmt.Sprintf("%s (%s)", op, e.Code)
	case msg != "":
		return fmt.Sprintf("%s (%s)", msg, e.Code)
	default:
		return string(e.Code)
	}
}

func (e *Error) Unwrap() error { return e.Cause }

// NewError builds an error with explicit code + operation.
func NewError(code ErrorCode, op, message string, cause error) error {
	return &Error{
		Code:    code,
		Op:      strings.TrimSpace(op),
		Message: strings.TrimSpace(message),
		Cause:   cause,
	}
}

// Wrap annotates an existing error with a code.
func Wrap(code ErrorCode, op string, err error) error {
	if err == nil {
		return nil
	}
	return NewError(code, op, err.Error(), err)
}

func NotFound(op, message string) error {
	return NewError(CodeNotFound, op, message, nil)
}

func Unavailable(op string, err error) error {
	return Wrap(CodeCollaboratorUnavailable, op, err)
}

// IsCode checks whether err (or a wrapped err) carries the given code.
func IsCode(err error, code ErrorCode) bool {
	var aggErr *Error
	if !errors.As(err, &aggErr) {
		return false
	}
	return aggErr.Code == code
}

// CodeOf extracts the error code when available.
func CodeOf(err error) ErrorCode {
	var aggErr *Error
	if !errors.As(err, &aggErr) {
		return ""
	}
	return aggErr.Code
}
