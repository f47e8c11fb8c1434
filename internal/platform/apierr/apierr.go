package apierr

import (
	"fmt"
	"net/http"

	"github.com/yungbote/storefront-backend/internal/domain/aggregates"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// FromError maps an aggregation error onto an HTTP status and code.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	if ae, ok := err.(*Error); ok {
		return ae
	}
	code := aggregates.CodeOf(err)
	switch code {
	case aggregates.CodeNotFound:
		return New(http.StatusNotFound, string(code), err)
	case aggregates.CodeValidation:
		return New(http.StatusBadRequest, string(code), err)
	case aggregates.CodeUnauthenticated:
		return New(http.StatusUnauthorized, string(code), err)
	case aggregates.CodeConstraintViolation:
		return New(http.StatusConflict, string(code), err)
	case aggregates.CodeCollaboratorUnavailable, aggregates.CodeRetryable:
		return New(http.StatusServiceUnavailable, string(code), err)
	default:
		return New(http.StatusInternalServerError, string(aggregates.CodeInternal), err)
	}
}
