package apierr

import (
	"errors"
	"net/http"
	"testing"

	"github.com/yungbote/storefront-backend/internal/domain/aggregates"
)

func TestFromError(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{aggregates.NotFound("op", "missing"), http.StatusNotFound, "not_found"},
		{aggregates.NewError(aggregates.CodeValidation, "op", "bad", nil), http.StatusBadRequest, "validation"},
		{aggregates.NewError(aggregates.CodeConstraintViolation, "op", "only 2", nil), http.StatusConflict, "constraint_violation"},
		{aggregates.Unavailable("op", errors.New("down")), http.StatusServiceUnavailable, "collaborator_unavailable"},
		{aggregates.NewError(aggregates.CodeUnauthenticated, "op", "no token", nil), http.StatusUnauthorized, "unauthenticated"},
		{errors.New("boom"), http.StatusInternalServerError, "internal"},
	}
	for _, tc := range cases {
		got := FromError(tc.err)
		if got.Status != tc.status || got.Code != tc.code {
			t.Fatalf("FromError(%v) = %d/%s, want %d/%s", tc.err, got.Status, got.Code, tc.status, tc.code)
		}
	}
	if FromError(nil) != nil {
		t.Fatal("nil in, nil out")
	}
}
