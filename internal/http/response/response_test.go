package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/storefront-backend/internal/domain/aggregates"
)

func TestRespondErr(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err     error
		status  int
		code    string
		message string
	}{
		{aggregates.NotFound("op", "product p1 not found"), http.StatusNotFound, "not_found", "product p1 not found"},
		{aggregates.Unavailable("op", errors.New("dial tcp: refused")), http.StatusServiceUnavailable, "collaborator_unavailable", "service temporarily unavailable, try again"},
		{errors.New("pq: password authentication failed"), http.StatusInternalServerError, "internal", "internal error"},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)
		RespondErr(c, tc.err)

		require.Equal(t, tc.status, rec.Code)
		var env ErrorEnvelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
		assert.Equal(t, tc.code, env.Error.Code)
		assert.Equal(t, tc.message, env.Error.Message)
	}
}
