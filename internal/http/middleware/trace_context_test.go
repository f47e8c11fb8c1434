package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/storefront-backend/internal/platform/ctxutil"
)

func TestAttachTraceContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AttachTraceContext())
	var seen *ctxutil.TraceData
	r.GET("/x", func(c *gin.Context) {
		seen = ctxutil.GetTraceData(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(headerRequestID, "req-42")
	req.Header.Set(headerTraceID, "trace-7")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.NotNil(t, seen)
	assert.Equal(t, "req-42", seen.RequestID)
	assert.Equal(t, "trace-7", seen.TraceID)
	assert.Equal(t, "req-42", rec.Header().Get(headerRequestID))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(headerRequestID, strings.Repeat("a", 200))
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	got := rec.Header().Get(headerRequestID)
	assert.NotEmpty(t, got)
	assert.LessOrEqual(t, len(got), 128)
}
