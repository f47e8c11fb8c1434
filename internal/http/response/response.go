package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/storefront-backend/internal/domain/aggregates"
	"github.com/yungbote/storefront-backend/internal/platform/apierr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondErr maps err through apierr and writes the error envelope.
// Internal failures get a generic message.
func RespondErr(c *gin.Context, err error) {
	ae := apierr.FromError(err)
	if ae == nil {
		ae = apierr.New(http.StatusInternalServerError, "internal", errors.New("unknown error"))
	}
	_ = c.Error(err)
	switch {
	case ae.Status == http.StatusServiceUnavailable:
		RespondError(c, ae.Status, ae.Code, errUnavailable)
	case ae.Status >= http.StatusInternalServerError:
		RespondError(c, ae.Status, ae.Code, errInternal)
	default:
		RespondError(c, ae.Status, ae.Code, errors.New(publicMessage(err)))
	}
}

var (
	errInternal    = errors.New("internal error")
	errUnavailable = errors.New("service temporarily unavailable, try again")
)

func publicMessage(err error) string {
	var agg *aggregates.Error
	if errors.As(err, &agg) && agg.Message != "" {
		return agg.Message
	}
	return err.Error()
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
