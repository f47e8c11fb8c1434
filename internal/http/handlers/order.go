package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/storefront-backend/internal/http/response"
	"github.com/yungbote/storefront-backend/internal/platform/ctxutil"
	"github.com/yungbote/storefront-backend/internal/platform/logger"
	"github.com/yungbote/storefront-backend/internal/services"
)

type OrderHandler struct {
	log     *logger.Logger
	history services.OrderHistoryService
}

func NewOrderHandler(log *logger.Logger, history services.OrderHistoryService) *OrderHandler {
	return &OrderHandler{log: log.With("handler", "OrderHandler"), history: history}
}

// GET /api/me/orders
func (h *OrderHandler) ListMine(c *gin.Context) {
	ctx := c.Request.Context()
	list, err := h.history.LoadOrderHistory(ctx, ctxutil.UserID(ctx))
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"orders": toOrderViews(list)})
}
