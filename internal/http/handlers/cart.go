package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/storefront-backend/internal/http/response"
	"github.com/yungbote/storefront-backend/internal/platform/logger"
	"github.com/yungbote/storefront-backend/internal/services"
)

type CartHandler struct {
	log  *logger.Logger
	cart services.CartService
}

func NewCartHandler(log *logger.Logger, cart services.CartService) *CartHandler {
	return &CartHandler{log: log.With("handler", "CartHandler"), cart: cart}
}

type addItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// POST /api/cart/items
//
// A refused quantity is a 200 with ok=false and the selector feedback.
func (h *CartHandler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondErr(c, badRequest("Cart.AddItem", err))
		return
	}
	res, err := h.cart.AddToCart(c.Request.Context(), req.ProductID, req.Quantity)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, res)
}

// POST /api/cart/buy-now
func (h *CartHandler) BuyNow(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondErr(c, badRequest("Cart.BuyNow", err))
		return
	}
	res, err := h.cart.BuyNow(c.Request.Context(), req.ProductID, req.Quantity)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, res)
}

type quickAddRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// POST /api/cart/quick-add
//
// One unit from a product list, e.g. the related products on a detail page.
func (h *CartHandler) QuickAdd(c *gin.Context) {
	var req quickAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondErr(c, badRequest("Cart.QuickAdd", err))
		return
	}
	res, err := h.cart.QuickAdd(c.Request.Context(), req.ProductID)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, res)
}
