package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/storefront-backend/internal/http/response"
	"github.com/yungbote/storefront-backend/internal/platform/logger"
	"github.com/yungbote/storefront-backend/internal/services"
)

type ProductHandler struct {
	log     *logger.Logger
	catalog services.CatalogService
	detail  services.ProductDetailService
	cart    services.CartService
}

func NewProductHandler(
	log *logger.Logger,
	catalog services.CatalogService,
	detail services.ProductDetailService,
	cart services.CartService,
) *ProductHandler {
	return &ProductHandler{
		log:     log.With("handler", "ProductHandler"),
		catalog: catalog,
		detail:  detail,
		cart:    cart,
	}
}

// GET /api/products?category=slug
func (h *ProductHandler) List(c *gin.Context) {
	list, err := h.catalog.ListProducts(c.Request.Context(), c.Query("category"))
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"products": toProductViews(list)})
}

// GET /api/categories
func (h *ProductHandler) ListCategories(c *gin.Context) {
	list, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"categories": list})
}

// GET /api/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	view, err := h.detail.LoadProductDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, toProductDetailView(view))
}

type quantityRequest struct {
	Current int                     `json:"current"`
	Action  services.QuantityAction `json:"action" binding:"required"`
	Value   int                     `json:"value"`
}

// POST /api/products/:id/quantity
func (h *ProductHandler) Quantity(c *gin.Context) {
	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondErr(c, badRequest("Product.Quantity", err))
		return
	}
	state, err := h.cart.ApplyQuantity(c.Request.Context(), c.Param("id"), req.Current, req.Action, req.Value)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, state)
}
