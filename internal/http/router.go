package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/storefront-backend/internal/http/handlers"
	httpMW "github.com/yungbote/storefront-backend/internal/http/middleware"
	"github.com/yungbote/storefront-backend/internal/observability"
	"github.com/yungbote/storefront-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	Metrics     *observability.Metrics
	ServiceName string
	CORSOrigins []string

	AuthMiddleware *httpMW.AuthMiddleware

	ProductHandler *httpH.ProductHandler
	OrderHandler   *httpH.OrderHandler
	CartHandler    *httpH.CartHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins...))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
		r.GET("/readyz", cfg.HealthHandler.Ready)
	}

	api := r.Group("/api")
	{
		// Catalog (public)
		if cfg.ProductHandler != nil {
			api.GET("/categories", cfg.ProductHandler.ListCategories)
			api.GET("/products", cfg.ProductHandler.List)
			api.GET("/products/:id", cfg.ProductHandler.Get)
			api.POST("/products/:id/quantity", cfg.ProductHandler.Quantity)
		}
	}

	protected := api.Group("/")
	{
		// Middleware
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Orders (Me)
		if cfg.OrderHandler != nil {
			protected.GET("/me/orders", cfg.OrderHandler.ListMine)
		}

		// Cart
		if cfg.CartHandler != nil {
			protected.POST("/cart/items", cfg.CartHandler.AddItem)
			protected.POST("/cart/buy-now", cfg.CartHandler.BuyNow)
			protected.POST("/cart/quick-add", cfg.CartHandler.QuickAdd)
		}
	}

	return r
}
