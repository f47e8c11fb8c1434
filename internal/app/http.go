package app

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/storefront-backend/internal/http"
	httpH "github.com/yungbote/storefront-backend/internal/http/handlers"
	httpMW "github.com/yungbote/storefront-backend/internal/http/middleware"
	"github.com/yungbote/storefront-backend/internal/observability"
	"github.com/yungbote/storefront-backend/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health  *httpH.HealthHandler
	Product *httpH.ProductHandler
	Order   *httpH.OrderHandler
	Cart    *httpH.CartHandler
}

func wireHandlers(log *logger.Logger, services Services, db *gorm.DB, clients Clients) Handlers {
	log.Info("Wiring handlers...")
	health := httpH.NewHealthHandler().WithCheck("database", func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	})
	if clients.Redis != nil {
		health.WithCheck("redis", func(ctx context.Context) error { return clients.Redis.Ping(ctx).Err() })
	}
	return Handlers{
		Health:  health,
		Product: httpH.NewProductHandler(log, services.Catalog, services.ProductDetail, services.Cart),
		Order:   httpH.NewOrderHandler(log, services.OrderHistory),
		Cart:    httpH.NewCartHandler(log, services.Cart),
	}
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Identity),
	}
}

func wireServer(log *logger.Logger, cfg Config, metrics *observability.Metrics, handlers Handlers, middleware Middleware) *http.Server {
	serviceName := ""
	if cfg.Otel.Enabled {
		serviceName = cfg.Otel.ServiceName
	}
	return http.NewServer(http.RouterConfig{
		Log:            log,
		Metrics:        metrics,
		ServiceName:    serviceName,
		CORSOrigins:    cfg.CORSOrigins,
		AuthMiddleware: middleware.Auth,
		ProductHandler: handlers.Product,
		OrderHandler:   handlers.Order,
		CartHandler:    handlers.Cart,
		HealthHandler:  handlers.Health,
	})
}
