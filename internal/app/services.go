package app

import (
	"github.com/yungbote/storefront-backend/internal/observability"
	"github.com/yungbote/storefront-backend/internal/platform/logger"
	"github.com/yungbote/storefront-backend/internal/services"
)

type Services struct {
	Identity      services.IdentityService
	Catalog       services.CatalogService
	ProductDetail services.ProductDetailService
	OrderHistory  services.OrderHistoryService
	Cart          services.CartService

	// Products is the cache-fronted product collaborator shared by the
	// aggregators. Cart reads bypass it.
	Products services.ProductSource
}

func wireServices(log *logger.Logger, cfg Config, repoSet Repos, clients Clients, metrics *observability.Metrics) Services {
	log.Info("Wiring services...")

	// Cart checks read stock from the store; the cache only fronts read views.
	store := services.NewRepoProductSource(repoSet.Product)
	products := store
	if clients.ProductCache != nil {
		products = services.NewCachedProductSource(store, clients.ProductCache, log, metrics)
	}
	categories := services.NewRepoCategorySource(repoSet.Category)
	orderSource := services.NewRepoOrderSource(repoSet.Order)
	sink := services.NewRepoCartSink(repoSet.CartItem, clients.CartEvents, log)

	return Services{
		Identity: services.NewIdentityService(log, cfg.JWTSecretKey),
		Catalog:  services.NewCatalogService(log, repoSet.Product, repoSet.Category),
		ProductDetail: services.NewProductDetailService(log, products, categories, metrics, services.ProductDetailConfig{
			RelatedLimit:        cfg.RelatedLimit,
			CollaboratorTimeout: cfg.CollaboratorTimeout,
		}),
		OrderHistory: services.NewOrderHistoryService(log, orderSource, products, metrics, services.OrderHistoryConfig{
			Concurrency:         cfg.EnrichConcurrency,
			CollaboratorTimeout: cfg.CollaboratorTimeout,
		}),
		Cart:     services.NewCartService(log, store, sink, metrics, cfg.CollaboratorTimeout),
		Products: products,
	}
}
