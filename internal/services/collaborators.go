package services

import (
	"context"
	"time"

	"github.com/yungbote/storefront-backend/internal/clients/redis"
	"github.com/yungbote/storefront-backend/internal/data/repos"
	"github.com/yungbote/storefront-backend/internal/domain/catalog"
	"github.com/yungbote/storefront-backend/internal/domain/orders"
	"github.com/yungbote/storefront-backend/internal/observability"
	"github.com/yungbote/storefront-backend/internal/platform/ctxutil"
	"github.com/yungbote/storefront-backend/internal/platform/dbctx"
	"github.com/yungbote/storefront-backend/internal/platform/logger"
)

// ProductSource resolves product records. Lookups return (nil, nil) when the
// product does not exist.
type ProductSource interface {
	GetProductByID(ctx context.Context, id string) (*catalog.Product, error)
	ListProductsByCategory(ctx context.Context, categoryID string) ([]*catalog.Product, error)
}

// CategorySource returns (nil, nil) when the category does not exist.
type CategorySource interface {
	GetCategoryByID(ctx context.Context, id string) (*catalog.Category, error)
}

type OrderSource interface {
	ListOrdersByUser(ctx context.Context, userID string) ([]*orders.Order, error)
}

// CartSink receives cart mutations.
type CartSink interface {
	AddItem(ctx context.Context, userID, productID string, quantity int) error
}

type repoProductSource struct {
	products repos.ProductRepo
}

func NewRepoProductSource(products repos.ProductRepo) ProductSource {
	return &repoProductSource{products: products}
}

func (s *repoProductSource) GetProductByID(ctx context.Context, id string) (*catalog.Product, error) {
	return s.products.GetByID(dbctx.Context{Ctx: ctx}, id)
}

func (s *repoProductSource) ListProductsByCategory(ctx context.Context, categoryID string) ([]*catalog.Product, error) {
	return s.products.ListByCategory(dbctx.Context{Ctx: ctx}, categoryID)
}

type repoCategorySource struct {
	categories repos.CategoryRepo
}

func NewRepoCategorySource(categories repos.CategoryRepo) CategorySource {
	return &repoCategorySource{categories: categories}
}

func (s *repoCategorySource) GetCategoryByID(ctx context.Context, id string) (*catalog.Category, error) {
	return s.categories.GetByID(dbctx.Context{Ctx: ctx}, id)
}

type repoOrderSource struct {
	orders repos.OrderRepo
}

func NewRepoOrderSource(orderRepo repos.OrderRepo) OrderSource {
	return &repoOrderSource{orders: orderRepo}
}

func (s *repoOrderSource) ListOrdersByUser(ctx context.Context, userID string) ([]*orders.Order, error) {
	return s.orders.ListByUser(dbctx.Context{Ctx: ctx}, userID)
}

type cachedProductSource struct {
	inner   ProductSource
	cache   redis.ProductCache
	log     *logger.Logger
	metrics *observability.Metrics
}

// NewCachedProductSource fronts single-product lookups with the redis cache.
// Cache failures are logged and fall through to inner. Category listings are
// never cached so related products follow the store's current order.
func NewCachedProductSource(inner ProductSource, cache redis.ProductCache, log *logger.Logger, metrics *observability.Metrics) ProductSource {
	if cache == nil {
		return inner
	}
	return &cachedProductSource{
		inner:   inner,
		cache:   cache,
		log:     log.With("service", "CachedProductSource"),
		metrics: metrics,
	}
}

func (s *cachedProductSource) GetProductByID(ctx context.Context, id string) (*catalog.Product, error) {
	if p, err := s.cache.Get(ctx, id); err != nil {
		s.metrics.IncProductCache("error")
		s.log.Warn("product cache read failed", "product_id", id, "error", err)
	} else if p != nil {
		s.metrics.IncProductCache("hit")
		return p, nil
	} else {
		s.metrics.IncProductCache("miss")
	}

	p, err := s.inner.GetProductByID(ctx, id)
	if err != nil || p == nil {
		return p, err
	}
	if err := s.cache.Set(ctx, p); err != nil {
		s.log.Warn("product cache write failed", "product_id", id, "error", err)
	}
	return p, nil
}

func (s *cachedProductSource) ListProductsByCategory(ctx context.Context, categoryID string) ([]*catalog.Product, error) {
	return s.inner.ListProductsByCategory(ctx, categoryID)
}

type repoCartSink struct {
	items  repos.CartItemRepo
	events redis.CartEventBus
	log    *logger.Logger
}

// NewRepoCartSink writes cart lines through the repo and, when events is set,
// publishes an item_added event after each successful write.
func NewRepoCartSink(items repos.CartItemRepo, events redis.CartEventBus, log *logger.Logger) CartSink {
	return &repoCartSink{items: items, events: events, log: log.With("service", "CartSink")}
}

func (s *repoCartSink) AddItem(ctx context.Context, userID, productID string, quantity int) error {
	row, err := s.items.AddItem(dbctx.Context{Ctx: ctx}, userID, productID, quantity)
	if err != nil {
		return err
	}
	if s.events == nil {
		return nil
	}
	ev := redis.CartEvent{
		Type:      "item_added",
		UserID:    userID,
		ProductID: productID,
		Quantity:  row.Quantity,
		At:        time.Now().UTC(),
	}
	if err := s.events.Publish(ctxutil.Default(ctx), ev); err != nil {
		s.log.Warn("cart event publish failed", "user_id", userID, "product_id", productID, "error", err)
	}
	return nil
}
