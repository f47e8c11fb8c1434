package services

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/storefront-backend/internal/domain/aggregates"
	"github.com/yungbote/storefront-backend/internal/domain/catalog"
	"github.com/yungbote/storefront-backend/internal/domain/orders"
	"github.com/yungbote/storefront-backend/internal/observability"
	"github.com/yungbote/storefront-backend/internal/platform/ctxutil"
	"github.com/yungbote/storefront-backend/internal/platform/logger"
)

const (
	viewOrderHistory         = "order_history"
	defaultEnrichConcurrency = 8
)

type OrderHistoryService interface {
	LoadOrderHistory(ctx context.Context, userID string) ([]*orders.EnrichedOrder, error)
}

type OrderHistoryConfig struct {
	Concurrency         int
	CollaboratorTimeout time.Duration
}

type orderHistoryService struct {
	log      *logger.Logger
	orders   OrderSource
	products ProductSource
	metrics  *observability.Metrics
	cfg      OrderHistoryConfig
}

func NewOrderHistoryService(
	log *logger.Logger,
	orderSource OrderSource,
	products ProductSource,
	metrics *observability.Metrics,
	cfg OrderHistoryConfig,
) OrderHistoryService {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = defaultEnrichConcurrency
	}
	if cfg.CollaboratorTimeout <= 0 {
		cfg.CollaboratorTimeout = defaultCollaboratorTimeout
	}
	return &orderHistoryService{
		log:      log.With("service", "OrderHistoryService"),
		orders:   orderSource,
		products: products,
		metrics:  metrics,
		cfg:      cfg,
	}
}

type productLookup struct {
	product    *catalog.Product
	resolution orders.Resolution
}

// LoadOrderHistory returns the user's orders with every line item resolved
// against the current product records. Only the order fetch itself can fail
// the load; a product that is missing or cannot be fetched leaves its item
// without a product. Orders and items keep the order the store returned.
func (s *orderHistoryService) LoadOrderHistory(ctx context.Context, userID string) (out []*orders.EnrichedOrder, err error) {
	const op = "OrderHistory.Load"
	userID = strings.TrimSpace(userID)

	ctx, span := observability.Tracer().Start(ctx, op)
	start := time.Now()
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = string(aggregates.CodeOf(err))
			span.RecordError(err)
			span.SetStatus(codes.Error, outcome)
		}
		s.metrics.ObserveAggregation(viewOrderHistory, outcome, time.Since(start))
		span.End()
	}()

	if userID == "" {
		return nil, aggregates.NewError(aggregates.CodeValidation, op, "user id is required", nil)
	}

	list, err := callCollaborator(ctx, s.metrics, "orders", s.cfg.CollaboratorTimeout,
		func(ctx context.Context) ([]*orders.Order, error) { return s.orders.ListOrdersByUser(ctx, userID) })
	if err != nil {
		s.log.Error("order lookup failed", "user_id", userID, "request_id", ctxutil.RequestID(ctx), "error", err)
		return nil, aggregates.Unavailable(op, err)
	}

	// Resolve each distinct product once; items referencing it share the result.
	var ids []string
	index := map[string]int{}
	for _, o := range list {
		if o == nil {
			continue
		}
		for _, it := range o.Items {
			if _, ok := index[it.ProductID]; !ok {
				index[it.ProductID] = len(ids)
				ids = append(ids, it.ProductID)
			}
		}
	}
	span.SetAttributes(
		attribute.Int("orders.count", len(list)),
		attribute.Int("products.distinct", len(ids)),
	)

	lookups := make([]productLookup, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Concurrency)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			lookups[i] = s.resolveProduct(gctx, userID, id)
			return nil
		})
	}
	_ = g.Wait()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, aggregates.Wrap(aggregates.CodeRetryable, op, ctxErr)
	}

	out = make([]*orders.EnrichedOrder, 0, len(list))
	for _, o := range list {
		if o == nil {
			continue
		}
		eo := &orders.EnrichedOrder{Order: o, Products: make([]orders.EnrichedItem, len(o.Items))}
		for j, it := range o.Items {
			l := lookups[index[it.ProductID]]
			eo.Products[j] = orders.ResolveItem(it, l.product, l.resolution)
			if l.product == nil {
				s.metrics.IncPartial(viewOrderHistory, "line_item", string(eo.Products[j].Resolution))
			}
		}
		out = append(out, eo)
	}
	return out, nil
}

func (s *orderHistoryService) resolveProduct(ctx context.Context, userID, productID string) productLookup {
	p, err := callCollaborator(ctx, s.metrics, "product", s.cfg.CollaboratorTimeout,
		func(ctx context.Context) (*catalog.Product, error) { return s.products.GetProductByID(ctx, productID) })
	switch {
	case err == nil && p != nil:
		return productLookup{product: p, resolution: orders.ResolutionResolved}
	case err == nil, aggregates.IsCode(err, aggregates.CodeNotFound):
		return productLookup{resolution: orders.ResolutionMissing}
	default:
		s.log.Warn("order item product lookup failed",
			"user_id", userID,
			"product_id", productID,
			"request_id", ctxutil.RequestID(ctx),
			"error", err,
		)
		return productLookup{resolution: orders.ResolutionUnavailable}
	}
}
