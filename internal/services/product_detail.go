package services

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/storefront-backend/internal/domain/aggregates"
	"github.com/yungbote/storefront-backend/internal/domain/catalog"
	"github.com/yungbote/storefront-backend/internal/observability"
	"github.com/yungbote/storefront-backend/internal/platform/ctxutil"
	"github.com/yungbote/storefront-backend/internal/platform/logger"
)

const viewProductDetail = "product_detail"

type ProductDetailService interface {
	LoadProductDetail(ctx context.Context, productID string) (*catalog.ProductDetailView, error)
}

type ProductDetailConfig struct {
	RelatedLimit        int
	CollaboratorTimeout time.Duration
}

type productDetailService struct {
	log        *logger.Logger
	products   ProductSource
	categories CategorySource
	metrics    *observability.Metrics
	cfg        ProductDetailConfig
}

func NewProductDetailService(
	log *logger.Logger,
	products ProductSource,
	categories CategorySource,
	metrics *observability.Metrics,
	cfg ProductDetailConfig,
) ProductDetailService {
	if cfg.RelatedLimit <= 0 {
		cfg.RelatedLimit = catalog.DefaultRelatedLimit
	}
	if cfg.CollaboratorTimeout <= 0 {
		cfg.CollaboratorTimeout = defaultCollaboratorTimeout
	}
	return &productDetailService{
		log:        log.With("service", "ProductDetailService"),
		products:   products,
		categories: categories,
		metrics:    metrics,
		cfg:        cfg,
	}
}

// LoadProductDetail assembles the product page view: the product, its
// category and up to RelatedLimit other products from the same category.
// Category and related products are fetched concurrently. A missing category
// is tolerated; any other collaborator failure fails the whole load.
func (s *productDetailService) LoadProductDetail(ctx context.Context, productID string) (view *catalog.ProductDetailView, err error) {
	const op = "ProductDetail.Load"
	productID = strings.TrimSpace(productID)

	ctx, span := observability.Tracer().Start(ctx, op, trace.WithAttributes(attribute.String("product.id", productID)))
	start := time.Now()
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = string(aggregates.CodeOf(err))
			span.RecordError(err)
			span.SetStatus(codes.Error, outcome)
		}
		s.metrics.ObserveAggregation(viewProductDetail, outcome, time.Since(start))
		span.End()
	}()

	if productID == "" {
		return nil, aggregates.NewError(aggregates.CodeValidation, op, "product id is required", nil)
	}

	product, err := callCollaborator(ctx, s.metrics, "product", s.cfg.CollaboratorTimeout,
		func(ctx context.Context) (*catalog.Product, error) { return s.products.GetProductByID(ctx, productID) })
	if err != nil && !aggregates.IsCode(err, aggregates.CodeNotFound) {
		s.log.Error("product lookup failed", "product_id", productID, "request_id", ctxutil.RequestID(ctx), "error", err)
		return nil, aggregates.Unavailable(op, err)
	}
	if product == nil {
		return nil, aggregates.NotFound(op, "product "+productID+" not found")
	}

	view = &catalog.ProductDetailView{Product: product, Related: []*catalog.Product{}}
	if !product.HasCategory() {
		return view, nil
	}
	categoryID := strings.TrimSpace(*product.CategoryID)
	span.SetAttributes(attribute.String("category.id", categoryID))

	var (
		category   *catalog.Category
		candidates []*catalog.Product
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := callCollaborator(gctx, s.metrics, "category", s.cfg.CollaboratorTimeout,
			func(ctx context.Context) (*catalog.Category, error) { return s.categories.GetCategoryByID(ctx, categoryID) })
		if err != nil && !aggregates.IsCode(err, aggregates.CodeNotFound) {
			return aggregates.Unavailable(op, err)
		}
		category = c
		return nil
	})
	g.Go(func() error {
		list, err := callCollaborator(gctx, s.metrics, "category_products", s.cfg.CollaboratorTimeout,
			func(ctx context.Context) ([]*catalog.Product, error) {
				return s.products.ListProductsByCategory(ctx, categoryID)
			})
		if err != nil && !aggregates.IsCode(err, aggregates.CodeNotFound) {
			return aggregates.Unavailable(op, err)
		}
		candidates = list
		return nil
	})
	if err := g.Wait(); err != nil {
		s.log.Error("product detail fan-out failed", "product_id", productID, "category_id", categoryID, "error", err)
		return nil, err
	}

	if category == nil {
		s.metrics.IncPartial(viewProductDetail, "category", "missing")
		s.log.Debug("category not found for product", "product_id", productID, "category_id", categoryID)
	}
	view.Category = category
	view.Related = catalog.RelatedProducts(product.ID, candidates, s.cfg.RelatedLimit)
	return view, nil
}
