package services

import (
	"context"
	"strings"

	"github.com/yungbote/storefront-backend/internal/data/repos"
	"github.com/yungbote/storefront-backend/internal/domain/aggregates"
	"github.com/yungbote/storefront-backend/internal/domain/catalog"
	"github.com/yungbote/storefront-backend/internal/platform/dbctx"
	"github.com/yungbote/storefront-backend/internal/platform/logger"
)

// CatalogService backs category navigation listings.
type CatalogService interface {
	ListProducts(ctx context.Context, categorySlug string) ([]*catalog.Product, error)
	ListCategories(ctx context.Context) ([]*catalog.Category, error)
}

type catalogService struct {
	log        *logger.Logger
	products   repos.ProductRepo
	categories repos.CategoryRepo
}

func NewCatalogService(log *logger.Logger, products repos.ProductRepo, categories repos.CategoryRepo) CatalogService {
	return &catalogService{
		log:        log.With("service", "CatalogService"),
		products:   products,
		categories: categories,
	}
}

// ListProducts lists every product, or only those in categorySlug when set.
// An unknown slug is not_found.
func (s *catalogService) ListProducts(ctx context.Context, categorySlug string) ([]*catalog.Product, error) {
	const op = "Catalog.ListProducts"
	dbc := dbctx.Context{Ctx: ctx}
	categorySlug = strings.TrimSpace(categorySlug)
	if categorySlug == "" {
		out, err := s.products.ListAll(dbc)
		if err != nil {
			return nil, aggregates.Unavailable(op, err)
		}
		return out, nil
	}

	out, err := s.products.ListByCategorySlug(dbc, categorySlug)
	if err != nil {
		return nil, aggregates.Unavailable(op, err)
	}
	if len(out) > 0 {
		return out, nil
	}
	// No rows: tell an empty category apart from an unknown slug.
	c, err := s.categories.GetBySlug(dbc, categorySlug)
	if err != nil {
		return nil, aggregates.Unavailable(op, err)
	}
	if c == nil {
		return nil, aggregates.NotFound(op, "category "+categorySlug+" not found")
	}
	return out, nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]*catalog.Category, error) {
	out, err := s.categories.List(dbctx.Context{Ctx: ctx})
	if err != nil {
		return nil, aggregates.Unavailable("Catalog.ListCategories", err)
	}
	return out, nil
}
