package catalog

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/yungbote/storefront-backend/internal/data/aggregates"
	"github.com/yungbote/storefront-backend/internal/domain/catalog"
	"github.com/yungbote/storefront-backend/internal/platform/dbctx"
	"github.com/yungbote/storefront-backend/internal/platform/logger"
)

type ProductRepo interface {
	Create(dbc dbctx.Context, products []*catalog.Product) ([]*catalog.Product, error)
	GetByID(dbc dbctx.Context, id string) (*catalog.Product, error)
	ListAll(dbc dbctx.Context) ([]*catalog.Product, error)
	ListByCategory(dbc dbctx.Context, categoryID string) ([]*catalog.Product, error)
	ListByCategorySlug(dbc dbctx.Context, slug string) ([]*catalog.Product, error)
}

type productRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProductRepo(db *gorm.DB, baseLog *logger.Logger) ProductRepo {
	repoLog := baseLog.With("repo", "ProductRepo")
	return &productRepo{db: db, log: repoLog}
}

func (r *productRepo) Create(dbc dbctx.Context, products []*catalog.Product) ([]*catalog.Product, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(products) == 0 {
		return []*catalog.Product{}, nil
	}
	for _, p := range products {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}
	if err := transaction.WithContext(dbc.Ctx).Create(&products).Error; err != nil {
		return nil, aggregates.MapError("ProductRepo.Create", err)
	}
	return products, nil
}

// GetByID returns (nil, nil) when the product does not exist.
func (r *productRepo) GetByID(dbc dbctx.Context, id string) (*catalog.Product, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil
	}
	var out catalog.Product
	if err := transaction.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Limit(1).
		Take(&out).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, aggregates.MapError("ProductRepo.GetByID", err)
	}
	return &out, nil
}

func (r *productRepo) ListAll(dbc dbctx.Context) ([]*catalog.Product, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*catalog.Product
	if err := transaction.WithContext(dbc.Ctx).
		Order("created_at ASC, id ASC").
		Find(&results).Error; err != nil {
		return nil, aggregates.MapError("ProductRepo.ListAll", err)
	}
	return results, nil
}

// ListByCategory returns the category's products in a stable listing order
// (creation time, then id).
func (r *productRepo) ListByCategory(dbc dbctx.Context, categoryID string) ([]*catalog.Product, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*catalog.Product
	categoryID = strings.TrimSpace(categoryID)
	if categoryID == "" {
		return results, nil
	}
	if err := transaction.WithContext(dbc.Ctx).
		Where("category_id = ?", categoryID).
		Order("created_at ASC, id ASC").
		Find(&results).Error; err != nil {
		return nil, aggregates.MapError("ProductRepo.ListByCategory", err)
	}
	return results, nil
}

func (r *productRepo) ListByCategorySlug(dbc dbctx.Context, slug string) ([]*catalog.Product, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*catalog.Product
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return results, nil
	}
	if err := transaction.WithContext(dbc.Ctx).
		Joins("JOIN category ON category.id = product.category_id").
		Where("category.slug = ?", slug).
		Order("product.created_at ASC, product.id ASC").
		Find(&results).Error; err != nil {
		return nil, aggregates.MapError("ProductRepo.ListByCategorySlug", err)
	}
	return results, nil
}
