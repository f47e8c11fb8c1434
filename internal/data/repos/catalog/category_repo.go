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

type CategoryRepo interface {
	Create(dbc dbctx.Context, categories []*catalog.Category) ([]*catalog.Category, error)
	GetByID(dbc dbctx.Context, id string) (*catalog.Category, error)
	GetBySlug(dbc dbctx.Context, slug string) (*catalog.Category, error)
	List(dbc dbctx.Context) ([]*catalog.Category, error)
}

type categoryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCategoryRepo(db *gorm.DB, baseLog *logger.Logger) CategoryRepo {
	repoLog := baseLog.With("repo", "CategoryRepo")
	return &categoryRepo{db: db, log: repoLog}
}

func (r *categoryRepo) Create(dbc dbctx.Context, categories []*catalog.Category) ([]*catalog.Category, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(categories) == 0 {
		return []*catalog.Category{}, nil
	}
	for _, c := range categories {
		if c == nil || strings.TrimSpace(c.ID) == "" || strings.TrimSpace(c.Slug) == "" {
			return nil, aggregates.MapError("CategoryRepo.Create", aggregates.ValidationError("category id and slug are required"))
		}
	}
	if err := transaction.WithContext(dbc.Ctx).Create(&categories).Error; err != nil {
		return nil, aggregates.MapError("CategoryRepo.Create", err)
	}
	return categories, nil
}

// GetByID returns (nil, nil) when the category does not exist.
func (r *categoryRepo) GetByID(dbc dbctx.Context, id string) (*catalog.Category, error) {
	return r.getOne(dbc, "id = ?", strings.TrimSpace(id), "CategoryRepo.GetByID")
}

func (r *categoryRepo) GetBySlug(dbc dbctx.Context, slug string) (*catalog.Category, error) {
	return r.getOne(dbc, "slug = ?", strings.TrimSpace(slug), "CategoryRepo.GetBySlug")
}

func (r *categoryRepo) getOne(dbc dbctx.Context, where, arg, op string) (*catalog.Category, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if arg == "" {
		return nil, nil
	}
	var out catalog.Category
	if err := transaction.WithContext(dbc.Ctx).
		Where(where, arg).
		Limit(1).
		Take(&out).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, aggregates.MapError(op, err)
	}
	return &out, nil
}

func (r *categoryRepo) List(dbc dbctx.Context) ([]*catalog.Category, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*catalog.Category
	if err := transaction.WithContext(dbc.Ctx).
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, aggregates.MapError("CategoryRepo.List", err)
	}
	return results, nil
}
