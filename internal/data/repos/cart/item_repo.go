package cart

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/storefront-backend/internal/data/aggregates"
	"github.com/yungbote/storefront-backend/internal/domain/cart"
	"github.com/yungbote/storefront-backend/internal/platform/dbctx"
	"github.com/yungbote/storefront-backend/internal/platform/logger"
)

type CartItemRepo interface {
	// AddItem inserts the line or adds quantity to the existing line for the
	// same (user, product).
	AddItem(dbc dbctx.Context, userID, productID string, quantity int) (*cart.Item, error)
}

type cartItemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCartItemRepo(db *gorm.DB, baseLog *logger.Logger) CartItemRepo {
	repoLog := baseLog.With("repo", "CartItemRepo")
	return &cartItemRepo{db: db, log: repoLog}
}

func (r *cartItemRepo) AddItem(dbc dbctx.Context, userID, productID string, quantity int) (*cart.Item, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	userID = strings.TrimSpace(userID)
	productID = strings.TrimSpace(productID)
	if userID == "" || productID == "" {
		return nil, aggregates.MapError("CartItemRepo.AddItem", aggregates.ValidationError("user_id and product_id are required"))
	}
	if quantity < 1 {
		return nil, aggregates.MapError("CartItemRepo.AddItem", aggregates.ValidationError("quantity must be >= 1"))
	}

	now := time.Now().UTC()
	row := &cart.Item{
		ID:        uuid.New(),
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
		AddedAt:   now,
		UpdatedAt: now,
	}
	err := transaction.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity":   gorm.Expr("cart_item.quantity + ?", quantity),
				"updated_at": now,
			}),
		}).
		Create(row).Error
	if err != nil {
		return nil, aggregates.MapError("CartItemRepo.AddItem", err)
	}

	var out cart.Item
	if err := transaction.WithContext(dbc.Ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Take(&out).Error; err != nil {
		return nil, aggregates.MapError("CartItemRepo.AddItem", err)
	}
	return &out, nil
}
