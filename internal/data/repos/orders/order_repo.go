package orders

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/storefront-backend/internal/data/aggregates"
	"github.com/yungbote/storefront-backend/internal/domain/orders"
	"github.com/yungbote/storefront-backend/internal/platform/dbctx"
	"github.com/yungbote/storefront-backend/internal/platform/logger"
)

type OrderRepo interface {
	Create(dbc dbctx.Context, list []*orders.Order) ([]*orders.Order, error)
	GetByID(dbc dbctx.Context, id string) (*orders.Order, error)
	ListByUser(dbc dbctx.Context, userID string) ([]*orders.Order, error)
}

type orderRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOrderRepo(db *gorm.DB, baseLog *logger.Logger) OrderRepo {
	repoLog := baseLog.With("repo", "OrderRepo")
	return &orderRepo{db: db, log: repoLog}
}

// Create stores orders with their line items. Item positions are assigned
// from slice order so reads return them in the sequence they were placed.
func (r *orderRepo) Create(dbc dbctx.Context, list []*orders.Order) ([]*orders.Order, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(list) == 0 {
		return []*orders.Order{}, nil
	}
	now := time.Now().UTC()
	for _, o := range list {
		if o == nil || strings.TrimSpace(o.UserID) == "" {
			return nil, aggregates.MapError("OrderRepo.Create", aggregates.ValidationError("order user_id is required"))
		}
		if strings.TrimSpace(o.ID) == "" {
			o.ID = uuid.NewString()
		}
		if o.CreatedAt.IsZero() {
			o.CreatedAt = now
		}
		if o.OrderStatus == "" {
			o.OrderStatus = orders.OrderStatusPending
		}
		if o.PaymentStatus == "" {
			o.PaymentStatus = orders.PaymentStatusUnpaid
		}
		for i := range o.Items {
			if o.Items[i].Quantity < 1 {
				return nil, aggregates.MapError("OrderRepo.Create", aggregates.ValidationError("line item quantity must be >= 1"))
			}
			o.Items[i].OrderID = o.ID
			o.Items[i].Position = i
		}
	}
	if err := transaction.WithContext(dbc.Ctx).Create(&list).Error; err != nil {
		return nil, aggregates.MapError("OrderRepo.Create", err)
	}
	return list, nil
}

// GetByID returns (nil, nil) when the order does not exist.
func (r *orderRepo) GetByID(dbc dbctx.Context, id string) (*orders.Order, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if strings.TrimSpace(id) == "" {
		return nil, nil
	}
	var out orders.Order
	if err := transaction.WithContext(dbc.Ctx).
		Preload("Items", orderedItems).
		Where("id = ?", id).
		Limit(1).
		Take(&out).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, aggregates.MapError("OrderRepo.GetByID", err)
	}
	return &out, nil
}

// ListByUser returns the user's orders, newest first, each with items in
// placement order.
func (r *orderRepo) ListByUser(dbc dbctx.Context, userID string) ([]*orders.Order, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*orders.Order
	if strings.TrimSpace(userID) == "" {
		return results, nil
	}
	if err := transaction.WithContext(dbc.Ctx).
		Preload("Items", orderedItems).
		Where("user_id = ?", userID).
		Order("created_at DESC, id ASC").
		Find(&results).Error; err != nil {
		return nil, aggregates.MapError("OrderRepo.ListByUser", err)
	}
	return results, nil
}

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}
