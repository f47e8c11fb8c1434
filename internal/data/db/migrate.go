package db

import (
	"gorm.io/gorm"

	"github.com/yungbote/storefront-backend/internal/domain/cart"
	"github.com/yungbote/storefront-backend/internal/domain/catalog"
	"github.com/yungbote/storefront-backend/internal/domain/orders"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		// Catalog
		&catalog.Category{},
		&catalog.Product{},

		// Orders
		&orders.Order{},
		&orders.LineItem{},

		// Cart
		&cart.Item{},
	)
}
