package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/storefront-backend/internal/data/repos/cart"
	"github.com/yungbote/storefront-backend/internal/data/repos/catalog"
	"github.com/yungbote/storefront-backend/internal/data/repos/orders"
	"github.com/yungbote/storefront-backend/internal/platform/logger"
)

type ProductRepo = catalog.ProductRepo
type CategoryRepo = catalog.CategoryRepo

type OrderRepo = orders.OrderRepo

type CartItemRepo = cart.CartItemRepo

func NewProductRepo(db *gorm.DB, baseLog *logger.Logger) ProductRepo {
	return catalog.NewProductRepo(db, baseLog)
}

func NewCategoryRepo(db *gorm.DB, baseLog *logger.Logger) CategoryRepo {
	return catalog.NewCategoryRepo(db, baseLog)
}

func NewOrderRepo(db *gorm.DB, baseLog *logger.Logger) OrderRepo {
	return orders.NewOrderRepo(db, baseLog)
}

func NewCartItemRepo(db *gorm.DB, baseLog *logger.Logger) CartItemRepo {
	return cart.NewCartItemRepo(db, baseLog)
}
