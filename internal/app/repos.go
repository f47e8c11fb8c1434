package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/storefront-backend/internal/data/repos"
	"github.com/yungbote/storefront-backend/internal/platform/logger"
)

type Repos struct {
	Product  repos.ProductRepo
	Category repos.CategoryRepo
	Order    repos.OrderRepo
	CartItem repos.CartItemRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Product:  repos.NewProductRepo(db, log),
		Category: repos.NewCategoryRepo(db, log),
		Order:    repos.NewOrderRepo(db, log),
		CartItem: repos.NewCartItemRepo(db, log),
	}
}
