package cart

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Item struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;column:id" json:"id"`
	UserID    string    `gorm:"not null;uniqueIndex:idx_cart_item_user_product;column:user_id" json:"user_id"`
	ProductID string    `gorm:"not null;uniqueIndex:idx_cart_item_user_product;column:product_id" json:"product_id"`
	Quantity  int       `gorm:"not null;column:quantity" json:"quantity"`
	AddedAt   time.Time `gorm:"not null;column:added_at" json:"added_at"`
	UpdatedAt time.Time `gorm:"not null;column:updated_at" json:"updated_at"`
}

func (Item) TableName() string { return "cart_item" }

// AddedMessage is the confirmation shown after a successful add.
func AddedMessage(quantity int) string {
	noun := "items"
	if quantity == 1 {
		noun = "item"
	}
	return fmt.Sprintf("Added %d %s to cart", quantity, noun)
}

// AddedProductMessage confirms a one-click add from a product list, where the
// shopper never picked a quantity.
func AddedProductMessage(title string) string {
	return fmt.Sprintf("Added %s to cart", title)
}
