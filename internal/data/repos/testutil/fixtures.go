package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/storefront-backend/internal/domain/catalog"
	"github.com/yungbote/storefront-backend/internal/domain/orders"
)

func SeedCategory(tb testing.TB, ctx context.Context, tx *gorm.DB, id, slug string) *catalog.Category {
	tb.Helper()
	c := &catalog.Category{ID: id, Slug: slug, Name: slug}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed category: %v", err)
	}
	return c
}

// NewProduct builds a valid product; categoryID may be empty.
func NewProduct(id, categoryID string, price string, stock int) *catalog.Product {
	p := &catalog.Product{
		ID:        id,
		Title:     "Product " + id,
		Brand:     "Acme",
		Price:     decimal.RequireFromString(price),
		Stock:     stock,
		Images:    datatypes.JSONSlice[string]{"https://img.example.com/" + id + ".jpg"},
		Thumbnail: "https://img.example.com/" + id + "-thumb.jpg",
		Specifications: datatypes.NewJSONType(catalog.Specifications{
			{Name: "weight", Value: catalog.Number(1.5)},
		}),
		Features: datatypes.JSONSlice[string]{"durable"},
	}
	if categoryID != "" {
		cid := categoryID
		p.CategoryID = &cid
	}
	return p
}

func SeedProduct(tb testing.TB, ctx context.Context, tx *gorm.DB, id, categoryID string, price string, stock int) *catalog.Product {
	tb.Helper()
	p := NewProduct(id, categoryID, price, stock)
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed product: %v", err)
	}
	return p
}

// SeedOrder stores an order whose items are (productID, quantity) pairs.
func SeedOrder(tb testing.TB, ctx context.Context, tx *gorm.DB, id, userID string, createdAt time.Time, items ...orders.LineItem) *orders.Order {
	tb.Helper()
	for i := range items {
		items[i].OrderID = id
		items[i].Position = i
	}
	o := &orders.Order{
		ID:            id,
		UserID:        userID,
		Items:         items,
		OrderStatus:   orders.OrderStatusShipped,
		PaymentStatus: orders.PaymentStatusPaid,
		TotalAmount:   decimal.RequireFromString("10.00"),
		ShippingAddress: datatypes.NewJSONType(orders.ShippingAddress{
			Name: "A B", Street: "1 Main St", City: "Springfield", State: "IL", ZipCode: "62701", Country: "US",
		}),
		CreatedAt: createdAt,
	}
	if err := tx.WithContext(ctx).Create(o).Error; err != nil {
		tb.Fatalf("seed order: %v", err)
	}
	return o
}
