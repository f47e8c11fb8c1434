package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/yungbote/storefront-backend/internal/domain/aggregates"
)

// DefaultRelatedLimit caps the related-products carousel.
const DefaultRelatedLimit = 4

var hundred = decimal.NewFromInt(100)

type Product struct {
	ID                 string                             `gorm:"primaryKey;column:id" json:"id"`
	Title              string                             `gorm:"not null;column:title" json:"title"`
	Description        string                             `gorm:"column:description" json:"description"`
	Brand              string                             `gorm:"column:brand" json:"brand"`
	Price              decimal.Decimal                    `gorm:"type:numeric(12,2);not null;column:price" json:"price"`
	DiscountPercentage float64                            `gorm:"column:discount_percentage" json:"discount_percentage"`
	Rating             float64                            `gorm:"column:rating" json:"rating"`
	Stock              int                                `gorm:"not null;default:0;column:stock" json:"stock"`
	Images             datatypes.JSONSlice[string]        `gorm:"column:images" json:"images"`
	Thumbnail          string                             `gorm:"column:thumbnail" json:"thumbnail"`
	Specifications     datatypes.JSONType[Specifications] `gorm:"column:specifications" json:"specifications"`
	Features           datatypes.JSONSlice[string]        `gorm:"column:features" json:"features"`
	CategoryID         *string                            `gorm:"index;column:category_id" json:"category_id,omitempty"`
	CreatedAt          time.Time                          `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time                          `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Product) TableName() string { return "product" }

// HasCategory reports whether the product references a category.
func (p *Product) HasCategory() bool {
	return p != nil && p.CategoryID != nil && strings.TrimSpace(*p.CategoryID) != ""
}

func (p *Product) InStock() bool { return p != nil && p.Stock > 0 }

func (p *Product) HasDiscount() bool { return p != nil && p.DiscountPercentage > 0 }

// OriginalPrice reconstructs the pre-discount price from the stored price and
// discount percentage. Without a discount it is the price itself.
func (p *Product) OriginalPrice() decimal.Decimal {
	if !p.HasDiscount() || p.DiscountPercentage >= 100 {
		return p.Price
	}
	factor := decimal.NewFromInt(1).Sub(decimal.NewFromFloat(p.DiscountPercentage).Div(hundred))
	return p.Price.Div(factor).Round(2)
}

// Subtotal is price x quantity.
func (p *Product) Subtotal(quantity int) decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(quantity)))
}

// Validate checks the record shape at the collaborator boundary.
func (p *Product) Validate() error {
	const op = "Product.Validate"
	if p == nil {
		return aggregates.NewError(aggregates.CodeValidation, op, "nil product", nil)
	}
	var problems []string
	if strings.TrimSpace(p.ID) == "" {
		problems = append(problems, "id is required")
	}
	if !p.Price.IsPositive() {
		problems = append(problems, "price must be > 0")
	}
	if p.DiscountPercentage < 0 || p.DiscountPercentage > 100 {
		problems = append(problems, "discount_percentage must be within [0, 100]")
	}
	if p.Stock < 0 {
		problems = append(problems, "stock must be >= 0")
	}
	if len(p.Images) == 0 {
		problems = append(problems, "at least one image is required")
	}
	if len(problems) > 0 {
		return aggregates.NewError(aggregates.CodeValidation, op, fmt.Sprintf("product %q: %s", p.ID, strings.Join(problems, "; ")), nil)
	}
	return nil
}

type Category struct {
	ID   string `gorm:"primaryKey;column:id" json:"id"`
	Slug string `gorm:"uniqueIndex;not null;column:slug" json:"slug"`
	Name string `gorm:"not null;column:name" json:"name"`
}

func (Category) TableName() string { return "category" }

// ProductDetailView is the read-only model behind a product page.
type ProductDetailView struct {
	Product  *Product   `json:"product"`
	Category *Category  `json:"category,omitempty"`
	Related  []*Product `json:"related"`
}

// RelatedProducts drops the subject from candidates and keeps the first limit
// entries in candidate order.
func RelatedProducts(subjectID string, candidates []*Product, limit int) []*Product {
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}
	out := make([]*Product, 0, limit)
	for _, c := range candidates {
		if c == nil || c.ID == subjectID {
			continue
		}
		out = append(out, c)
		if len(out) == limit {
			break
		}
	}
	return out
}
