package handlers

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/yungbote/storefront-backend/internal/domain/catalog"
	"github.com/yungbote/storefront-backend/internal/domain/orders"
)

type specView struct {
	Name  string            `json:"name"`
	Label string            `json:"label"`
	Value catalog.SpecValue `json:"value"`
}

type productView struct {
	ID                 string          `json:"id"`
	Title              string          `json:"title"`
	Description        string          `json:"description"`
	Brand              string          `json:"brand"`
	Price              decimal.Decimal `json:"price"`
	OriginalPrice      decimal.Decimal `json:"original_price"`
	DiscountPercentage float64         `json:"discount_percentage"`
	HasDiscount        bool            `json:"has_discount"`
	Rating             float64         `json:"rating"`
	Stock              int             `json:"stock"`
	InStock            bool            `json:"in_stock"`
	Images             []string        `json:"images"`
	Thumbnail          string          `json:"thumbnail"`
	Specifications     []specView      `json:"specifications"`
	Features           []string        `json:"features"`
	CategoryID         string          `json:"category_id,omitempty"`
}

func toProductView(p *catalog.Product) *productView {
	if p == nil {
		return nil
	}
	specs := p.Specifications.Data()
	sv := make([]specView, 0, len(specs))
	for _, s := range specs {
		sv = append(sv, specView{Name: s.Name, Label: s.Label(), Value: s.Value})
	}
	out := &productView{
		ID:                 p.ID,
		Title:              p.Title,
		Description:        p.Description,
		Brand:              p.Brand,
		Price:              p.Price,
		OriginalPrice:      p.OriginalPrice(),
		DiscountPercentage: p.DiscountPercentage,
		HasDiscount:        p.HasDiscount(),
		Rating:             p.Rating,
		Stock:              p.Stock,
		InStock:            p.InStock(),
		Images:             append([]string{}, p.Images...),
		Thumbnail:          p.Thumbnail,
		Specifications:     sv,
		Features:           append([]string{}, p.Features...),
	}
	if p.HasCategory() {
		out.CategoryID = *p.CategoryID
	}
	return out
}

func toProductViews(list []*catalog.Product) []*productView {
	out := make([]*productView, 0, len(list))
	for _, p := range list {
		if p != nil {
			out = append(out, toProductView(p))
		}
	}
	return out
}

type productDetailView struct {
	Product  *productView      `json:"product"`
	Category *catalog.Category `json:"category"`
	Related  []*productView    `json:"related"`
}

func toProductDetailView(v *catalog.ProductDetailView) *productDetailView {
	return &productDetailView{
		Product:  toProductView(v.Product),
		Category: v.Category,
		Related:  toProductViews(v.Related),
	}
}

type orderItemView struct {
	ProductID  string            `json:"product_id"`
	Product    *productView      `json:"product"`
	Quantity   int               `json:"quantity"`
	Subtotal   *decimal.Decimal  `json:"subtotal,omitempty"`
	Resolution orders.Resolution `json:"resolution"`
}

type orderView struct {
	ID                  string                 `json:"id"`
	OrderStatus         orders.OrderStatus     `json:"order_status"`
	StatusVariant       string                 `json:"status_variant"`
	PaymentStatus       orders.PaymentStatus   `json:"payment_status"`
	PaymentVariant      string                 `json:"payment_variant"`
	TotalAmount         decimal.Decimal        `json:"total_amount"`
	ShippingAddress     orders.ShippingAddress `json:"shipping_address"`
	ShippingAddressLine string                 `json:"shipping_address_line"`
	CreatedAt           time.Time              `json:"created_at"`
	Products            []orderItemView        `json:"products"`
}

func toOrderViews(list []*orders.EnrichedOrder) []orderView {
	out := make([]orderView, 0, len(list))
	for _, o := range list {
		if o == nil || o.Order == nil {
			continue
		}
		addr := o.ShippingAddress.Data()
		items := make([]orderItemView, 0, len(o.Products))
		for _, it := range o.Products {
			items = append(items, orderItemView{
				ProductID:  it.ProductID,
				Product:    toProductView(it.Product),
				Quantity:   it.Quantity,
				Subtotal:   it.Subtotal,
				Resolution: it.Resolution,
			})
		}
		out = append(out, orderView{
			ID:                  o.ID,
			OrderStatus:         o.OrderStatus,
			StatusVariant:       o.OrderStatus.Variant(),
			PaymentStatus:       o.PaymentStatus,
			PaymentVariant:      o.PaymentStatus.Variant(),
			TotalAmount:         o.TotalAmount,
			ShippingAddress:     addr,
			ShippingAddressLine: addr.OneLine(),
			CreatedAt:           o.CreatedAt,
			Products:            items,
		})
	}
	return out
}
