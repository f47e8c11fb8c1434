package orders

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/yungbote/storefront-backend/internal/domain/catalog"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

// Variant is the badge style a client renders for the status.
func (s OrderStatus) Variant() string {
	switch s {
	case OrderStatusDelivered:
		return "success"
	case OrderStatusShipped:
		return "info"
	default:
		return "neutral"
	}
}

type PaymentStatus string

const (
	PaymentStatusPaid     PaymentStatus = "Paid"
	PaymentStatusUnpaid   PaymentStatus = "Unpaid"
	PaymentStatusRefunded PaymentStatus = "Refunded"
	PaymentStatusFailed   PaymentStatus = "Failed"
)

func (s PaymentStatus) Variant() string {
	if s == PaymentStatusPaid {
		return "success"
	}
	return "warning"
}

// ShippingAddress is a snapshot taken when the order was placed.
type ShippingAddress struct {
	Name    string `json:"name" yaml:"name"`
	Street  string `json:"street" yaml:"street"`
	City    string `json:"city" yaml:"city"`
	State   string `json:"state" yaml:"state"`
	ZipCode string `json:"zip_code" yaml:"zip_code"`
	Country string `json:"country" yaml:"country"`
}

// OneLine renders "name, street, city, state zip, country", skipping blanks.
func (a ShippingAddress) OneLine() string {
	stateZip := strings.TrimSpace(strings.TrimSpace(a.State) + " " + strings.TrimSpace(a.ZipCode))
	parts := make([]string, 0, 5)
	for _, p := range []string{a.Name, a.Street, a.City, stateZip, a.Country} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

type LineItem struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	OrderID   string `gorm:"index;not null;column:order_id" json:"-"`
	Position  int    `gorm:"not null;column:position" json:"-"`
	ProductID string `gorm:"not null;column:product_id" json:"product_id"`
	Quantity  int    `gorm:"not null;column:quantity" json:"quantity"`
}

func (LineItem) TableName() string { return "order_line_item" }

type Order struct {
	ID              string                              `gorm:"primaryKey;column:id" json:"id"`
	UserID          string                              `gorm:"index;not null;column:user_id" json:"user_id"`
	Items           []LineItem                          `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	OrderStatus     OrderStatus                         `gorm:"type:varchar(20);not null;default:'Pending';column:order_status" json:"order_status"`
	PaymentStatus   PaymentStatus                       `gorm:"type:varchar(20);not null;default:'Unpaid';column:payment_status" json:"payment_status"`
	TotalAmount     decimal.Decimal                     `gorm:"type:numeric(12,2);not null;column:total_amount" json:"total_amount"`
	ShippingAddress datatypes.JSONType[ShippingAddress] `gorm:"column:shipping_address" json:"shipping_address"`
	CreatedAt       time.Time                           `gorm:"not null;column:created_at" json:"created_at"`
}

func (Order) TableName() string { return "order" }

// Resolution records how a line item's product lookup ended.
type Resolution string

const (
	ResolutionResolved Resolution = "resolved"
	// ResolutionMissing: the product no longer exists.
	ResolutionMissing Resolution = "missing"
	// ResolutionUnavailable: the lookup failed for another reason.
	ResolutionUnavailable Resolution = "unavailable"
)

// EnrichedItem pairs an ordered quantity with the product as it is now.
// Product is nil when it could not be resolved.
type EnrichedItem struct {
	ProductID  string           `json:"product_id"`
	Product    *catalog.Product `json:"product"`
	Quantity   int              `json:"quantity"`
	Subtotal   *decimal.Decimal `json:"subtotal,omitempty"`
	Resolution Resolution       `json:"resolution"`
}

func (i EnrichedItem) Available() bool { return i.Product != nil }

// EnrichedOrder is an order plus its resolved line items, one per stored item
// in the stored sequence. TotalAmount stays the stored value.
type EnrichedOrder struct {
	*Order
	Products []EnrichedItem `json:"products"`
}

// Unresolved counts items whose product is absent.
func (o *EnrichedOrder) Unresolved() int {
	n := 0
	for _, it := range o.Products {
		if !it.Available() {
			n++
		}
	}
	return n
}

// ResolveItem builds the enriched entry for one line item. p may be nil.
func ResolveItem(item LineItem, p *catalog.Product, resolution Resolution) EnrichedItem {
	out := EnrichedItem{
		ProductID:  item.ProductID,
		Product:    p,
		Quantity:   item.Quantity,
		Resolution: resolution,
	}
	if p == nil {
		if resolution == ResolutionResolved {
			out.Resolution = ResolutionMissing
		}
		return out
	}
	sub := p.Subtotal(item.Quantity)
	out.Subtotal = &sub
	out.Resolution = ResolutionResolved
	return out
}
