package seed

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/storefront-backend/internal/data/repos"
	"github.com/yungbote/storefront-backend/internal/domain/catalog"
	"github.com/yungbote/storefront-backend/internal/domain/orders"
	"github.com/yungbote/storefront-backend/internal/platform/dbctx"
	"github.com/yungbote/storefront-backend/internal/platform/logger"
)

//go:embed fixtures/storefront.yaml
var defaultFixture []byte

type File struct {
	Categories []Category `yaml:"categories"`
	Products   []Product  `yaml:"products"`
	Orders     []Order    `yaml:"orders"`
}

type Category struct {
	ID   string `yaml:"id"`
	Slug string `yaml:"slug"`
	Name string `yaml:"name"`
}

type Product struct {
	ID                 string    `yaml:"id"`
	Title              string    `yaml:"title"`
	Description        string    `yaml:"description"`
	Brand              string    `yaml:"brand"`
	Price              string    `yaml:"price"`
	DiscountPercentage float64   `yaml:"discount_percentage"`
	Rating             float64   `yaml:"rating"`
	Stock              int       `yaml:"stock"`
	Images             []string  `yaml:"images"`
	Thumbnail          string    `yaml:"thumbnail"`
	Specifications     yaml.Node `yaml:"specifications"`
	Features           []string  `yaml:"features"`
	CategoryID         string    `yaml:"category_id"`
}

type Order struct {
	ID              string                 `yaml:"id"`
	UserID          string                 `yaml:"user_id"`
	Status          string                 `yaml:"status"`
	PaymentStatus   string                 `yaml:"payment_status"`
	TotalAmount     string                 `yaml:"total_amount"`
	CreatedAt       time.Time              `yaml:"created_at"`
	ShippingAddress orders.ShippingAddress `yaml:"shipping_address"`
	Items           []OrderItem            `yaml:"items"`
}

type OrderItem struct {
	ProductID string `yaml:"product_id"`
	Quantity  int    `yaml:"quantity"`
}

// Summary counts rows written and rows skipped because they already existed.
type Summary struct {
	Categories int
	Products   int
	Orders     int
	Skipped    int
}

func Decode(r io.Reader) (*File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	return &f, nil
}

// Load reads path, or the bundled storefront fixture when path is empty.
func Load(path string) (*File, error) {
	if strings.TrimSpace(path) == "" {
		return Decode(bytes.NewReader(defaultFixture))
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer fh.Close()
	return Decode(fh)
}

type Seeder struct {
	db         *gorm.DB
	log        *logger.Logger
	categories repos.CategoryRepo
	products   repos.ProductRepo
	orders     repos.OrderRepo
}

func NewSeeder(db *gorm.DB, baseLog *logger.Logger) *Seeder {
	return &Seeder{
		db:         db,
		log:        baseLog.With("service", "Seeder"),
		categories: repos.NewCategoryRepo(db, baseLog),
		products:   repos.NewProductRepo(db, baseLog),
		orders:     repos.NewOrderRepo(db, baseLog),
	}
}

// Apply writes f in one transaction. Records whose id already exists are left
// untouched, so re-running a fixture is a no-op.
func (s *Seeder) Apply(ctx context.Context, f *File) (Summary, error) {
	var sum Summary
	if f == nil {
		return sum, nil
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		for _, c := range f.Categories {
			existing, err := s.categories.GetByID(dbc, c.ID)
			if err != nil {
				return err
			}
			if existing != nil {
				sum.Skipped++
				continue
			}
			if _, err := s.categories.Create(dbc, []*catalog.Category{{ID: c.ID, Slug: c.Slug, Name: c.Name}}); err != nil {
				return err
			}
			sum.Categories++
		}

		for _, p := range f.Products {
			existing, err := s.products.GetByID(dbc, p.ID)
			if err != nil {
				return err
			}
			if existing != nil {
				sum.Skipped++
				continue
			}
			row, err := p.toDomain()
			if err != nil {
				return err
			}
			if _, err := s.products.Create(dbc, []*catalog.Product{row}); err != nil {
				return err
			}
			sum.Products++
		}

		for _, o := range f.Orders {
			existing, err := s.orders.GetByID(dbc, o.ID)
			if err != nil {
				return err
			}
			if existing != nil {
				sum.Skipped++
				continue
			}
			row, err := o.toDomain()
			if err != nil {
				return err
			}
			if _, err := s.orders.Create(dbc, []*orders.Order{row}); err != nil {
				return err
			}
			sum.Orders++
		}
		return nil
	})
	if err != nil {
		s.log.Error("seed failed", "error", err)
		return Summary{}, err
	}
	s.log.Info("seed applied",
		"categories", sum.Categories,
		"products", sum.Products,
		"orders", sum.Orders,
		"skipped", sum.Skipped,
	)
	return sum, nil
}

func (p Product) toDomain() (*catalog.Product, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(p.Price))
	if err != nil {
		return nil, fmt.Errorf("product %q: price: %w", p.ID, err)
	}
	specs, err := decodeSpecifications(&p.Specifications)
	if err != nil {
		return nil, fmt.Errorf("product %q: %w", p.ID, err)
	}
	out := &catalog.Product{
		ID:                 p.ID,
		Title:              p.Title,
		Description:        p.Description,
		Brand:              p.Brand,
		Price:              price,
		DiscountPercentage: p.DiscountPercentage,
		Rating:             p.Rating,
		Stock:              p.Stock,
		Images:             datatypes.JSONSlice[string](p.Images),
		Thumbnail:          p.Thumbnail,
		Specifications:     datatypes.NewJSONType(specs),
		Features:           datatypes.JSONSlice[string](p.Features),
	}
	if cid := strings.TrimSpace(p.CategoryID); cid != "" {
		out.CategoryID = &cid
	}
	return out, nil
}

// decodeSpecifications keeps the mapping order of the fixture. Values must be
// strings or numbers.
func decodeSpecifications(n *yaml.Node) (catalog.Specifications, error) {
	if n == nil || n.Kind == 0 {
		return catalog.Specifications{}, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("specifications: line %d: expected a mapping", n.Line)
	}
	out := make(catalog.Specifications, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		if val.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("specifications.%s: line %d: expected a string or number", key.Value, val.Line)
		}
		switch val.ShortTag() {
		case "!!int", "!!float":
			f, err := strconv.ParseFloat(val.Value, 64)
			if err != nil {
				return nil, fmt.Errorf("specifications.%s: %w", key.Value, err)
			}
			out = append(out, catalog.Spec{Name: key.Value, Value: catalog.Number(f)})
		case "!!str":
			out = append(out, catalog.Spec{Name: key.Value, Value: catalog.Text(val.Value)})
		default:
			return nil, fmt.Errorf("specifications.%s: line %d: unsupported value %s", key.Value, val.Line, val.ShortTag())
		}
	}
	return out, nil
}

func (o Order) toDomain() (*orders.Order, error) {
	total, err := decimal.NewFromString(strings.TrimSpace(o.TotalAmount))
	if err != nil {
		return nil, fmt.Errorf("order %q: total_amount: %w", o.ID, err)
	}
	items := make([]orders.LineItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, orders.LineItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return &orders.Order{
		ID:              o.ID,
		UserID:          o.UserID,
		Items:           items,
		OrderStatus:     orders.OrderStatus(o.Status),
		PaymentStatus:   orders.PaymentStatus(o.PaymentStatus),
		TotalAmount:     total,
		ShippingAddress: datatypes.NewJSONType(o.ShippingAddress),
		CreatedAt:       o.CreatedAt,
	}, nil
}
