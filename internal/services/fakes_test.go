package services

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/yungbote/storefront-backend/internal/domain/catalog"
	"github.com/yungbote/storefront-backend/internal/domain/orders"
	"github.com/yungbote/storefront-backend/internal/observability"
)

var errDown = errors.New("connection refused")

func product(id, categoryID string, price string, stock int) *catalog.Product {
	p := &catalog.Product{
		ID:     id,
		Title:  "Product " + id,
		Price:  decimal.RequireFromString(price),
		Stock:  stock,
		Images: datatypes.JSONSlice[string]{"https://img.example.com/" + id + ".jpg"},
	}
	if categoryID != "" {
		cid := categoryID
		p.CategoryID = &cid
	}
	return p
}

type fakeProducts struct {
	mu         sync.Mutex
	byID       map[string]*catalog.Product
	byCategory map[string][]*catalog.Product
	errByID    map[string]error
	listErr    error
	calls      map[string]int

	// hooks for concurrency tests
	onGet  func(ctx context.Context, id string) error
	onList func(ctx context.Context) error

	inflight    int32
	maxInflight int32
}

func newFakeProducts(ps ...*catalog.Product) *fakeProducts {
	f := &fakeProducts{
		byID:       map[string]*catalog.Product{},
		byCategory: map[string][]*catalog.Product{},
		errByID:    map[string]error{},
		calls:      map[string]int{},
	}
	for _, p := range ps {
		f.byID[p.ID] = p
		if p.HasCategory() {
			f.byCategory[*p.CategoryID] = append(f.byCategory[*p.CategoryID], p)
		}
	}
	return f
}

func (f *fakeProducts) GetProductByID(ctx context.Context, id string) (*catalog.Product, error) {
	n := atomic.AddInt32(&f.inflight, 1)
	defer atomic.AddInt32(&f.inflight, -1)
	for {
		cur := atomic.LoadInt32(&f.maxInflight)
		if n <= cur || atomic.CompareAndSwapInt32(&f.maxInflight, cur, n) {
			break
		}
	}

	f.mu.Lock()
	f.calls[id]++
	hook := f.onGet
	err := f.errByID[id]
	p := f.byID[id]
	f.mu.Unlock()

	if hook != nil {
		if herr := hook(ctx, id); herr != nil {
			return nil, herr
		}
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (f *fakeProducts) ListProductsByCategory(ctx context.Context, categoryID string) ([]*catalog.Product, error) {
	if f.onList != nil {
		if err := f.onList(ctx); err != nil {
			return nil, err
		}
	}
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*catalog.Product(nil), f.byCategory[categoryID]...), nil
}

func (f *fakeProducts) callsFor(id string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[id]
}

type fakeCategories struct {
	byID  map[string]*catalog.Category
	err   error
	onGet func(ctx context.Context) error
}

func (f *fakeCategories) GetCategoryByID(ctx context.Context, id string) (*catalog.Category, error) {
	if f.onGet != nil {
		if err := f.onGet(ctx); err != nil {
			return nil, err
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.byID[id], nil
}

type fakeOrders struct {
	byUser map[string][]*orders.Order
	err    error
}

func (f *fakeOrders) ListOrdersByUser(ctx context.Context, userID string) ([]*orders.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byUser[userID], nil
}

type addCall struct {
	UserID, ProductID string
	Quantity          int
}

type fakeSink struct {
	mu    sync.Mutex
	calls []addCall
	err   error
}

func (f *fakeSink) AddItem(ctx context.Context, userID, productID string, quantity int) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, addCall{userID, productID, quantity})
	return nil
}

func order(id string, total string, items ...orders.LineItem) *orders.Order {
	return &orders.Order{
		ID:            id,
		UserID:        "u1",
		Items:         items,
		OrderStatus:   orders.OrderStatusShipped,
		PaymentStatus: orders.PaymentStatusPaid,
		TotalAmount:   decimal.RequireFromString(total),
	}
}

func item(productID string, qty int) orders.LineItem {
	return orders.LineItem{ProductID: productID, Quantity: qty}
}

func ids(ps []*catalog.Product) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func pid(i int) string { return fmt.Sprintf("p%d", i) }

func decimalInt(n int) decimal.Decimal { return decimal.NewFromInt(int64(n)) }

// counterValue reads one series from the metrics exposition, e.g.
// `sf_cart_adds_total{mode="add",result="ok"}`. Absent series read as 0.
func counterValue(t *testing.T, m *observability.Metrics, series string) float64 {
	t.Helper()
	var buf bytes.Buffer
	if err := m.WritePrometheus(&buf); err != nil {
		t.Fatalf("WritePrometheus: %v", err)
	}
	sc := bufio.NewScanner(&buf)
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, series+" ") {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimPrefix(line, series+" "), 64)
		if err != nil {
			t.Fatalf("parse %q: %v", line, err)
		}
		return v
	}
	return 0
}
