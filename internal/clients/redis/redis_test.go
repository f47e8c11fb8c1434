package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/yungbote/storefront-backend/internal/domain/catalog"
	"github.com/yungbote/storefront-backend/internal/platform/logger"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb, err := NewClient(context.Background(), mr.Addr())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestProductCacheRoundTrip(t *testing.T) {
	mr, rdb := newTestClient(t)
	ctx := context.Background()

	cache, err := NewProductCache(logger.Nop(), rdb, time.Minute)
	if err != nil {
		t.Fatalf("NewProductCache: %v", err)
	}

	if p, err := cache.Get(ctx, "p1"); err != nil || p != nil {
		t.Fatalf("expected miss, got %v %v", p, err)
	}

	in := &catalog.Product{ID: "p1", Title: "Lamp", Price: decimal.RequireFromString("12.50"), Stock: 3}
	if err := cache.Set(ctx, in); err != nil {
		t.Fatalf("Set: %v", err)
	}
	out, err := cache.Get(ctx, "p1")
	if err != nil || out == nil {
		t.Fatalf("Get: %v %v", out, err)
	}
	if out.Title != "Lamp" || !out.Price.Equal(in.Price) || out.Stock != 3 {
		t.Fatalf("unexpected cached product: %+v", out)
	}

	mr.FastForward(2 * time.Minute)
	if p, _ := cache.Get(ctx, "p1"); p != nil {
		t.Fatalf("expected entry to expire")
	}

	_ = cache.Set(ctx, in)
	if err := cache.Invalidate(ctx, "p1"); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if p, _ := cache.Get(ctx, "p1"); p != nil {
		t.Fatalf("expected entry to be invalidated")
	}
}

func TestProductCacheDropsCorruptEntries(t *testing.T) {
	mr, rdb := newTestClient(t)
	cache, _ := NewProductCache(logger.Nop(), rdb, time.Minute)

	if err := mr.Set(defaultProductKeyPrefix+"p1", "{not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if p, err := cache.Get(context.Background(), "p1"); err != nil || p != nil {
		t.Fatalf("expected corrupt entry to read as miss, got %v %v", p, err)
	}
	if mr.Exists(defaultProductKeyPrefix + "p1") {
		t.Fatalf("expected corrupt entry to be deleted")
	}
}

func TestCartEventBusForwards(t *testing.T) {
	_, rdb := newTestClient(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus, err := NewCartEventBus(logger.Nop(), rdb, "")
	if err != nil {
		t.Fatalf("NewCartEventBus: %v", err)
	}
	got := make(chan CartEvent, 1)
	if err := bus.StartForwarder(ctx, func(ev CartEvent) { got <- ev }); err != nil {
		t.Fatalf("StartForwarder: %v", err)
	}
	if err := bus.Publish(ctx, CartEvent{Type: "item_added", UserID: "u1", ProductID: "p1", Quantity: 2}); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	select {
	case ev := <-got:
		if ev.UserID != "u1" || ev.ProductID != "p1" || ev.Quantity != 2 || ev.At.IsZero() {
			t.Fatalf("unexpected event: %+v", ev)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for cart event")
	}
}
