package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/storefront-backend/internal/clients/redis"
	"github.com/yungbote/storefront-backend/internal/data/repos"
	"github.com/yungbote/storefront-backend/internal/data/repos/testutil"
	"github.com/yungbote/storefront-backend/internal/domain/cart"
	"github.com/yungbote/storefront-backend/internal/domain/orders"
	"github.com/yungbote/storefront-backend/internal/observability"
	"github.com/yungbote/storefront-backend/internal/platform/ctxutil"
	"github.com/yungbote/storefront-backend/internal/platform/logger"
)

func TestCachedProductSource(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb, err := redis.NewClient(context.Background(), mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })
	cache, err := redis.NewProductCache(logger.Nop(), rdb, time.Minute)
	require.NoError(t, err)

	inner := newFakeProducts(product("p1", "c1", "3.00", 2), product("p2", "c1", "3.00", 2))
	metrics := observability.New()
	src := NewCachedProductSource(inner, cache, logger.Nop(), metrics)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		p, err := src.GetProductByID(ctx, "p1")
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, "p1", p.ID)
	}
	assert.Equal(t, 1, inner.callsFor("p1"))
	assert.Equal(t, float64(1), counterValue(t, metrics, `sf_product_cache_total{result="miss"}`))
	assert.Equal(t, float64(2), counterValue(t, metrics, `sf_product_cache_total{result="hit"}`))

	p, err := src.GetProductByID(ctx, "ghost")
	require.NoError(t, err)
	assert.Nil(t, p)

	list, err := src.ListProductsByCategory(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2"}, ids(list))

	// A dead cache degrades to the inner source.
	mr.Close()
	p, err = src.GetProductByID(ctx, "p2")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.GreaterOrEqual(t, counterValue(t, metrics, `sf_product_cache_total{result="error"}`), float64(1))
}

func TestCachedProductSourceWithoutCache(t *testing.T) {
	inner := newFakeProducts()
	assert.Same(t, ProductSource(inner), NewCachedProductSource(inner, nil, logger.Nop(), nil))
}

func TestRepoBackedAggregation(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	log := testutil.Logger(t)

	testutil.SeedCategory(t, ctx, tx, "c-repo", "repo-cat")
	testutil.SeedProduct(t, ctx, tx, "rp1", "c-repo", "10.00", 4)
	testutil.SeedProduct(t, ctx, tx, "rp2", "c-repo", "2.00", 1)
	testutil.SeedOrder(t, ctx, tx, "ro1", "ru1", time.Now().UTC(),
		orders.LineItem{ProductID: "rp2", Quantity: 3},
		orders.LineItem{ProductID: "rp-missing", Quantity: 1},
	)

	productRepo := repos.NewProductRepo(tx, log)
	products := NewRepoProductSource(productRepo)
	detail := NewProductDetailService(log, products, NewRepoCategorySource(repos.NewCategoryRepo(tx, log)), nil, ProductDetailConfig{})
	view, err := detail.LoadProductDetail(ctx, "rp1")
	require.NoError(t, err)
	require.NotNil(t, view.Category)
	assert.Equal(t, "repo-cat", view.Category.Slug)
	assert.Equal(t, []string{"rp2"}, ids(view.Related))

	history := NewOrderHistoryService(log, NewRepoOrderSource(repos.NewOrderRepo(tx, log)), products, nil, OrderHistoryConfig{})
	out, err := history.LoadOrderHistory(ctx, "ru1")
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Len(t, out[0].Products, 2)
	assert.Equal(t, "6", out[0].Products[0].Subtotal.String())
	assert.Equal(t, orders.ResolutionMissing, out[0].Products[1].Resolution)

	sink := NewRepoCartSink(repos.NewCartItemRepo(tx, log), nil, log)
	cartSvc := NewCartService(log, products, sink, nil, 0)
	userCtx := ctxutil.WithRequestData(ctx, &ctxutil.RequestData{UserID: "ru1"})
	res, err := cartSvc.AddToCart(userCtx, "rp1", 2)
	require.NoError(t, err)
	assert.True(t, res.OK)
	res, err = cartSvc.AddToCart(userCtx, "rp1", 2)
	require.NoError(t, err)
	assert.True(t, res.OK)
	var lines []cart.Item
	require.NoError(t, tx.Where("user_id = ?", "ru1").Find(&lines).Error)
	require.Len(t, lines, 1)
	assert.Equal(t, 4, lines[0].Quantity)
}
