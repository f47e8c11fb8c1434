package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/storefront-backend/internal/data/repos"
	"github.com/yungbote/storefront-backend/internal/data/repos/testutil"
	"github.com/yungbote/storefront-backend/internal/domain/aggregates"
	"github.com/yungbote/storefront-backend/internal/platform/logger"
)

func TestCatalogServiceListProducts(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.DB(t))
	testutil.SeedCategory(t, ctx, tx, "cat-a", "cameras")
	testutil.SeedCategory(t, ctx, tx, "cat-b", "lenses")
	testutil.SeedCategory(t, ctx, tx, "cat-c", "tripods")
	testutil.SeedProduct(t, ctx, tx, "cam-1", "cat-a", "499.00", 4)
	testutil.SeedProduct(t, ctx, tx, "lens-1", "cat-b", "199.00", 1)

	svc := NewCatalogService(logger.Nop(), repos.NewProductRepo(tx, logger.Nop()), repos.NewCategoryRepo(tx, logger.Nop()))

	list, err := svc.ListProducts(ctx, " cameras ")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "cam-1", list[0].ID)

	all, err := svc.ListProducts(ctx, "")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(all), 2)

	empty, err := svc.ListProducts(ctx, "tripods")
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = svc.ListProducts(ctx, "flashes")
	require.Error(t, err)
	assert.True(t, aggregates.IsCode(err, aggregates.CodeNotFound))

	cats, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(cats), 2)
}
