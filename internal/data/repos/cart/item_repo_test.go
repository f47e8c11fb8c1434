package cart

import (
	"context"
	"testing"

	"github.com/yungbote/storefront-backend/internal/data/repos/testutil"
	domainagg "github.com/yungbote/storefront-backend/internal/domain/aggregates"
	"github.com/yungbote/storefront-backend/internal/domain/cart"
	"github.com/yungbote/storefront-backend/internal/platform/dbctx"
)

func TestCartItemRepoAddMerges(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	repo := NewCartItemRepo(db, testutil.Logger(t))

	first, err := repo.AddItem(dbc, "u1", "p1", 2)
	if err != nil || first.Quantity != 2 {
		t.Fatalf("AddItem: err=%v item=%v", err, first)
	}
	second, err := repo.AddItem(dbc, "u1", "p1", 3)
	if err != nil || second.Quantity != 5 {
		t.Fatalf("AddItem(merge): err=%v item=%v", err, second)
	}
	if second.ID != first.ID {
		t.Fatalf("expected merged line to keep id %s, got %s", first.ID, second.ID)
	}
	if _, err := repo.AddItem(dbc, "u1", "p2", 1); err != nil {
		t.Fatalf("AddItem(p2): %v", err)
	}

	var lines int64
	if err := tx.Model(&cart.Item{}).Where("user_id = ?", "u1").Count(&lines).Error; err != nil || lines != 2 {
		t.Fatalf("expected 2 cart lines for u1: err=%v lines=%d", err, lines)
	}
}

func TestCartItemRepoAddValidates(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	repo := NewCartItemRepo(db, testutil.Logger(t))

	for _, tc := range []struct {
		user, product string
		qty           int
	}{
		{"", "p1", 1},
		{"u1", "", 1},
		{"u1", "p1", 0},
	} {
		if _, err := repo.AddItem(dbc, tc.user, tc.product, tc.qty); !domainagg.IsCode(err, domainagg.CodeValidation) {
			t.Fatalf("AddItem(%q,%q,%d): expected validation error, got %v", tc.user, tc.product, tc.qty, err)
		}
	}
}
