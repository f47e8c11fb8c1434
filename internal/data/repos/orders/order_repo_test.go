package orders

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yungbote/storefront-backend/internal/data/repos/testutil"
	domainagg "github.com/yungbote/storefront-backend/internal/domain/aggregates"
	"github.com/yungbote/storefront-backend/internal/domain/orders"
	"github.com/yungbote/storefront-backend/internal/platform/dbctx"
)

func TestOrderRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewOrderRepo(db, testutil.Logger(t))

	older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := older.Add(48 * time.Hour)

	_, err := repo.Create(dbc, []*orders.Order{
		{
			ID:          "o-old",
			UserID:      "u1",
			TotalAmount: decimal.RequireFromString("30.00"),
			CreatedAt:   older,
			Items: []orders.LineItem{
				{ProductID: "p3", Quantity: 1},
				{ProductID: "p1", Quantity: 2},
				{ProductID: "p2", Quantity: 3},
			},
		},
		{
			UserID:      "u1",
			TotalAmount: decimal.RequireFromString("5.00"),
			CreatedAt:   newer,
			Items:       []orders.LineItem{{ProductID: "p1", Quantity: 1}},
		},
		{UserID: "u2", TotalAmount: decimal.RequireFromString("1.00"), Items: []orders.LineItem{{ProductID: "p9", Quantity: 1}}},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	rows, err := repo.ListByUser(dbc, "u1")
	if err != nil || len(rows) != 2 {
		t.Fatalf("ListByUser: err=%v len=%d", err, len(rows))
	}
	if rows[1].ID != "o-old" {
		t.Fatalf("expected newest first, got %s then %s", rows[0].ID, rows[1].ID)
	}
	if rows[0].OrderStatus != orders.OrderStatusPending || rows[0].PaymentStatus != orders.PaymentStatusUnpaid {
		t.Fatalf("expected default statuses, got %s/%s", rows[0].OrderStatus, rows[0].PaymentStatus)
	}

	items := rows[1].Items
	if len(items) != 3 || items[0].ProductID != "p3" || items[1].ProductID != "p1" || items[2].ProductID != "p2" {
		t.Fatalf("line items out of placement order: %+v", items)
	}

	if rows, err := repo.ListByUser(dbc, "nobody"); err != nil || len(rows) != 0 {
		t.Fatalf("ListByUser(empty): err=%v len=%d", err, len(rows))
	}

	got, err := repo.GetByID(dbc, "o-old")
	if err != nil || got == nil || len(got.Items) != 3 {
		t.Fatalf("GetByID: err=%v got=%v", err, got)
	}
	if missing, err := repo.GetByID(dbc, "o-none"); err != nil || missing != nil {
		t.Fatalf("GetByID(missing): expected nil,nil got %v,%v", missing, err)
	}
}

func TestOrderRepoCreateValidates(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	repo := NewOrderRepo(db, testutil.Logger(t))

	_, err := repo.Create(dbc, []*orders.Order{{UserID: "u1", Items: []orders.LineItem{{ProductID: "p1", Quantity: 0}}}})
	if !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	_, err = repo.Create(dbc, []*orders.Order{{}})
	if !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
