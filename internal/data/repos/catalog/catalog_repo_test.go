package catalog

import (
	"context"
	"testing"

	"github.com/yungbote/storefront-backend/internal/data/repos/testutil"
	domainagg "github.com/yungbote/storefront-backend/internal/domain/aggregates"
	"github.com/yungbote/storefront-backend/internal/domain/catalog"
	"github.com/yungbote/storefront-backend/internal/platform/dbctx"
)

func TestProductRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewProductRepo(db, testutil.Logger(t))

	testutil.SeedCategory(t, ctx, tx, "cat-audio", "audio")
	created, err := repo.Create(dbc, []*catalog.Product{
		testutil.NewProduct("p1", "cat-audio", "19.99", 5),
		testutil.NewProduct("p2", "cat-audio", "5.00", 0),
		testutil.NewProduct("p3", "", "7.50", 2),
	})
	if err != nil || len(created) != 3 {
		t.Fatalf("Create: err=%v len=%d", err, len(created))
	}

	got, err := repo.GetByID(dbc, "p1")
	if err != nil || got == nil {
		t.Fatalf("GetByID: err=%v got=%v", err, got)
	}
	if got.Price.String() != "19.99" {
		t.Fatalf("price round trip: %s", got.Price)
	}
	if v, ok := got.Specifications.Data().Get("weight"); !ok || v.String() != "1.5" {
		t.Fatalf("specifications round trip: %v %v", v, ok)
	}
	if !got.HasCategory() || *got.CategoryID != "cat-audio" {
		t.Fatalf("category id round trip: %v", got.CategoryID)
	}

	if missing, err := repo.GetByID(dbc, "nope"); err != nil || missing != nil {
		t.Fatalf("GetByID(missing): expected nil,nil got %v,%v", missing, err)
	}

	rows, err := repo.ListByCategory(dbc, "cat-audio")
	if err != nil || len(rows) != 2 || rows[0].ID != "p1" || rows[1].ID != "p2" {
		t.Fatalf("ListByCategory: err=%v rows=%v", err, rows)
	}
	rows, err = repo.ListByCategorySlug(dbc, "audio")
	if err != nil || len(rows) != 2 || rows[0].ID != "p1" || rows[1].ID != "p2" {
		t.Fatalf("ListByCategorySlug: err=%v rows=%v", err, rows)
	}
	if rows, err := repo.ListByCategorySlug(dbc, "unknown"); err != nil || len(rows) != 0 {
		t.Fatalf("ListByCategorySlug(unknown): err=%v len=%d", err, len(rows))
	}
	if rows, err := repo.ListAll(dbc); err != nil || len(rows) < 3 {
		t.Fatalf("ListAll: err=%v len=%d", err, len(rows))
	}
}

func TestProductRepoCreateRejectsInvalid(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewProductRepo(db, testutil.Logger(t))

	bad := testutil.NewProduct("bad", "", "0", 1)
	_, err := repo.Create(dbctx.Context{Ctx: context.Background(), Tx: tx}, []*catalog.Product{bad})
	if !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCategoryRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	repo := NewCategoryRepo(db, testutil.Logger(t))

	if _, err := repo.Create(dbc, []*catalog.Category{{ID: "cat-home", Slug: "home", Name: "Home"}}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if c, err := repo.GetByID(dbc, "cat-home"); err != nil || c == nil || c.Slug != "home" {
		t.Fatalf("GetByID: err=%v c=%v", err, c)
	}
	if c, err := repo.GetBySlug(dbc, "home"); err != nil || c == nil || c.ID != "cat-home" {
		t.Fatalf("GetBySlug: err=%v c=%v", err, c)
	}
	if c, err := repo.GetByID(dbc, "cat-none"); err != nil || c != nil {
		t.Fatalf("GetByID(missing): expected nil,nil got %v,%v", c, err)
	}
	if _, err := repo.Create(dbc, []*catalog.Category{{ID: "x"}}); !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if rows, err := repo.List(dbc); err != nil || len(rows) == 0 {
		t.Fatalf("List: err=%v len=%d", err, len(rows))
	}
}
