package catalog

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/yungbote/storefront-backend/internal/domain/aggregates"
)

func products(ids ...string) []*Product {
	out := make([]*Product, 0, len(ids))
	for _, id := range ids {
		out = append(out, &Product{ID: id})
	}
	return out
}

func ids(ps []*Product) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func TestRelatedProductsExcludesSubjectAndCaps(t *testing.T) {
	got := RelatedProducts("p1", products("p1", "p2", "p3", "p4", "p5"), DefaultRelatedLimit)
	assert.Equal(t, []string{"p2", "p3", "p4", "p5"}, ids(got))

	got = RelatedProducts("p3", products("p1", "p2", "p3", "p4", "p5", "p6"), DefaultRelatedLimit)
	assert.Equal(t, []string{"p1", "p2", "p4", "p5"}, ids(got))

	got = RelatedProducts("p1", products("p1"), DefaultRelatedLimit)
	assert.Empty(t, got)
}

func TestRelatedProductsIsOrderedSubsequence(t *testing.T) {
	for n := 0; n <= 9; n++ {
		var all []string
		for i := 0; i < n; i++ {
			all = append(all, fmt.Sprintf("p%d", i))
		}
		for _, subject := range append(all, "absent") {
			got := ids(RelatedProducts(subject, products(all...), DefaultRelatedLimit))
			require.LessOrEqual(t, len(got), DefaultRelatedLimit)
			require.NotContains(t, got, subject)

			var expected []string
			for _, id := range all {
				if id != subject {
					expected = append(expected, id)
				}
			}
			if len(expected) > DefaultRelatedLimit {
				expected = expected[:DefaultRelatedLimit]
			}
			if len(expected) == 0 {
				require.Empty(t, got)
				continue
			}
			require.Equal(t, expected, got)
		}
	}
}

func TestSpecificationsKeepOrder(t *testing.T) {
	var specs Specifications
	raw := `{"screenSize":"6.1 inches","weight":174,"batteryLife":"20h","cores":8}`
	require.NoError(t, json.Unmarshal([]byte(raw), &specs))
	require.Len(t, specs, 4)
	assert.Equal(t, "screenSize", specs[0].Name)
	assert.Equal(t, "Screen Size", specs[0].Label())
	assert.Equal(t, "Battery Life", specs[2].Label())
	assert.Equal(t, "174", specs[1].Value.String())

	out, err := json.Marshal(specs)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(out))
	assert.Equal(t, `{"screenSize":"6.1 inches","weight":174,"batteryLife":"20h","cores":8}`, string(out))

	v, ok := specs.Get("cores")
	require.True(t, ok)
	assert.Equal(t, Number(8), v)
}

func TestSpecificationsRejectsOtherKinds(t *testing.T) {
	for _, raw := range []string{
		`{"a":true}`,
		`{"a":null}`,
		`{"a":{"b":1}}`,
		`{"a":[1]}`,
		`["a"]`,
		`{"a":"x","a":"y"}`,
	} {
		var specs Specifications
		assert.Error(t, json.Unmarshal([]byte(raw), &specs), raw)
	}
}

func TestOriginalPrice(t *testing.T) {
	p := &Product{Price: decimal.RequireFromString("80.00"), DiscountPercentage: 20}
	assert.True(t, p.HasDiscount())
	assert.Equal(t, "100", p.OriginalPrice().String())

	p.DiscountPercentage = 0
	assert.False(t, p.HasDiscount())
	assert.True(t, p.OriginalPrice().Equal(p.Price))
}

func TestSubtotal(t *testing.T) {
	p := &Product{Price: decimal.RequireFromString("19.99")}
	assert.Equal(t, "59.97", p.Subtotal(3).StringFixed(2))
}

func TestProductValidate(t *testing.T) {
	valid := &Product{
		ID:     "p1",
		Price:  decimal.NewFromInt(10),
		Stock:  3,
		Images: datatypes.JSONSlice[string]{"https://img/1.png"},
	}
	require.NoError(t, valid.Validate())

	bad := &Product{ID: "p2", Price: decimal.Zero, DiscountPercentage: 120, Stock: -1}
	err := bad.Validate()
	require.Error(t, err)
	assert.True(t, aggregates.IsCode(err, aggregates.CodeValidation))
	assert.Contains(t, err.Error(), "price must be > 0")
	assert.Contains(t, err.Error(), "stock must be >= 0")
}

func TestHasCategory(t *testing.T) {
	empty := ""
	c1 := "c1"
	assert.False(t, (&Product{}).HasCategory())
	assert.False(t, (&Product{CategoryID: &empty}).HasCategory())
	assert.True(t, (&Product{CategoryID: &c1}).HasCategory())
}
