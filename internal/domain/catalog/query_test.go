package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

// testCatalog mirrors the shape of the shipped fixture: one product per
// interesting corner (sale, new, trending, single-size accessories).
func testCatalog() []Product {
	return []Product{
		{ID: "p1", Name: "Floral Summer Dress", Price: d("49.99"), OriginalPrice: d("79.99"),
			Category: "women", Sizes: []string{"XS", "S", "M", "L", "XL"},
			Colors: []string{"#FF69B4", "#87CEEB", "#FFB6C1"}, Rating: d("4.8"), IsNew: true},
		{ID: "p2", Name: "Classic Denim Jacket", Price: d("89.99"),
			Category: "women", Sizes: []string{"S", "M", "L", "XL"},
			Colors: []string{"#4169E1", "#000080"}, Rating: d("4.6"), IsTrending: true},
		{ID: "p3", Name: "Urban Sneakers", Price: d("129.99"), OriginalPrice: d("159.99"),
			Category: "shoes", Sizes: []string{"36", "37", "38", "39", "40", "41", "42"},
			Colors: []string{"#FFFFFF", "#000000", "#FF69B4"}, Rating: d("4.9"), IsTrending: true},
		{ID: "p4", Name: "Graphic Tee - Vibe", Price: d("29.99"),
			Category: "men", Sizes: []string{"S", "M", "L", "XL", "XXL"},
			Colors: []string{"#FFFFFF", "#000000", "#FFD700"}, Rating: d("4.5"), IsNew: true},
		{ID: "p5", Name: "Crossbody Bag", Price: d("59.99"),
			Category: "accessories", Sizes: []string{"One Size"},
			Colors: []string{"#A855F7", "#EC4899", "#000000"}, Rating: d("4.7")},
		{ID: "p6", Name: "Slim Fit Chinos", Price: d("69.99"),
			Category: "men", Sizes: []string{"28", "30", "32", "34", "36"},
			Colors: []string{"#D2B48C", "#2F4F4F", "#000000"}, Rating: d("4.4")},
		{ID: "p7", Name: "Kids Rainbow Hoodie", Price: d("39.99"), OriginalPrice: d("54.99"),
			Category: "kids", Sizes: []string{"4-5Y", "6-7Y", "8-9Y", "10-11Y"},
			Colors: []string{"#FF69B4", "#87CEEB", "#98FB98"}, Rating: d("4.9"), IsNew: true},
		{ID: "p8", Name: "Statement Sunglasses", Price: d("45.99"),
			Category: "accessories", Sizes: []string{"One Size"},
			Colors: []string{"#000000", "#8B4513", "#FF69B4"}, Rating: d("4.6"), IsTrending: true},
	}
}

func ids(ps []Product) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

func TestQuery_NoFilterReturnsAll(t *testing.T) {
	got := Query(testCatalog(), DefaultFilter())
	assert.Len(t, got, 8)
}

func TestQuery_CategoryFilter(t *testing.T) {
	f := DefaultFilter()
	f.CategoryID = "shoes"

	got := Query(testCatalog(), f)
	require.Len(t, got, 1)
	assert.Equal(t, "p3", got[0].ID)
	assert.True(t, d("129.99").Equal(got[0].Price))
}

func TestQuery_PriceRangeExcludes(t *testing.T) {
	f := DefaultFilter()
	f.PriceMax = d("50")

	got := Query(testCatalog(), f)
	assert.NotContains(t, ids(got), "p3")
	for _, p := range got {
		assert.True(t, p.Price.LessThanOrEqual(d("50")))
	}
}

func TestQuery_PriceRangeInclusiveBounds(t *testing.T) {
	f := DefaultFilter()
	f.PriceMin = d("49.99")
	f.PriceMax = d("49.99")

	got := Query(testCatalog(), f)
	require.Len(t, got, 1)
	assert.Equal(t, "p1", got[0].ID)
}

func TestQuery_SizeIntersection(t *testing.T) {
	f := DefaultFilter()
	f.Sizes = []string{"XXL"}

	got := Query(testCatalog(), f)
	require.Len(t, got, 1)
	assert.Equal(t, "p4", got[0].ID)
}

func TestQuery_ColorIntersection(t *testing.T) {
	f := DefaultFilter()
	f.Colors = []string{"#FFD700", "#8B4513"}

	got := Query(testCatalog(), f)
	assert.ElementsMatch(t, []string{"p4", "p8"}, ids(got))
}

func TestQuery_PredicatesCombineWithAnd(t *testing.T) {
	f := DefaultFilter()
	f.CategoryID = "men"
	f.PriceMax = d("50")
	f.Colors = []string{"#000000"}

	got := Query(testCatalog(), f)
	require.Len(t, got, 1)
	assert.Equal(t, "p4", got[0].ID)
}

func TestQuery_SortPopular(t *testing.T) {
	got := Query(testCatalog(), DefaultFilter())

	// 4.9 before 4.4, ties keep catalog order (p3 before p7).
	assert.Equal(t, []string{"p3", "p7", "p1", "p5", "p2", "p8", "p4", "p6"}, ids(got))
}

func TestQuery_SortNewestIsStablePartition(t *testing.T) {
	f := DefaultFilter()
	f.SortBy = SortNewest

	got := Query(testCatalog(), f)
	// New arrivals first in catalog order, then the rest in catalog order.
	assert.Equal(t, []string{"p1", "p4", "p7", "p2", "p3", "p5", "p6", "p8"}, ids(got))
}

func TestQuery_SortPriceLow(t *testing.T) {
	f := DefaultFilter()
	f.SortBy = SortPriceLow

	got := Query(testCatalog(), f)
	for i := 1; i < len(got); i++ {
		assert.True(t, got[i-1].Price.LessThanOrEqual(got[i].Price),
			"position %d: %s > %s", i, got[i-1].Price, got[i].Price)
	}
}

func TestQuery_SortPriceHigh(t *testing.T) {
	f := DefaultFilter()
	f.SortBy = SortPriceHigh

	got := Query(testCatalog(), f)
	for i := 1; i < len(got); i++ {
		assert.True(t, got[i-1].Price.GreaterThanOrEqual(got[i].Price))
	}
}

func TestQuery_Deterministic(t *testing.T) {
	products := testCatalog()
	for _, key := range []SortKey{SortPopular, SortNewest, SortPriceLow, SortPriceHigh} {
		f := DefaultFilter()
		f.SortBy = key
		first := Query(products, f)
		second := Query(products, f)
		assert.Equal(t, ids(first), ids(second), "sort %s", key)
	}
}

func TestQuery_DoesNotMutateInput(t *testing.T) {
	products := testCatalog()
	want := ids(products)

	f := DefaultFilter()
	f.SortBy = SortPriceHigh
	Query(products, f)

	assert.Equal(t, want, ids(products))
}

func TestFilter_ActiveCount(t *testing.T) {
	f := DefaultFilter()
	assert.Equal(t, 0, f.ActiveCount())

	f.Sizes = []string{"S", "M"}
	f.Colors = []string{"#000000"}
	assert.Equal(t, 3, f.ActiveCount())

	f.PriceMax = d("150")
	assert.Equal(t, 4, f.ActiveCount())

	f = DefaultFilter()
	f.PriceMin = d("10")
	assert.Equal(t, 1, f.ActiveCount())
}

func TestSortKey_Valid(t *testing.T) {
	assert.True(t, SortPopular.Valid())
	assert.True(t, SortNewest.Valid())
	assert.False(t, SortKey("rating").Valid())
}

func TestFeeds(t *testing.T) {
	products := testCatalog()

	assert.ElementsMatch(t, []string{"p1", "p2", "p3", "p4", "p7", "p8"}, ids(Featured(products)))
	assert.ElementsMatch(t, []string{"p1", "p3", "p7"}, ids(OnSale(products)))
	assert.ElementsMatch(t, []string{"p1", "p4", "p7"}, ids(NewArrivals(products)))
}
