package catalog

import (
	"sort"

	"github.com/shopspring/decimal"
)

// SortKey selects the ordering applied to query results.
type SortKey string

const (
	// SortPopular orders by rating, highest first.
	SortPopular SortKey = "popular"
	// SortNewest places new arrivals before everything else, keeping the
	// original relative order within each group.
	SortNewest SortKey = "newest"
	// SortPriceLow orders by price, cheapest first.
	SortPriceLow SortKey = "price_low"
	// SortPriceHigh orders by price, most expensive first.
	SortPriceHigh SortKey = "price_high"
)

// Valid reports whether k is one of the recognized sort keys.
func (k SortKey) Valid() bool {
	switch k {
	case SortPopular, SortNewest, SortPriceLow, SortPriceHigh:
		return true
	}
	return false
}

// DefaultPriceCeiling is the upper bound of the default price range.
var DefaultPriceCeiling = decimal.NewFromInt(200)

// Filter is the full set of catalog query parameters. Zero-valued or
// defaulted constraints are vacuously true; a product must pass every
// active constraint to appear in the result.
type Filter struct {
	// CategoryID keeps only products of one category when non-empty.
	CategoryID string
	// PriceMin and PriceMax bound the price range, inclusive.
	PriceMin decimal.Decimal
	PriceMax decimal.Decimal
	// Sizes keeps products whose sizes intersect it. Empty means no filter.
	Sizes []string
	// Colors keeps products whose colors intersect it. Empty means no filter.
	Colors []string
	SortBy SortKey
}

// DefaultFilter returns the filter the UI starts from: price range
// [0, 200], no size or color selection, sorted by popularity.
func DefaultFilter() Filter {
	return Filter{
		PriceMin: decimal.Zero,
		PriceMax: DefaultPriceCeiling,
		SortBy:   SortPopular,
	}
}

// ActiveCount is the number of filters the user has engaged beyond the
// defaults: one for a narrowed price range plus one per selected size and
// color. Used for the filter badge on the category screen.
func (f Filter) ActiveCount() int {
	n := len(f.Sizes) + len(f.Colors)
	if f.PriceMin.IsPositive() || f.PriceMax.LessThan(DefaultPriceCeiling) {
		n++
	}
	return n
}

// matches reports whether p passes every active constraint of f.
func (f Filter) matches(p Product) bool {
	if f.CategoryID != "" && p.Category != f.CategoryID {
		return false
	}
	if p.Price.LessThan(f.PriceMin) || p.Price.GreaterThan(f.PriceMax) {
		return false
	}
	if len(f.Sizes) > 0 && !intersects(p.Sizes, f.Sizes) {
		return false
	}
	if len(f.Colors) > 0 && !intersects(p.Colors, f.Colors) {
		return false
	}
	return true
}

func intersects(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

// Query returns the products passing f, ordered by f.SortBy. The input
// slice is never mutated; the result is a fresh slice sharing the product
// values. Output is deterministic for identical inputs: every sort is
// stable, so ties keep the catalog's original order.
func Query(products []Product, f Filter) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if f.matches(p) {
			out = append(out, p)
		}
	}

	switch f.SortBy {
	case SortNewest:
		// Stable partition: new arrivals first, original order preserved
		// within each partition.
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].IsNew && !out[j].IsNew
		})
	case SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Price.LessThan(out[j].Price)
		})
	case SortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Price.GreaterThan(out[j].Price)
		})
	default: // SortPopular
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Rating.GreaterThan(out[j].Rating)
		})
	}
	return out
}

// Featured returns the home screen's featured feed: trending or new products.
func Featured(products []Product) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if p.IsTrending || p.IsNew {
			out = append(out, p)
		}
	}
	return out
}

// OnSale returns products with a crossed-out original price.
func OnSale(products []Product) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if p.OnSale() {
			out = append(out, p)
		}
	}
	return out
}

// NewArrivals returns products flagged as new.
func NewArrivals(products []Product) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if p.IsNew {
			out = append(out, p)
		}
	}
	return out
}
