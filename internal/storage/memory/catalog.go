// Package memory implements the storage interfaces over the in-process
// fixture dataset. There is no durable store behind it: the catalog is
// immutable after construction and session state lives exactly as long as
// the process.
package memory

import (
	"context"

	"github.com/wearwow/storefront/internal/domain/catalog"
)

var _ catalog.Repository = (*CatalogRepository)(nil)

// CatalogRepository serves the fixed product catalog.
type CatalogRepository struct {
	products   []catalog.Product
	byID       map[string]int
	categories []catalog.Category
	banners    []catalog.Banner
}

// NewCatalogRepository builds a repository over the given fixture slices.
// The slices are retained, not copied; callers must not mutate them.
func NewCatalogRepository(products []catalog.Product, categories []catalog.Category, banners []catalog.Banner) *CatalogRepository {
	byID := make(map[string]int, len(products))
	for i, p := range products {
		byID[p.ID] = i
	}
	return &CatalogRepository{
		products:   products,
		byID:       byID,
		categories: categories,
		banners:    banners,
	}
}

// List returns all products in catalog order.
func (r *CatalogRepository) List(_ context.Context) ([]catalog.Product, error) {
	out := make([]catalog.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

// GetByID returns a single product, or catalog.ErrNotFound.
func (r *CatalogRepository) GetByID(_ context.Context, id string) (*catalog.Product, error) {
	i, ok := r.byID[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	p := r.products[i]
	return &p, nil
}

// Categories returns all categories in fixture order.
func (r *CatalogRepository) Categories(_ context.Context) ([]catalog.Category, error) {
	out := make([]catalog.Category, len(r.categories))
	copy(out, r.categories)
	return out, nil
}

// Banners returns all banners in fixture order.
func (r *CatalogRepository) Banners(_ context.Context) ([]catalog.Banner, error) {
	out := make([]catalog.Banner, len(r.banners))
	copy(out, r.banners)
	return out, nil
}

// Size returns the number of products. Used by the readiness check.
func (r *CatalogRepository) Size() int {
	return len(r.products)
}
