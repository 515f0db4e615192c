package catalog

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested catalog entity does not exist.
var ErrNotFound = errors.New("not found in catalog")

// Product represents a catalog item available for purchase. Products are
// immutable for the lifetime of the process; they come from the embedded
// fixture and are shared by reference, never copied per session.
type Product struct {
	ID            string
	Name          string
	Price         decimal.Decimal
	OriginalPrice decimal.Decimal
	Image         string
	Category      string
	Subcategory   string
	Colors        []string
	Sizes         []string
	Rating        decimal.Decimal
	Reviews       int
	IsNew         bool
	IsTrending    bool
	Description   string
}

// OnSale reports whether the product carries a crossed-out original price.
func (p Product) OnSale() bool {
	return p.OriginalPrice.IsPositive()
}

// HasSize reports whether size is one of the product's available sizes.
func (p Product) HasSize(size string) bool {
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}

// HasColor reports whether color is one of the product's available colors.
func (p Product) HasColor(color string) bool {
	for _, c := range p.Colors {
		if c == color {
			return true
		}
	}
	return false
}

// Category groups products for navigation.
type Category struct {
	ID            string
	Name          string
	Icon          string
	Image         string
	Subcategories []string
}

// Banner is a promotional slide shown on the home screen carousel.
type Banner struct {
	ID       string
	Title    string
	Subtitle string
	Image    string
	Gradient string
	CTA      string
}

// Repository defines read operations over the catalog.
type Repository interface {
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	Categories(ctx context.Context) ([]Category, error)
	Banners(ctx context.Context) ([]Banner, error)
}
