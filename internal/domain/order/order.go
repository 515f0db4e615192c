// Package order defines the read-only order history shown on the orders
// and order detail screens. Orders come from the fixture; nothing in the
// service creates or mutates them.
package order

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/wearwow/storefront/internal/domain/catalog"
)

// ErrNotFound is returned when a requested order does not exist.
var ErrNotFound = errors.New("order not found")

// Status is the fulfilment stage of an order.
type Status string

const (
	StatusPlaced         Status = "placed"
	StatusShipped        Status = "shipped"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusDelivered      Status = "delivered"
)

// Valid reports whether s is a recognized status.
func (s Status) Valid() bool {
	switch s {
	case StatusPlaced, StatusShipped, StatusOutForDelivery, StatusDelivered:
		return true
	}
	return false
}

// Order is one past purchase.
type Order struct {
	ID     string
	Date   time.Time
	Status Status
	Total  decimal.Decimal
	Items  []Item
}

// Item is one product line within an order.
type Item struct {
	Product  catalog.Product
	Quantity int
}

// Repository defines read operations over the order history.
type Repository interface {
	List(ctx context.Context) ([]Order, error)
	GetByID(ctx context.Context, id string) (*Order, error)
}
