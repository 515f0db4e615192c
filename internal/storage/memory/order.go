package memory

import (
	"context"

	"github.com/wearwow/storefront/internal/domain/order"
)

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository serves the fixed order history.
type OrderRepository struct {
	orders []order.Order
	byID   map[string]int
}

// NewOrderRepository builds a repository over the given fixture orders.
func NewOrderRepository(orders []order.Order) *OrderRepository {
	byID := make(map[string]int, len(orders))
	for i, o := range orders {
		byID[o.ID] = i
	}
	return &OrderRepository{orders: orders, byID: byID}
}

// List returns all orders in fixture order.
func (r *OrderRepository) List(_ context.Context) ([]order.Order, error) {
	out := make([]order.Order, len(r.orders))
	copy(out, r.orders)
	return out, nil
}

// GetByID returns a single order, or order.ErrNotFound.
func (r *OrderRepository) GetByID(_ context.Context, id string) (*order.Order, error) {
	i, ok := r.byID[id]
	if !ok {
		return nil, order.ErrNotFound
	}
	o := r.orders[i]
	return &o, nil
}
