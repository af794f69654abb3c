// Package ports defines the contracts between the order lifecycle core and its
// infrastructure: persistence, timers and notifications.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderFilter narrows a list of orders. A nil Status matches every order.
type OrderFilter struct {
	Status *order.Status
}

// Matches reports whether the order passes the filter.
func (f OrderFilter) Matches(o *order.Order) bool {
	return f.Status == nil || o.Status() == *f.Status
}

// OrderRepository defines the persistence contract for order aggregates.
// Implementations keep orders in insertion order and hold at most one order per id.
type OrderRepository interface {
	// Add persists a new order aggregate.
	// The order must be valid and its id must not already be stored.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// Returns errs.ObjectNotFoundError if the order is not stored.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by id.
	// Returns errs.ObjectNotFoundError if the order is not stored.
	Get(ctx context.Context, id kernel.OrderID) (*order.Order, error)

	// Delete removes an order.
	// Returns errs.ObjectNotFoundError if the order is not stored.
	Delete(ctx context.Context, id kernel.OrderID) error

	// List returns the orders passing the filter in insertion order.
	List(ctx context.Context, filter OrderFilter) ([]*order.Order, error)
}

// OrderReader serves queries from a read-consistent view of the store.
// It never observes a write that a unit of work has not committed.
type OrderReader interface {
	Get(ctx context.Context, id kernel.OrderID) (*order.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]*order.Order, error)

	// CountByStatus returns the number of stored orders per status.
	// Every status is present in the result, zero counts included.
	CountByStatus(ctx context.Context) (map[order.Status]int, error)
}
