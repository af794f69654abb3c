// Package commands contains the operations that change order state.
// Every command follows the same pattern: validation, a unit of work around
// the store, then side effects (timers, notifications) after commit.
package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/ports"
)

type (
	// TxManager handles the transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// OrderUoW manages transactions for order operations.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   repo := uow.OrderRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// OrderUoWFactoryFunc adapts a function to OrderUoWFactory.
	OrderUoWFactoryFunc func() OrderUoW

	// Clock supplies the instant stamped on transitions.
	Clock func() time.Time
)

func (f OrderUoWFactoryFunc) Create() OrderUoW {
	return f()
}

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}
