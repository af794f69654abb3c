package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderIDSource issues ids for new orders.
type OrderIDSource interface {
	Next() kernel.OrderID
}

// CreateOrderCommandHandler stores a new order in PendingPayment.
// The creation time is the instant embedded in the issued id.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	ids        OrderIDSource
}

func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, ids OrderIDSource) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		ids:        ids,
	}
}

// Handle returns the stored order.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	id := h.ids.Next()
	created, err := order.NewOrder(id, cmd.Address(), cmd.Products(), cmd.Checkout(), id.CreatedAt())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, created); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}
