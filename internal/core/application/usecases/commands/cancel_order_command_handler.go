package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// CancelOrderResult reports which order was cancelled and whether it existed.
type CancelOrderResult struct {
	OrderID    string
	Provenance order.Provenance
}

// CancelOrderCommandHandler removes an order from the store and revokes its timers.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	timers     ports.OrderTimers
}

func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory, timers ports.OrderTimers) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		timers:     timers,
	}
}

// Handle deletes the order. Timers are revoked after the delete is committed;
// one that fires in between finds no order and does nothing.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (CancelOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return CancelOrderResult{}, err
	}

	id, err := kernel.ParseOrderID(cmd.OrderID())
	if err != nil {
		return h.missing(cmd)
	}

	deleted, err := h.delete(ctx, id)
	if err != nil {
		return CancelOrderResult{}, err
	}

	h.timers.Revoke(id)

	if !deleted {
		return h.missing(cmd)
	}

	return CancelOrderResult{
		OrderID:    id.String(),
		Provenance: order.ProvenanceStore,
	}, nil
}

func (h *CancelOrderCommandHandler) delete(ctx context.Context, id kernel.OrderID) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	err := uow.OrderRepository().Delete(ctx, id)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func (h *CancelOrderCommandHandler) missing(cmd CancelOrderCommand) (CancelOrderResult, error) {
	if cmd.IsStrict() {
		return CancelOrderResult{}, errs.NewObjectNotFoundError("order", cmd.OrderID())
	}
	return CancelOrderResult{
		OrderID:    cmd.OrderID(),
		Provenance: order.ProvenanceSynthesized,
	}, nil
}
