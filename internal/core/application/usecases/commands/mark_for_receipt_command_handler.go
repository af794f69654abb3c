package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/order"
)

// MarkForReceiptCommandHandler has no side effects beyond the status change.
type MarkForReceiptCommandHandler struct {
	transitioner
}

func NewMarkForReceiptCommandHandler(uowFactory OrderUoWFactory, clock Clock) MarkForReceiptCommandHandler {
	return MarkForReceiptCommandHandler{
		transitioner: transitioner{uowFactory: uowFactory, clock: clock},
	}
}

func (h *MarkForReceiptCommandHandler) Handle(ctx context.Context, cmd MarkForReceiptCommand) (TransitionResult, error) {
	if err := cmd.Validate(); err != nil {
		return TransitionResult{}, err
	}

	marked, now, err := h.apply(ctx, cmd.orderTarget, func(o *order.Order, _ time.Time) error {
		return o.MarkForReceipt()
	})
	if err != nil {
		return TransitionResult{}, err
	}

	if marked == nil {
		return missing(cmd.orderTarget, order.EventMarkForReceipt, now)
	}

	return storedResult(marked, nil), nil
}
