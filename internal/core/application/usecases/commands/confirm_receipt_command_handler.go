package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/order"
)

// ConfirmReceiptCommandHandler completes a Dispatched or PendingReceipt order.
type ConfirmReceiptCommandHandler struct {
	transitioner
}

func NewConfirmReceiptCommandHandler(uowFactory OrderUoWFactory, clock Clock) ConfirmReceiptCommandHandler {
	return ConfirmReceiptCommandHandler{
		transitioner: transitioner{uowFactory: uowFactory, clock: clock},
	}
}

func (h *ConfirmReceiptCommandHandler) Handle(ctx context.Context, cmd ConfirmReceiptCommand) (TransitionResult, error) {
	if err := cmd.Validate(); err != nil {
		return TransitionResult{}, err
	}

	completed, now, err := h.apply(ctx, cmd.orderTarget, func(o *order.Order, now time.Time) error {
		return o.ConfirmReceipt(now)
	})
	if err != nil {
		return TransitionResult{}, err
	}

	if completed == nil {
		return missing(cmd.orderTarget, order.EventConfirmReceipt, now)
	}

	return storedResult(completed, completed.ReceiveTime()), nil
}
