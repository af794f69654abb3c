package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// PayOrderCommandHandler moves an order from PendingPayment to PendingDispatch
// and arms its automatic dispatch.
type PayOrderCommandHandler struct {
	transitioner
	timers ports.OrderTimers
}

func NewPayOrderCommandHandler(
	uowFactory OrderUoWFactory,
	timers ports.OrderTimers,
	clock Clock,
) PayOrderCommandHandler {
	return PayOrderCommandHandler{
		transitioner: transitioner{uowFactory: uowFactory, clock: clock},
		timers:       timers,
	}
}

// Handle pays the order. The auto-dispatch timer is armed only after the
// payment is committed, and never for a synthesized result.
func (h *PayOrderCommandHandler) Handle(ctx context.Context, cmd PayOrderCommand) (TransitionResult, error) {
	if err := cmd.Validate(); err != nil {
		return TransitionResult{}, err
	}

	paid, now, err := h.apply(ctx, cmd.orderTarget, func(o *order.Order, now time.Time) error {
		return o.Pay(now)
	})
	if err != nil {
		return TransitionResult{}, err
	}

	if paid == nil {
		return missing(cmd.orderTarget, order.EventPay, now)
	}

	h.timers.ArmAutoDispatch(paid.ID())
	return storedResult(paid, paid.PayTime()), nil
}
