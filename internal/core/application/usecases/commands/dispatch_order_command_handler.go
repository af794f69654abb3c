package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// DispatchOrderCommandHandler moves an order from PendingDispatch to Dispatched.
//
// Side effects after commit:
//   - exactly one dispatch notification per order, since a second dispatch
//     fails the state guard before anything is published
//   - the markForReceipt timer is armed
type DispatchOrderCommandHandler struct {
	transitioner
	timers   ports.OrderTimers
	notifier ports.DispatchNotifier
}

func NewDispatchOrderCommandHandler(
	uowFactory OrderUoWFactory,
	timers ports.OrderTimers,
	notifier ports.DispatchNotifier,
	clock Clock,
) DispatchOrderCommandHandler {
	return DispatchOrderCommandHandler{
		transitioner: transitioner{uowFactory: uowFactory, clock: clock},
		timers:       timers,
		notifier:     notifier,
	}
}

func (h *DispatchOrderCommandHandler) Handle(ctx context.Context, cmd DispatchOrderCommand) (TransitionResult, error) {
	if err := cmd.Validate(); err != nil {
		return TransitionResult{}, err
	}

	dispatched, now, err := h.apply(ctx, cmd.orderTarget, func(o *order.Order, now time.Time) error {
		return o.Dispatch(now)
	})
	if err != nil {
		return TransitionResult{}, err
	}

	if dispatched == nil {
		return missing(cmd.orderTarget, order.EventDispatch, now)
	}

	h.notifier.NotifyDispatched(ctx, dispatched)
	h.timers.ArmAutoMarkForReceipt(dispatched.ID())
	return storedResult(dispatched, dispatched.DeliveryTime()), nil
}
