package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderTimers arms the delayed transitions that move orders forward on their own.
// Every timer is keyed by the order id so that Revoke cancels all of them at once.
type OrderTimers interface {
	// ArmAutoDispatch schedules a dispatch of a freshly paid order.
	ArmAutoDispatch(id kernel.OrderID)

	// ArmAutoMarkForReceipt schedules markForReceipt of a freshly dispatched order.
	ArmAutoMarkForReceipt(id kernel.OrderID)

	// Revoke cancels every outstanding timer of the order.
	Revoke(id kernel.OrderID)
}

// DispatchNotifier announces that an order has been dispatched.
// Implementations deliver synchronously and never fail the caller.
type DispatchNotifier interface {
	NotifyDispatched(ctx context.Context, dispatched *order.Order)
}
