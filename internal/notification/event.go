// Package notification fans order events out to registered observers.
//
// Publish delivers to every observer in registration order on the caller's
// goroutine. A failing or panicking observer is logged and skipped; the
// others still receive the event. Nothing is retried.
package notification

import (
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// TypeOrderDispatched is the only event type emitted today.
const TypeOrderDispatched = "order.dispatched"

// Event is the payload observers receive.
type Event struct {
	ID         kernel.UUID  `json:"id"`
	Type       string       `json:"type"`
	OrderID    string       `json:"orderId"`
	Status     order.Status `json:"status"`
	StatusText string       `json:"statusText"`
	OccurredAt time.Time    `json:"occurredAt"`
	Message    string       `json:"message"`
}

// NewDispatchedEvent describes a dispatched order. OccurredAt is the order's deliveryTime.
func NewDispatchedEvent(dispatched *order.Order) Event {
	occurredAt := time.Now()
	if t := dispatched.DeliveryTime(); t != nil {
		occurredAt = *t
	}

	return Event{
		ID:         kernel.NewUUID(),
		Type:       TypeOrderDispatched,
		OrderID:    dispatched.ID().String(),
		Status:     dispatched.Status(),
		StatusText: dispatched.StatusText(),
		OccurredAt: occurredAt,
		Message:    fmt.Sprintf("您的订单已发货！订单编号: %s", dispatched.ID()),
	}
}
