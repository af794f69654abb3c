// Package queries contains the read operations over orders.
// Reads go through ports.OrderReader and never open a unit of work; rows the
// store does not hold are derived by services.OrderSynthesizer and flagged
// with their provenance.
package queries

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderView is the read model of one order.
type OrderView struct {
	ID           string
	Status       order.Status
	StatusText   string
	TotalPrice   kernel.Money
	CreateTime   time.Time
	PayTime      *time.Time
	DeliveryTime *time.Time
	ReceiveTime  *time.Time
	Address      order.Address
	Products     []order.LineItem
	Checkout     order.Checkout
	Provenance   order.Provenance
}

func newOrderView(o *order.Order, provenance order.Provenance) OrderView {
	s := o.Snapshot()
	return OrderView{
		ID:           s.ID.String(),
		Status:       s.Status,
		StatusText:   s.Status.Text(),
		TotalPrice:   s.TotalPrice,
		CreateTime:   s.CreateTime,
		PayTime:      s.PayTime,
		DeliveryTime: s.DeliveryTime,
		ReceiveTime:  s.ReceiveTime,
		Address:      s.Address,
		Products:     s.Products,
		Checkout:     s.Checkout,
		Provenance:   provenance,
	}
}
