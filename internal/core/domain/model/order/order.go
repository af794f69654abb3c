package order

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Checkout carries the opaque pass-through fields of the creation payload.
type Checkout struct {
	DeliveryType string
	PaymentType  string
	Remark       string
}

// Order is the aggregate root of the fulfillment lifecycle.
//
// Order follows these invariants:
//   - The id never changes
//   - totalPrice is the sum of the line subtotals and never changes after creation
//   - Each timestamp is nil until its transition happens and is never rewritten
//   - createTime <= payTime <= deliveryTime <= receiveTime for the timestamps that are set
//   - StatusText is derived from status, never stored
type Order struct {
	id         kernel.OrderID
	status     Status
	totalPrice kernel.Money

	createTime   time.Time
	payTime      *time.Time
	deliveryTime *time.Time
	receiveTime  *time.Time

	address  Address
	products []LineItem
	checkout Checkout

	isConstructed bool
}

// NewOrder creates an order in PendingPayment status.
//
// Parameters:
//   - id: identity issued by kernel.OrderIDGenerator
//   - address: recipient, name, phone and detail are mandatory
//   - products: at least one line item, each with a positive id and count
//   - checkout: delivery/payment method and remark, stored as given
//   - createdAt: creation instant
//
// Returns every validation failure joined into one error.
//
// Example:
//
//	item, _ := order.NewLineItem(1, "Kiwi", kernel.MoneyFromInt(50), 2, "", "")
//	o, err := order.NewOrder(gen.Next(), address, []order.LineItem{item}, order.Checkout{}, time.Now())
func NewOrder(
	id kernel.OrderID,
	address Address,
	products []LineItem,
	checkout Checkout,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        PendingPayment,
		createTime:    createdAt,
		checkout:      checkout,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setAddress(address),
		o.setProducts(products),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Snapshot is the full state of an order, used to restore it from storage or
// to build a synthesized one.
type Snapshot struct {
	ID           kernel.OrderID
	Status       Status
	TotalPrice   kernel.Money
	CreateTime   time.Time
	PayTime      *time.Time
	DeliveryTime *time.Time
	ReceiveTime  *time.Time
	Address      Address
	Products     []LineItem
	Checkout     Checkout
}

// RestoreOrder rebuilds an order from a snapshot. Unlike NewOrder it takes the
// stored total and timestamps as given, after checking they agree with the status.
func RestoreOrder(s Snapshot) (*Order, error) {
	if err := errors.Join(
		s.ID.Validate(),
		s.Status.Validate(),
		validateProducts(s.Products),
		validateTimeline(s),
	); err != nil {
		return nil, err
	}

	return &Order{
		id:            s.ID,
		status:        s.Status,
		totalPrice:    s.TotalPrice,
		createTime:    s.CreateTime,
		payTime:       copyTime(s.PayTime),
		deliveryTime:  copyTime(s.DeliveryTime),
		receiveTime:   copyTime(s.ReceiveTime),
		address:       s.Address,
		products:      slices.Clone(s.Products),
		checkout:      s.Checkout,
		isConstructed: true,
	}, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// Snapshot returns a copy of the order state that shares no memory with the order.
func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		ID:           o.id,
		Status:       o.status,
		TotalPrice:   o.totalPrice,
		CreateTime:   o.createTime,
		PayTime:      copyTime(o.payTime),
		DeliveryTime: copyTime(o.deliveryTime),
		ReceiveTime:  copyTime(o.receiveTime),
		Address:      o.address,
		Products:     slices.Clone(o.products),
		Checkout:     o.checkout,
	}
}

// Clone returns an independent copy. Stores hand out clones so that a
// transition rolled back by the caller never leaks into shared state.
func (o *Order) Clone() *Order {
	c := *o
	c.payTime = copyTime(o.payTime)
	c.deliveryTime = copyTime(o.deliveryTime)
	c.receiveTime = copyTime(o.receiveTime)
	c.products = slices.Clone(o.products)
	return &c
}

func (o *Order) ID() kernel.OrderID {
	return o.id
}

func (o *Order) Status() Status {
	return o.status
}

// StatusText returns the label of the current status.
func (o *Order) StatusText() string {
	return o.status.Text()
}

func (o *Order) TotalPrice() kernel.Money {
	return o.totalPrice
}

func (o *Order) CreateTime() time.Time {
	return o.createTime
}

// PayTime is nil until the order is paid.
func (o *Order) PayTime() *time.Time {
	return copyTime(o.payTime)
}

// DeliveryTime is nil until the order is dispatched.
func (o *Order) DeliveryTime() *time.Time {
	return copyTime(o.deliveryTime)
}

// ReceiveTime is nil until receipt is confirmed.
func (o *Order) ReceiveTime() *time.Time {
	return copyTime(o.receiveTime)
}

func (o *Order) Address() Address {
	return o.address
}

// Products returns a copy of the line items in creation order.
func (o *Order) Products() []LineItem {
	return slices.Clone(o.products)
}

func (o *Order) Checkout() Checkout {
	return o.checkout
}

// Pay transitions PendingPayment to PendingDispatch and stamps payTime.
//
// Returns an *InvalidTransitionError if the order is in any other status.
func (o *Order) Pay(now time.Time) error {
	next, err := o.status.Pay()
	if err != nil {
		return err
	}

	o.status = next
	o.payTime = o.stampAfter(now, &o.createTime)
	return nil
}

// Dispatch transitions PendingDispatch to Dispatched and stamps deliveryTime.
//
// Returns an *InvalidTransitionError if the order is in any other status,
// including Dispatched itself; the existing deliveryTime is left untouched.
func (o *Order) Dispatch(now time.Time) error {
	next, err := o.status.Dispatch()
	if err != nil {
		return err
	}

	o.status = next
	o.deliveryTime = o.stampAfter(now, o.payTime)
	return nil
}

// MarkForReceipt moves a dispatched order to PendingReceipt. No timestamp changes.
func (o *Order) MarkForReceipt() error {
	next, err := o.status.MarkForReceipt()
	if err != nil {
		return err
	}

	o.status = next
	return nil
}

// ConfirmReceipt completes the order and stamps receiveTime.
func (o *Order) ConfirmReceipt(now time.Time) error {
	next, err := o.status.ConfirmReceipt()
	if err != nil {
		return err
	}

	o.status = next
	o.receiveTime = o.stampAfter(now, o.deliveryTime)
	return nil
}

// stampAfter returns now, or prev when the clock reads earlier than the
// previous lifecycle stamp, keeping the timeline non-decreasing.
func (o *Order) stampAfter(now time.Time, prev *time.Time) *time.Time {
	if prev != nil && now.Before(*prev) {
		now = *prev
	}
	return &now
}

func (o *Order) setID(id kernel.OrderID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setAddress(address Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	o.address = address
	return nil
}

// setProducts validates the line items and computes the total price.
func (o *Order) setProducts(products []LineItem) error {
	if err := validateProducts(products); err != nil {
		return err
	}

	total := kernel.ZeroMoney()
	for _, item := range products {
		total = total.Add(item.Subtotal())
	}

	o.products = slices.Clone(products)
	o.totalPrice = total
	return nil
}

func validateProducts(products []LineItem) error {
	if len(products) == 0 {
		return errs.NewValueIsRequiredError("products")
	}

	var joined []error
	for i, item := range products {
		if err := item.Validate(); err != nil {
			joined = append(joined, fmt.Errorf("products[%d]: %w", i, err))
		}
	}
	return errors.Join(joined...)
}

// validateTimeline checks that the timestamps present match the status and
// never go backwards.
func validateTimeline(s Snapshot) error {
	required := []struct {
		name  string
		value *time.Time
		from  Status
	}{
		{"payTime", s.PayTime, PendingDispatch},
		{"deliveryTime", s.DeliveryTime, Dispatched},
		{"receiveTime", s.ReceiveTime, Completed},
	}

	var joined []error
	prev := s.CreateTime
	for _, r := range required {
		if s.Status >= r.from && r.value == nil {
			joined = append(joined, errs.NewValueIsRequiredErrorWithCause(
				r.name, fmt.Errorf("status %s requires it", s.Status)))
			continue
		}
		if r.value == nil {
			continue
		}
		if r.value.Before(prev) {
			joined = append(joined, errs.NewValueIsInvalidErrorWithCause(
				r.name, fmt.Errorf("%s is before the previous lifecycle timestamp", r.value.Format(time.RFC3339))))
			continue
		}
		prev = *r.value
	}
	return errors.Join(joined...)
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
