package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the fulfillment state of an order.
//
// State transitions:
//
//	PendingPayment ──pay──> PendingDispatch ──dispatch──> Dispatched ──markForReceipt──> PendingReceipt
//	                                                          │                              │
//	                                                          └──────confirmReceipt──────────┴──> Completed
//
// Cancellation is not a status: a cancelled order is removed from the store.
// The integer values are part of the public contract and must not be renumbered.
type Status int

const (
	// PendingPayment is the initial status of a created order.
	PendingPayment Status = iota

	// PendingDispatch means the order is paid and waits for a shipment.
	PendingDispatch

	// Dispatched means the shipment left; deliveryTime is set.
	Dispatched

	// PendingReceipt means the parcel is waiting for the customer to confirm.
	PendingReceipt

	// Completed is final; receiveTime is set.
	Completed
)

// statusTexts is indexed by Status. Clients match on these labels verbatim.
var statusTexts = [...]string{"待付款", "待发货", "已发货", "待收货", "已完成"}

var statusNames = [...]string{"PendingPayment", "PendingDispatch", "Dispatched", "PendingReceipt", "Completed"}

// AllStatuses lists every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{PendingPayment, PendingDispatch, Dispatched, PendingReceipt, Completed}
}

// ParseStatus converts an external integer into a Status.
func ParseStatus(v int) (Status, error) {
	s := Status(v)
	if err := s.Validate(); err != nil {
		return 0, err
	}
	return s, nil
}

// Validate checks that the value is one of the five lifecycle statuses.
func (s Status) Validate() error {
	if s < PendingPayment || s > Completed {
		return errs.NewValueIsOutOfRangeError("status", int(s), int(PendingPayment), int(Completed))
	}
	return nil
}

// Text returns the customer facing label for the status.
func (s Status) Text() string {
	if s.Validate() != nil {
		return ""
	}
	return statusTexts[s]
}

// String returns an English name for logs.
func (s Status) String() string {
	if s.Validate() != nil {
		return fmt.Sprintf("Status(%d)", int(s))
	}
	return statusNames[s]
}

// Pay moves PendingPayment to PendingDispatch.
func (s Status) Pay() (Status, error) {
	if s != PendingPayment {
		return s, NewInvalidTransitionError(EventPay, s)
	}
	return PendingDispatch, nil
}

// Dispatch moves PendingDispatch to Dispatched. A second dispatch of the same
// order fails here, which is what makes racing dispatch timers harmless.
func (s Status) Dispatch() (Status, error) {
	if s != PendingDispatch {
		return s, NewInvalidTransitionError(EventDispatch, s)
	}
	return Dispatched, nil
}

// MarkForReceipt moves Dispatched to PendingReceipt. Repeating it on a
// PendingReceipt order is accepted and changes nothing.
func (s Status) MarkForReceipt() (Status, error) {
	if s != Dispatched && s != PendingReceipt {
		return s, NewInvalidTransitionError(EventMarkForReceipt, s)
	}
	return PendingReceipt, nil
}

// ConfirmReceipt completes a Dispatched or PendingReceipt order.
func (s Status) ConfirmReceipt() (Status, error) {
	if s != Dispatched && s != PendingReceipt {
		return s, NewInvalidTransitionError(EventConfirmReceipt, s)
	}
	return Completed, nil
}
