package order

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is the sentinel behind every InvalidTransitionError.
var ErrInvalidTransition = errors.New("invalid transition")

// Event names a lifecycle transition.
type Event string

const (
	EventPay            Event = "pay"
	EventDispatch       Event = "dispatch"
	EventMarkForReceipt Event = "markForReceipt"
	EventConfirmReceipt Event = "confirmReceipt"
	EventCancel         Event = "cancel"
)

// Target returns the status an order holds after the event succeeds.
// Cancel has no target status; it reports the current status unchanged.
func (e Event) Target() (Status, bool) {
	switch e {
	case EventPay:
		return PendingDispatch, true
	case EventDispatch:
		return Dispatched, true
	case EventMarkForReceipt:
		return PendingReceipt, true
	case EventConfirmReceipt:
		return Completed, true
	case EventCancel:
		return 0, false
	}
	return 0, false
}

// InvalidTransitionError reports an event applied to an order whose current
// status does not allow it.
type InvalidTransitionError struct {
	Event Event
	From  Status
	To    Status
}

func NewInvalidTransitionError(event Event, from Status) *InvalidTransitionError {
	to, _ := event.Target()
	return &InvalidTransitionError{
		Event: event,
		From:  from,
		To:    to,
	}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: cannot %s order in status %s (requested %s)",
		ErrInvalidTransition, e.Event, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// Provenance tells callers whether a result was read from the store or
// synthesized because the store had nothing for the request.
type Provenance string

const (
	ProvenanceStore       Provenance = "store"
	ProvenanceSynthesized Provenance = "synthesized"
)
