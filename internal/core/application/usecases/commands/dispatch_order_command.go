package commands

import (
	"errors"
)

var ErrDispatchOrderCommandIsNotConstructed = errors.New(
	"DispatchOrderCommand must be created via NewDispatchOrderCommand constructor",
)

// DispatchOrderCommand represents the shipment of a paid order. It is issued
// by the HTTP surface, the auto-dispatch timer and the background picker.
type DispatchOrderCommand struct { //nolint:recvcheck //using for validation
	orderTarget
}

func NewDispatchOrderCommand(orderID string) (DispatchOrderCommand, error) {
	target, err := newOrderTarget(orderID)
	if err != nil {
		return DispatchOrderCommand{}, err
	}
	return DispatchOrderCommand{orderTarget: target}, nil
}

// Strict returns a copy that fails with errs.ObjectNotFoundError on a missing order.
// Timers use strict commands so that a cancelled order is not reported as dispatched.
func (c DispatchOrderCommand) Strict() DispatchOrderCommand {
	c.strict = true
	return c
}

func (c DispatchOrderCommand) Validate() error {
	return c.guard.Validate(ErrDispatchOrderCommandIsNotConstructed)
}
