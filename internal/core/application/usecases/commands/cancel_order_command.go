package commands

import (
	"errors"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand deletes an order in any status.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderTarget
}

func NewCancelOrderCommand(orderID string) (CancelOrderCommand, error) {
	target, err := newOrderTarget(orderID)
	if err != nil {
		return CancelOrderCommand{}, err
	}
	return CancelOrderCommand{orderTarget: target}, nil
}

func (c CancelOrderCommand) Strict() CancelOrderCommand {
	c.strict = true
	return c
}

func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}
