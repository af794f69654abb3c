package commands

import (
	"errors"
)

var ErrPayOrderCommandIsNotConstructed = errors.New(
	"PayOrderCommand must be created via NewPayOrderCommand constructor",
)

// PayOrderCommand represents the customer paying for an order.
//
// Example:
//
//	cmd, err := NewPayOrderCommand("ORDER17131234567890001")
//	if err != nil {
//	    return fmt.Errorf("invalid pay request: %w", err)
//	}
//	result, err := handler.Handle(ctx, cmd)
type PayOrderCommand struct { //nolint:recvcheck //using for validation
	orderTarget
}

// NewPayOrderCommand creates a lenient pay command: paying an order the store
// does not hold yields a synthesized result instead of an error.
func NewPayOrderCommand(orderID string) (PayOrderCommand, error) {
	target, err := newOrderTarget(orderID)
	if err != nil {
		return PayOrderCommand{}, err
	}
	return PayOrderCommand{orderTarget: target}, nil
}

// Strict returns a copy that fails with errs.ObjectNotFoundError on a missing order.
func (c PayOrderCommand) Strict() PayOrderCommand {
	c.strict = true
	return c
}

func (c PayOrderCommand) Validate() error {
	return c.guard.Validate(ErrPayOrderCommandIsNotConstructed)
}
