package commands

import (
	"errors"
)

var ErrConfirmReceiptCommandIsNotConstructed = errors.New(
	"ConfirmReceiptCommand must be created via NewConfirmReceiptCommand constructor",
)

// ConfirmReceiptCommand represents the customer confirming delivery.
type ConfirmReceiptCommand struct { //nolint:recvcheck //using for validation
	orderTarget
}

func NewConfirmReceiptCommand(orderID string) (ConfirmReceiptCommand, error) {
	target, err := newOrderTarget(orderID)
	if err != nil {
		return ConfirmReceiptCommand{}, err
	}
	return ConfirmReceiptCommand{orderTarget: target}, nil
}

func (c ConfirmReceiptCommand) Strict() ConfirmReceiptCommand {
	c.strict = true
	return c
}

func (c ConfirmReceiptCommand) Validate() error {
	return c.guard.Validate(ErrConfirmReceiptCommandIsNotConstructed)
}
