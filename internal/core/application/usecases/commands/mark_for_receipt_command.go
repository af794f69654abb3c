package commands

import (
	"errors"
)

var ErrMarkForReceiptCommandIsNotConstructed = errors.New(
	"MarkForReceiptCommand must be created via NewMarkForReceiptCommand constructor",
)

// MarkForReceiptCommand moves a dispatched order to PendingReceipt.
type MarkForReceiptCommand struct { //nolint:recvcheck //using for validation
	orderTarget
}

func NewMarkForReceiptCommand(orderID string) (MarkForReceiptCommand, error) {
	target, err := newOrderTarget(orderID)
	if err != nil {
		return MarkForReceiptCommand{}, err
	}
	return MarkForReceiptCommand{orderTarget: target}, nil
}

func (c MarkForReceiptCommand) Strict() MarkForReceiptCommand {
	c.strict = true
	return c
}

func (c MarkForReceiptCommand) Validate() error {
	return c.guard.Validate(ErrMarkForReceiptCommandIsNotConstructed)
}
