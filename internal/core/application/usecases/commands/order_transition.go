package commands

import (
	"context"
	"errors"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// orderTarget is the part every lifecycle command shares: which order, and
// whether a missing order is an error.
type orderTarget struct {
	orderID string
	strict  bool

	guard guard.ConstructorGuard
}

func newOrderTarget(orderID string) (orderTarget, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return orderTarget{}, errs.NewValueIsRequiredError("orderID")
	}

	return orderTarget{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the id as the caller supplied it.
func (t orderTarget) OrderID() string {
	return t.orderID
}

// IsStrict reports whether a missing order fails the command instead of
// yielding a synthesized result.
func (t orderTarget) IsStrict() bool {
	return t.strict
}

// TransitionResult describes the order after a lifecycle command.
// At is the timestamp the transition stamped; it is nil for markForReceipt.
type TransitionResult struct {
	OrderID    string
	Status     order.Status
	StatusText string
	At         *time.Time
	Provenance order.Provenance
}

func storedResult(o *order.Order, at *time.Time) TransitionResult {
	return TransitionResult{
		OrderID:    o.ID().String(),
		Status:     o.Status(),
		StatusText: o.StatusText(),
		At:         at,
		Provenance: order.ProvenanceStore,
	}
}

// synthesizedResult answers a lenient command on an order the store does not hold.
func synthesizedResult(orderID string, event order.Event, now time.Time) TransitionResult {
	target, _ := event.Target()
	result := TransitionResult{
		OrderID:    orderID,
		Status:     target,
		StatusText: target.Text(),
		Provenance: order.ProvenanceSynthesized,
	}
	if event != order.EventMarkForReceipt {
		result.At = &now
	}
	return result
}

// transitioner runs one state change inside a unit of work.
type transitioner struct {
	uowFactory OrderUoWFactory
	clock      Clock
}

// apply loads the order, runs step and stores the result. It returns a nil
// order and no error when the order does not exist.
func (t transitioner) apply(
	ctx context.Context,
	target orderTarget,
	step func(o *order.Order, now time.Time) error,
) (*order.Order, time.Time, error) {
	now := t.clock.now()

	id, err := kernel.ParseOrderID(target.orderID)
	if err != nil {
		// Stored ids always parse, so this one cannot be in the store.
		return nil, now, nil
	}

	uow := t.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, now, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.Get(ctx, id)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, now, nil
	}
	if err != nil {
		return nil, now, err
	}

	if err = step(o, now); err != nil {
		return nil, now, err
	}

	if err = repo.Update(ctx, o); err != nil {
		return nil, now, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, now, err
	}

	return o, now, nil
}

func missing(target orderTarget, event order.Event, now time.Time) (TransitionResult, error) {
	if target.strict {
		return TransitionResult{}, errs.NewObjectNotFoundError("order", target.orderID)
	}
	return synthesizedResult(target.orderID, event, now), nil
}
