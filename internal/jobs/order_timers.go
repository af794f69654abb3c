package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/scheduler"
)

const (
	DefaultAutoDispatchDelay       = 15 * time.Second
	DefaultAutoMarkForReceiptDelay = 3 * time.Second
)

type (
	// DispatchFunc runs a dispatch command, normally DispatchOrderCommandHandler.Handle.
	DispatchFunc func(ctx context.Context, cmd commands.DispatchOrderCommand) (commands.TransitionResult, error)

	// MarkForReceiptFunc runs a markForReceipt command.
	MarkForReceiptFunc func(ctx context.Context, cmd commands.MarkForReceiptCommand) (commands.TransitionResult, error)
)

// TimerDelays configures the chained lifecycle timers.
type TimerDelays struct {
	AutoDispatch       time.Duration
	AutoMarkForReceipt time.Duration
}

// OrderTimers arms the timers that move paid orders forward without user
// action: pay → dispatch after AutoDispatch, dispatch → markForReceipt after
// AutoMarkForReceipt. Timers are keyed by order id.
type OrderTimers struct {
	scheduler      *scheduler.DelayScheduler
	delays         TimerDelays
	dispatch       DispatchFunc
	markForReceipt MarkForReceiptFunc
	logger         *slog.Logger
}

// NewOrderTimers takes the command runners as functions so the handlers,
// which themselves arm timers, can be built after the timers.
func NewOrderTimers(
	s *scheduler.DelayScheduler,
	delays TimerDelays,
	dispatch DispatchFunc,
	markForReceipt MarkForReceiptFunc,
	logger *slog.Logger,
) *OrderTimers {
	if delays.AutoDispatch <= 0 {
		delays.AutoDispatch = DefaultAutoDispatchDelay
	}
	if delays.AutoMarkForReceipt <= 0 {
		delays.AutoMarkForReceipt = DefaultAutoMarkForReceiptDelay
	}

	return &OrderTimers{
		scheduler:      s,
		delays:         delays,
		dispatch:       dispatch,
		markForReceipt: markForReceipt,
		logger:         logger.With("component", "order_timers"),
	}
}

func (t *OrderTimers) ArmAutoDispatch(id kernel.OrderID) {
	t.scheduler.ScheduleAfter(id.String(), t.delays.AutoDispatch, func(ctx context.Context) error {
		cmd, err := commands.NewDispatchOrderCommand(id.String())
		if err != nil {
			return err
		}
		_, err = t.dispatch(ctx, cmd.Strict())
		return t.settle(ctx, order.EventDispatch, id, err)
	})
}

func (t *OrderTimers) ArmAutoMarkForReceipt(id kernel.OrderID) {
	t.scheduler.ScheduleAfter(id.String(), t.delays.AutoMarkForReceipt, func(ctx context.Context) error {
		cmd, err := commands.NewMarkForReceiptCommand(id.String())
		if err != nil {
			return err
		}
		_, err = t.markForReceipt(ctx, cmd.Strict())
		return t.settle(ctx, order.EventMarkForReceipt, id, err)
	})
}

// Revoke cancels every outstanding timer of the order, the picker's included.
func (t *OrderTimers) Revoke(id kernel.OrderID) {
	if n := t.scheduler.Cancel(id.String()); n > 0 {
		t.logger.Debug("Timers revoked", "order_id", id.String(), "count", n)
	}
}

// Pending returns the number of armed timers.
func (t *OrderTimers) Pending() int {
	return t.scheduler.Pending()
}

// settle swallows the outcomes of losing a race: the order was cancelled or
// already moved on by someone else.
func (t *OrderTimers) settle(ctx context.Context, event order.Event, id kernel.OrderID, err error) error {
	if err == nil {
		t.logger.InfoContext(ctx, "Timer fired", "event", event, "order_id", id.String())
		return nil
	}
	if isSettled(err) {
		t.logger.DebugContext(ctx, "Timer found order already settled",
			"event", event, "order_id", id.String(), "reason", err)
		return nil
	}
	return err
}

func isSettled(err error) bool {
	return errors.Is(err, errs.ErrObjectNotFound) || errors.Is(err, order.ErrInvalidTransition)
}
