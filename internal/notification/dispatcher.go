package notification

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// Observer receives published events.
type Observer interface {
	Name() string
	Notify(ctx context.Context, event Event) error
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc struct {
	ObserverName string
	Fn           func(ctx context.Context, event Event) error
}

func (f ObserverFunc) Name() string {
	return f.ObserverName
}

func (f ObserverFunc) Notify(ctx context.Context, event Event) error {
	return f.Fn(ctx, event)
}

// Dispatcher is the process-wide event fan-out.
type Dispatcher struct {
	mu        sync.RWMutex
	observers []Observer
	logger    *slog.Logger
}

var _ ports.DispatchNotifier = (*Dispatcher)(nil)

func NewDispatcher(logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		logger: logger.With("component", "notification_dispatcher"),
	}
}

// Register adds an observer. Observers registered during a Publish take part
// from the next Publish on.
func (d *Dispatcher) Register(observers ...Observer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.observers = append(d.observers, observers...)
}

// Publish delivers the event to every observer and returns how many accepted it.
func (d *Dispatcher) Publish(ctx context.Context, event Event) int {
	d.mu.RLock()
	observers := make([]Observer, len(d.observers))
	copy(observers, d.observers)
	d.mu.RUnlock()

	delivered := 0
	for _, o := range observers {
		if err := deliver(ctx, o, event); err != nil {
			d.logger.ErrorContext(ctx, "Observer failed",
				"observer", o.Name(),
				"event_type", event.Type,
				"order_id", event.OrderID,
				"error", err,
			)
			continue
		}
		delivered++
	}
	return delivered
}

// NotifyDispatched publishes an order.dispatched event for the order.
func (d *Dispatcher) NotifyDispatched(ctx context.Context, dispatched *order.Order) {
	d.Publish(ctx, NewDispatchedEvent(dispatched))
}

func deliver(ctx context.Context, o Observer, event Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("observer panicked: %v", r)
		}
	}()
	return o.Notify(ctx, event)
}
