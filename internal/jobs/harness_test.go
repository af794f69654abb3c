package jobs_test

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/memory"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/jobs"
	"fulfillment/internal/scheduler"

	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu  sync.Mutex
	ids []string
}

func (n *recordingNotifier) NotifyDispatched(_ context.Context, o *order.Order) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.ids = append(n.ids, o.ID().String())
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.ids)
}

// harness wires the real command handlers to the in-memory store and the timers.
type harness struct {
	store     *memory.Store
	factory   commands.OrderUoWFactory
	scheduler *scheduler.DelayScheduler
	timers    *jobs.OrderTimers
	notifier  *recordingNotifier

	dispatch commands.DispatchOrderCommandHandler
	mark     commands.MarkForReceiptCommandHandler
	seq      int
}

func newHarness(t *testing.T, delays jobs.TimerDelays) *harness {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)
	store := memory.NewStore()
	uows := memory.NewUnitOfWorkFactory(store)

	h := &harness{
		store:     store,
		factory:   commands.OrderUoWFactoryFunc(func() commands.OrderUoW { return uows.Create() }),
		scheduler: scheduler.NewDelayScheduler(logger),
		notifier:  &recordingNotifier{},
	}
	h.timers = jobs.NewOrderTimers(h.scheduler, delays, h.runDispatch, h.runMarkForReceipt, logger)
	h.dispatch = commands.NewDispatchOrderCommandHandler(h.factory, h.timers, h.notifier, nil)
	h.mark = commands.NewMarkForReceiptCommandHandler(h.factory, nil)

	t.Cleanup(h.scheduler.Stop)
	return h
}

func (h *harness) runDispatch(ctx context.Context, cmd commands.DispatchOrderCommand) (commands.TransitionResult, error) {
	return h.dispatch.Handle(ctx, cmd)
}

func (h *harness) runMarkForReceipt(ctx context.Context, cmd commands.MarkForReceiptCommand) (commands.TransitionResult, error) {
	return h.mark.Handle(ctx, cmd)
}

func (h *harness) create(t *testing.T) kernel.OrderID {
	t.Helper()

	h.seq++
	id, err := kernel.NewOrderID(time.Now(), h.seq)
	require.NoError(t, err)
	item, err := order.NewLineItem(1, "item", kernel.MoneyFromInt(10), 1, "", "")
	require.NoError(t, err)
	o, err := order.NewOrder(id, order.Address{Name: "n", Phone: "p", Detail: "d"},
		[]order.LineItem{item}, order.Checkout{}, id.CreatedAt())
	require.NoError(t, err)

	uow := h.factory.Create()
	require.NoError(t, uow.Begin(t.Context()))
	require.NoError(t, uow.OrderRepository().Add(t.Context(), o))
	require.NoError(t, uow.Commit(t.Context()))
	return id
}

func (h *harness) pay(t *testing.T, id kernel.OrderID) {
	t.Helper()
	cmd, err := commands.NewPayOrderCommand(id.String())
	require.NoError(t, err)
	handler := commands.NewPayOrderCommandHandler(h.factory, h.timers, nil)
	_, err = handler.Handle(t.Context(), cmd)
	require.NoError(t, err)
}

func (h *harness) cancel(t *testing.T, id kernel.OrderID) {
	t.Helper()
	cmd, err := commands.NewCancelOrderCommand(id.String())
	require.NoError(t, err)
	handler := commands.NewCancelOrderCommandHandler(h.factory, h.timers)
	_, err = handler.Handle(t.Context(), cmd)
	require.NoError(t, err)
}

func (h *harness) status(id kernel.OrderID) (order.Status, bool) {
	o, err := h.store.Get(context.Background(), id)
	if err != nil {
		return 0, false
	}
	return o.Status(), true
}

func (h *harness) eventuallyStatus(t *testing.T, id kernel.OrderID, want order.Status) {
	t.Helper()
	require.Eventually(t, func() bool {
		got, ok := h.status(id)
		return ok && got == want
	}, 2*time.Second, 5*time.Millisecond)
}
