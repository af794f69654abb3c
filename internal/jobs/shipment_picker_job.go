package jobs

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/scheduler"

	"github.com/robfig/cron/v3"
)

const (
	DefaultPickerMinDelay = 1 * time.Second
	DefaultPickerMaxDelay = 45 * time.Second
	DefaultPickerKickSpec = "@every 5s"
)

// PickerConfig bounds the picker's wait and sets how often an idle picker
// looks for work.
type PickerConfig struct {
	MinDelay time.Duration
	MaxDelay time.Duration
	KickSpec string
}

// ShipmentPickerJob simulates a warehouse: it repeatedly picks one random
// PendingDispatch order, waits a random number of whole seconds within
// [MinDelay, MaxDelay] and dispatches it. At most one pick is outstanding.
//
// The pick is scheduled under the order id, so cancelling the order revokes
// it. The cron kick re-arms the picker when it went idle, either because no
// order was waiting or because its pick was revoked.
type ShipmentPickerJob struct {
	reader    ports.OrderReader
	dispatch  DispatchFunc
	scheduler *scheduler.DelayScheduler
	config    PickerConfig
	cron      *cron.Cron
	logger    *slog.Logger

	mu      sync.Mutex
	rnd     *rand.Rand
	pick    *scheduler.Handle
	stopped bool
}

// NewShipmentPickerJob uses rnd for every random choice; nil seeds a fresh source.
func NewShipmentPickerJob(
	reader ports.OrderReader,
	dispatch DispatchFunc,
	s *scheduler.DelayScheduler,
	config PickerConfig,
	rnd *rand.Rand,
	logger *slog.Logger,
) *ShipmentPickerJob {
	if config.MinDelay <= 0 {
		config.MinDelay = DefaultPickerMinDelay
	}
	if config.MaxDelay < config.MinDelay {
		config.MaxDelay = max(DefaultPickerMaxDelay, config.MinDelay)
	}
	if config.KickSpec == "" {
		config.KickSpec = DefaultPickerKickSpec
	}
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) //nolint:gosec // simulation only
	}

	return &ShipmentPickerJob{
		reader:    reader,
		dispatch:  dispatch,
		scheduler: s,
		config:    config,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "shipment_picker_job"),
		rnd:       rnd,
	}
}

// Start arms the picker and registers the kick.
func (j *ShipmentPickerJob) Start() error {
	_, err := j.cron.AddFunc(j.config.KickSpec, func() {
		j.Kick(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.Kick(context.Background())
	j.logger.InfoContext(context.Background(), "Shipment picker job started", "kick", j.config.KickSpec)
	return nil
}

// Stop stops the kick and revokes the outstanding pick.
func (j *ShipmentPickerJob) Stop() {
	<-j.cron.Stop().Done()

	j.mu.Lock()
	j.stopped = true
	if j.pick != nil {
		j.pick.Cancel()
		j.pick = nil
	}
	j.mu.Unlock()

	j.logger.InfoContext(context.Background(), "Shipment picker job stopped")
}

// Kick arms a pick unless one is already outstanding. It returns the chosen
// order id, or "" when nothing was armed.
func (j *ShipmentPickerJob) Kick(ctx context.Context) string {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.stopped || (j.pick != nil && !isDone(j.pick)) {
		return ""
	}
	j.pick = nil

	status := order.PendingDispatch
	waiting, err := j.reader.List(ctx, ports.OrderFilter{Status: &status})
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to list orders awaiting dispatch", "error", err)
		return ""
	}
	if len(waiting) == 0 {
		return ""
	}

	chosen := waiting[j.rnd.IntN(len(waiting))].ID().String()
	delay := j.delay()
	j.pick = j.scheduler.ScheduleAfter(chosen, delay, func(ctx context.Context) error {
		return j.ship(ctx, chosen)
	})

	j.logger.DebugContext(ctx, "Shipment picked", "order_id", chosen, "delay", delay)
	return chosen
}

func (j *ShipmentPickerJob) ship(ctx context.Context, orderID string) error {
	defer func() {
		j.release()
		j.Kick(ctx)
	}()

	cmd, err := commands.NewDispatchOrderCommand(orderID)
	if err != nil {
		return err
	}

	if _, err = j.dispatch(ctx, cmd.Strict()); err != nil {
		if isSettled(err) {
			j.logger.DebugContext(ctx, "Picked order already settled", "order_id", orderID, "reason", err)
			return nil
		}
		return err
	}

	j.logger.InfoContext(ctx, "Shipment dispatched", "order_id", orderID)
	return nil
}

func (j *ShipmentPickerJob) release() {
	j.mu.Lock()
	j.pick = nil
	j.mu.Unlock()
}

// delay returns MinDelay plus a uniform number of whole seconds, capped at MaxDelay.
func (j *ShipmentPickerJob) delay() time.Duration {
	steps := int64((j.config.MaxDelay - j.config.MinDelay) / time.Second)
	return j.config.MinDelay + time.Duration(j.rnd.Int64N(steps+1))*time.Second
}

func isDone(h *scheduler.Handle) bool {
	select {
	case <-h.Done():
		return true
	default:
		return false
	}
}
