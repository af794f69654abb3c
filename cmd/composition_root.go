package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/in/ws"
	"fulfillment/internal/adapters/out/kafka"
	"fulfillment/internal/adapters/out/memory"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"
	"fulfillment/internal/notification"
	"fulfillment/internal/pkg/metrics"
	"fulfillment/internal/scheduler"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// CompositionRoot owns every long-lived object of the process and builds
// handlers on demand.
type CompositionRoot struct {
	config Config
	logger *slog.Logger

	uowFactory  commands.OrderUoWFactory
	reader      ports.OrderReader
	ids         *kernel.OrderIDGenerator
	synthesizer services.OrderSynthesizer

	scheduler *scheduler.DelayScheduler
	timers    *jobs.OrderTimers

	notifications *notification.Dispatcher
	hub           *ws.Hub
	producer      *kafka.NotificationProducer
	metrics       *metrics.Metrics
}

// NewCompositionRoot stores orders in gormDB, or in memory when gormDB is nil.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		config:        config,
		logger:        logger,
		ids:           kernel.NewOrderIDGenerator(time.Now),
		synthesizer:   services.NewOrderSynthesizer(config.ListFloor),
		scheduler:     scheduler.NewDelayScheduler(logger),
		notifications: notification.NewDispatcher(logger),
		hub:           ws.NewHub(logger),
		metrics:       metrics.New(),
	}

	if gormDB != nil {
		uows := postgres.NewGormUnitOfWorkFactory(gormDB)
		c.uowFactory = commands.OrderUoWFactoryFunc(func() commands.OrderUoW { return uows.Create() })
		c.reader = postgres.NewOrderReader(gormDB)
	} else {
		store := memory.NewStore()
		uows := memory.NewUnitOfWorkFactory(store)
		c.uowFactory = commands.OrderUoWFactoryFunc(func() commands.OrderUoW { return uows.Create() })
		c.reader = store
	}

	c.timers = jobs.NewOrderTimers(
		c.scheduler,
		jobs.TimerDelays{
			AutoDispatch:       config.AutoDispatchDelay,
			AutoMarkForReceipt: config.AutoReceiptDelay,
		},
		c.dispatch,
		c.markForReceipt,
		logger,
	)

	if err := c.metrics.RegisterPendingTimers(c.timers.Pending); err != nil {
		return nil, fmt.Errorf("failed to register timer gauge: %w", err)
	}

	c.notifications.Register(
		notification.NewLogObserver(logger),
		c.metrics,
		c.hub,
	)
	if config.KafkaHost != "" {
		c.producer = kafka.NewNotificationProducer(kafka.NewWriter(config.KafkaHost, config.KafkaOrderChangedTopic))
		c.notifications.Register(c.producer)
	}

	return c, nil
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.uowFactory, c.ids)
}

func (c *CompositionRoot) CreatePayOrderCommandHandler() commands.PayOrderCommandHandler {
	return commands.NewPayOrderCommandHandler(c.uowFactory, c.timers, time.Now)
}

func (c *CompositionRoot) CreateDispatchOrderCommandHandler() commands.DispatchOrderCommandHandler {
	return commands.NewDispatchOrderCommandHandler(c.uowFactory, c.timers, c.notifications, time.Now)
}

func (c *CompositionRoot) CreateMarkForReceiptCommandHandler() commands.MarkForReceiptCommandHandler {
	return commands.NewMarkForReceiptCommandHandler(c.uowFactory, time.Now)
}

func (c *CompositionRoot) CreateConfirmReceiptCommandHandler() commands.ConfirmReceiptCommandHandler {
	return commands.NewConfirmReceiptCommandHandler(c.uowFactory, time.Now)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.uowFactory, c.timers)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.reader, c.synthesizer, time.Now)
}

func (c *CompositionRoot) CreateGetOrderDetailQueryHandler() queries.GetOrderDetailQueryHandler {
	return queries.NewGetOrderDetailQueryHandler(c.reader, c.synthesizer)
}

func (c *CompositionRoot) CreateCountOrdersQueryHandler() queries.CountOrdersQueryHandler {
	return queries.NewCountOrdersQueryHandler(c.reader)
}

func (c *CompositionRoot) CreateServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreatePayOrderCommandHandler(),
		c.CreateDispatchOrderCommandHandler(),
		c.CreateMarkForReceiptCommandHandler(),
		c.CreateConfirmReceiptCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateListOrdersQueryHandler(),
		c.CreateGetOrderDetailQueryHandler(),
		c.CreateCountOrdersQueryHandler(),
		c.logger,
	)
}

func (c *CompositionRoot) CreateRouter() *echo.Echo {
	return httpin.NewRouter(c.CreateServer(), c.metrics, c.hub)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	picker := jobs.NewShipmentPickerJob(
		c.reader,
		c.dispatch,
		c.scheduler,
		jobs.PickerConfig{
			MinDelay: c.config.PickerMinDelay,
			MaxDelay: c.config.PickerMaxDelay,
			KickSpec: c.config.PickerKickSpec,
		},
		nil,
		c.logger,
	)
	return jobs.NewJobManager(picker, c.scheduler, c.logger)
}

// Close releases the notification sinks. Call it after the job manager stopped.
func (c *CompositionRoot) Close() error {
	c.hub.Close()
	if c.producer != nil {
		return c.producer.Close()
	}
	return nil
}

// dispatch and markForReceipt let the timers run commands whose handlers
// arm timers themselves.
func (c *CompositionRoot) dispatch(ctx context.Context, cmd commands.DispatchOrderCommand) (commands.TransitionResult, error) {
	h := c.CreateDispatchOrderCommandHandler()
	return h.Handle(ctx, cmd)
}

func (c *CompositionRoot) markForReceipt(ctx context.Context, cmd commands.MarkForReceiptCommand) (commands.TransitionResult, error) {
	h := c.CreateMarkForReceiptCommandHandler()
	return h.Handle(ctx, cmd)
}
