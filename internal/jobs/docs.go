// Package jobs provides the background work that moves orders forward on its own.
//
// # Available Jobs
//
// 1. OrderTimers - chained one-shot timers armed by the command handlers:
// a paid order is dispatched after AUTO_DISPATCH_DELAY, a dispatched order is
// marked for receipt after AUTO_RECEIPT_DELAY.
// 2. ShipmentPickerJob - picks a random order awaiting dispatch, waits a random
// number of whole seconds and dispatches it, then picks again. A cron kick
// (github.com/robfig/cron/v3) wakes it when it went idle.
//
// # Usage
//
//	timers := jobs.NewOrderTimers(s, delays, dispatch, markForReceipt, logger)
//	picker := jobs.NewShipmentPickerJob(reader, dispatch, s, pickerConfig, nil, logger)
//
//	jobManager := jobs.NewJobManager(picker, s, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Every timer is keyed by its order id and runs the strict form of its
// command. Losing a race is expected: an order that was cancelled or already
// moved on is logged at debug level and skipped. Other failures are logged by
// the scheduler and never retried.
package jobs
