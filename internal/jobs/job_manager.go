package jobs

import (
	"fmt"
	"log/slog"

	"fulfillment/internal/scheduler"
)

// JobManager coordinates the background work of the process: the shipment
// picker and the delay scheduler that runs every lifecycle timer.
type JobManager struct {
	picker    *ShipmentPickerJob
	scheduler *scheduler.DelayScheduler
	logger    *slog.Logger
}

func NewJobManager(picker *ShipmentPickerJob, s *scheduler.DelayScheduler, logger *slog.Logger) *JobManager {
	return &JobManager{
		picker:    picker,
		scheduler: s,
		logger:    logger.With("component", "job_manager"),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.picker.Start(); err != nil {
		return fmt.Errorf("failed to start shipment picker job: %w", err)
	}
	return nil
}

// StopAll stops the picker first so it cannot arm new work, then revokes every
// outstanding timer and waits for running ones.
func (jm *JobManager) StopAll() {
	jm.picker.Stop()
	jm.scheduler.Stop()
	jm.logger.Info("All jobs stopped")
}
