package notification

import (
	"context"
	"log/slog"
)

// LogObserver writes every event to the structured log.
type LogObserver struct {
	logger *slog.Logger
}

func NewLogObserver(logger *slog.Logger) *LogObserver {
	return &LogObserver{logger: logger.With("component", "notification_log")}
}

func (o *LogObserver) Name() string {
	return "log"
}

func (o *LogObserver) Notify(ctx context.Context, event Event) error {
	o.logger.InfoContext(ctx, event.Message,
		"event_id", event.ID.String(),
		"event_type", event.Type,
		"order_id", event.OrderID,
		"status", int(event.Status),
		"status_text", event.StatusText,
		"occurred_at", event.OccurredAt,
	)
	return nil
}
