package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// ListOrdersQueryHandler returns stored orders matching the filter followed by
// synthesized rows until the list reaches the synthesizer floor. Synthesized
// rows carry the requested status, or Completed when no status was requested.
type ListOrdersQueryHandler struct {
	reader      ports.OrderReader
	synthesizer services.OrderSynthesizer
	now         func() time.Time
}

func NewListOrdersQueryHandler(
	reader ports.OrderReader,
	synthesizer services.OrderSynthesizer,
	now func() time.Time,
) ListOrdersQueryHandler {
	if now == nil {
		now = time.Now
	}
	return ListOrdersQueryHandler{
		reader:      reader,
		synthesizer: synthesizer,
		now:         now,
	}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	filter := ports.OrderFilter{Status: query.Status()}
	stored, err := h.reader.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	backfillStatus := order.Completed
	if filter.Status != nil {
		backfillStatus = *filter.Status
	}

	synthesized, err := h.synthesizer.Backfill(len(stored), backfillStatus, h.now())
	if err != nil {
		return nil, err
	}

	views := make([]OrderView, 0, len(stored)+len(synthesized))
	for _, o := range stored {
		views = append(views, newOrderView(o, order.ProvenanceStore))
	}
	for _, o := range synthesized {
		views = append(views, newOrderView(o, order.ProvenanceSynthesized))
	}

	return views, nil
}
