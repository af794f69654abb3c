package queries

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// GetOrderDetailQueryHandler reads an order from the store, falling back to
// deriving it from the id. The same unknown id always yields the same order.
type GetOrderDetailQueryHandler struct {
	reader      ports.OrderReader
	synthesizer services.OrderSynthesizer
}

func NewGetOrderDetailQueryHandler(
	reader ports.OrderReader,
	synthesizer services.OrderSynthesizer,
) GetOrderDetailQueryHandler {
	return GetOrderDetailQueryHandler{
		reader:      reader,
		synthesizer: synthesizer,
	}
}

// Handle returns errs.ObjectNotFoundError when the id is neither stored nor derivable.
func (h GetOrderDetailQueryHandler) Handle(ctx context.Context, query GetOrderDetailQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	if id, err := kernel.ParseOrderID(query.OrderID()); err == nil {
		stored, getErr := h.reader.Get(ctx, id)
		switch {
		case getErr == nil:
			return newOrderView(stored, order.ProvenanceStore), nil
		case !errors.Is(getErr, errs.ErrObjectNotFound):
			return OrderView{}, getErr
		}
	}

	derived, err := h.synthesizer.Detail(query.OrderID())
	if err != nil {
		return OrderView{}, err
	}
	return newOrderView(derived, order.ProvenanceSynthesized), nil
}
