package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// StatusCount is the number of stored orders in one status.
type StatusCount struct {
	Status     order.Status
	StatusText string
	Count      int
}

// CountOrdersQueryResponse lists every status in lifecycle order.
type CountOrdersQueryResponse struct {
	Total    int
	ByStatus []StatusCount
}

type CountOrdersQueryHandler struct {
	reader ports.OrderReader
}

func NewCountOrdersQueryHandler(reader ports.OrderReader) CountOrdersQueryHandler {
	return CountOrdersQueryHandler{reader: reader}
}

func (h CountOrdersQueryHandler) Handle(ctx context.Context, query CountOrdersQuery) (CountOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return CountOrdersQueryResponse{}, err
	}

	counts, err := h.reader.CountByStatus(ctx)
	if err != nil {
		return CountOrdersQueryResponse{}, err
	}

	response := CountOrdersQueryResponse{
		ByStatus: make([]StatusCount, 0, len(order.AllStatuses())),
	}
	for _, status := range order.AllStatuses() {
		n := counts[status]
		response.Total += n
		response.ByStatus = append(response.ByStatus, StatusCount{
			Status:     status,
			StatusText: status.Text(),
			Count:      n,
		})
	}
	return response, nil
}
