package http

import (
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// timeLayout is the wall-clock layout of every timestamp on the wire.
const timeLayout = "2006-01-02 15:04:05"

// Envelope wraps every JSON response. Code mirrors the business outcome and
// is independent of the HTTP status.
type Envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

type AddressDTO struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Province string `json:"province"`
	City     string `json:"city"`
	District string `json:"district"`
	Detail   string `json:"detail"`
}

type LineItemDTO struct {
	ID     int64   `json:"id"`
	Title  string  `json:"title"`
	Price  float64 `json:"price"`
	Count  int     `json:"count"`
	ImgURL string  `json:"imgUrl"`
	Specs  string  `json:"specs"`
}

type OrderDTO struct {
	ID           string        `json:"id"`
	Status       int           `json:"status"`
	StatusText   string        `json:"statusText"`
	TotalPrice   float64       `json:"totalPrice"`
	CreateTime   string        `json:"createTime"`
	PayTime      *string       `json:"payTime"`
	DeliveryTime *string       `json:"deliveryTime"`
	ReceiveTime  *string       `json:"receiveTime"`
	Address      AddressDTO    `json:"address"`
	Products     []LineItemDTO `json:"products"`
	DeliveryType string        `json:"deliveryType"`
	PaymentType  string        `json:"paymentType"`
	Remark       string        `json:"remark"`
	Provenance   string        `json:"provenance"`
}

type OrderListDTO struct {
	List  []OrderDTO `json:"list"`
	Total int        `json:"total"`
}

type TransitionDTO struct {
	ID           string  `json:"id"`
	Status       int     `json:"status"`
	StatusText   string  `json:"statusText"`
	PayTime      *string `json:"payTime,omitempty"`
	DeliveryTime *string `json:"deliveryTime,omitempty"`
	ReceiveTime  *string `json:"receiveTime,omitempty"`
	Provenance   string  `json:"provenance"`
}

type CancelDTO struct {
	ID         string `json:"id"`
	Provenance string `json:"provenance"`
}

type StatusCountDTO struct {
	Status     int    `json:"status"`
	StatusText string `json:"statusText"`
	Count      int    `json:"count"`
}

type CountDTO struct {
	Total    int              `json:"total"`
	ByStatus []StatusCountDTO `json:"byStatus"`
}

// CreateOrderRequest is the body of POST /api/order/create. Product fields
// other than id and count are optional.
type CreateOrderRequest struct {
	Address      AddressDTO           `json:"address"`
	Products     []CreateOrderLineDTO `json:"products"`
	DeliveryType string               `json:"deliveryType"`
	PaymentType  string               `json:"paymentType"`
	Remark       string               `json:"remark"`
}

type CreateOrderLineDTO struct {
	ID     int64            `json:"id"`
	Title  string           `json:"title"`
	Price  *decimal.Decimal `json:"price"`
	Count  int              `json:"count"`
	ImgURL string           `json:"imgUrl"`
	Specs  string           `json:"specs"`
}

func (r CreateOrderRequest) toCommand() (commands.CreateOrderCommand, error) {
	lines := make([]commands.OrderLine, 0, len(r.Products))
	for _, p := range r.Products {
		lines = append(lines, commands.OrderLine{
			ProductID: p.ID,
			Title:     p.Title,
			Price:     p.Price,
			Count:     p.Count,
			ImgURL:    p.ImgURL,
			Specs:     p.Specs,
		})
	}

	return commands.NewCreateOrderCommand(
		order.Address(r.Address),
		lines,
		order.Checkout{DeliveryType: r.DeliveryType, PaymentType: r.PaymentType, Remark: r.Remark},
	)
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(timeLayout)
	return &s
}

func toOrderDTO(v queries.OrderView) OrderDTO {
	products := make([]LineItemDTO, 0, len(v.Products))
	for _, p := range v.Products {
		products = append(products, LineItemDTO{
			ID:     p.ID,
			Title:  p.Title,
			Price:  p.Price.Float64(),
			Count:  p.Count,
			ImgURL: p.ImgURL,
			Specs:  p.Specs,
		})
	}

	return OrderDTO{
		ID:           v.ID,
		Status:       int(v.Status),
		StatusText:   v.StatusText,
		TotalPrice:   v.TotalPrice.Float64(),
		CreateTime:   v.CreateTime.Format(timeLayout),
		PayTime:      formatTime(v.PayTime),
		DeliveryTime: formatTime(v.DeliveryTime),
		ReceiveTime:  formatTime(v.ReceiveTime),
		Address:      AddressDTO(v.Address),
		Products:     products,
		DeliveryType: v.Checkout.DeliveryType,
		PaymentType:  v.Checkout.PaymentType,
		Remark:       v.Checkout.Remark,
		Provenance:   string(v.Provenance),
	}
}

func toCreatedDTO(o *order.Order) OrderDTO {
	s := o.Snapshot()
	return toOrderDTO(queries.OrderView{
		ID:           s.ID.String(),
		Status:       s.Status,
		StatusText:   s.Status.Text(),
		TotalPrice:   s.TotalPrice,
		CreateTime:   s.CreateTime,
		PayTime:      s.PayTime,
		DeliveryTime: s.DeliveryTime,
		ReceiveTime:  s.ReceiveTime,
		Address:      s.Address,
		Products:     s.Products,
		Checkout:     s.Checkout,
		Provenance:   order.ProvenanceStore,
	})
}

// toTransitionDTO places the stamped time under the field the event sets.
func toTransitionDTO(r commands.TransitionResult, event order.Event) TransitionDTO {
	dto := TransitionDTO{
		ID:         r.OrderID,
		Status:     int(r.Status),
		StatusText: r.StatusText,
		Provenance: string(r.Provenance),
	}

	switch event {
	case order.EventPay:
		dto.PayTime = formatTime(r.At)
	case order.EventDispatch:
		dto.DeliveryTime = formatTime(r.At)
	case order.EventConfirmReceipt:
		dto.ReceiveTime = formatTime(r.At)
	}
	return dto
}

func toCountDTO(r queries.CountOrdersQueryResponse) CountDTO {
	dto := CountDTO{Total: r.Total, ByStatus: make([]StatusCountDTO, 0, len(r.ByStatus))}
	for _, c := range r.ByStatus {
		dto.ByStatus = append(dto.ByStatus, StatusCountDTO{
			Status:     int(c.Status),
			StatusText: c.StatusText,
			Count:      c.Count,
		})
	}
	return dto
}
