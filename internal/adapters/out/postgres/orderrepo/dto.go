// Package orderrepo maps order aggregates to relational tables through GORM.
// Orders live in "orders", their line items in "order_items".
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// OrderDTO is the row of an order. Position is assigned by the database and
// keeps lists in insertion order.
type OrderDTO struct {
	ID           string          `gorm:"type:varchar(40);primaryKey"`
	Position     int64           `gorm:"autoIncrement;uniqueIndex"`
	Status       int             `gorm:"index"`
	TotalPrice   decimal.Decimal `gorm:"type:numeric(14,2)"`
	CreateTime   time.Time
	PayTime      *time.Time
	DeliveryTime *time.Time
	ReceiveTime  *time.Time
	Address      AddressDTO `gorm:"embedded;embeddedPrefix:address_"`
	DeliveryType string
	PaymentType  string
	Remark       string
	Products     []LineItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

type AddressDTO struct {
	Name     string
	Phone    string
	Province string
	City     string
	District string
	Detail   string
}

// LineItemDTO is one product row of an order. Line is the 0-based position
// within the order.
type LineItemDTO struct {
	RowID     uint   `gorm:"primaryKey"`
	OrderID   string `gorm:"type:varchar(40);index"`
	Line      int
	ProductID int64
	Title     string
	Price     decimal.Decimal `gorm:"type:numeric(14,2)"`
	Count     int
	ImgURL    string
	Specs     string
}

func (LineItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	id := aggregate.ID().String()
	address := aggregate.Address()
	checkout := aggregate.Checkout()

	products := make([]LineItemDTO, 0, len(aggregate.Products()))
	for i, item := range aggregate.Products() {
		products = append(products, LineItemDTO{
			OrderID:   id,
			Line:      i,
			ProductID: item.ID,
			Title:     item.Title,
			Price:     item.Price.Decimal(),
			Count:     item.Count,
			ImgURL:    item.ImgURL,
			Specs:     item.Specs,
		})
	}

	return OrderDTO{
		ID:           id,
		Status:       int(aggregate.Status()),
		TotalPrice:   aggregate.TotalPrice().Decimal(),
		CreateTime:   aggregate.CreateTime(),
		PayTime:      aggregate.PayTime(),
		DeliveryTime: aggregate.DeliveryTime(),
		ReceiveTime:  aggregate.ReceiveTime(),
		Address: AddressDTO{
			Name:     address.Name,
			Phone:    address.Phone,
			Province: address.Province,
			City:     address.City,
			District: address.District,
			Detail:   address.Detail,
		},
		DeliveryType: checkout.DeliveryType,
		PaymentType:  checkout.PaymentType,
		Remark:       checkout.Remark,
		Products:     products,
	}
}

// toDomain rebuilds the aggregate with RestoreOrder, which rejects rows whose
// timestamps disagree with their status.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.ParseOrderID(dto.ID)
	if err != nil {
		return nil, err
	}

	total, err := kernel.NewMoney(dto.TotalPrice)
	if err != nil {
		return nil, err
	}

	products := make([]order.LineItem, 0, len(dto.Products))
	for _, p := range dto.Products {
		price, priceErr := kernel.NewMoney(p.Price)
		if priceErr != nil {
			return nil, priceErr
		}
		products = append(products, order.LineItem{
			ID:     p.ProductID,
			Title:  p.Title,
			Price:  price,
			Count:  p.Count,
			ImgURL: p.ImgURL,
			Specs:  p.Specs,
		})
	}

	return order.RestoreOrder(order.Snapshot{
		ID:           id,
		Status:       order.Status(dto.Status),
		TotalPrice:   total,
		CreateTime:   dto.CreateTime,
		PayTime:      dto.PayTime,
		DeliveryTime: dto.DeliveryTime,
		ReceiveTime:  dto.ReceiveTime,
		Address: order.Address{
			Name:     dto.Address.Name,
			Phone:    dto.Address.Phone,
			Province: dto.Address.Province,
			City:     dto.Address.City,
			District: dto.Address.District,
			Detail:   dto.Address.Detail,
		},
		Products: products,
		Checkout: order.Checkout{
			DeliveryType: dto.DeliveryType,
			PaymentType:  dto.PaymentType,
			Remark:       dto.Remark,
		},
	})
}

func toDomainList(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
