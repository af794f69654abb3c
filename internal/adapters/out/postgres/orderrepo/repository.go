package orderrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository and ports.OrderReader using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

var (
	_ ports.OrderRepository = (*GormOrderRepository)(nil)
	_ ports.OrderReader     = (*GormOrderRepository)(nil)
)

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add inserts the order together with its line items.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update writes the lifecycle columns. Line items and totals never change
// after creation and are left as stored.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("status", "pay_time", "delivery_time", "receive_time").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", dto.ID)
	}
	return nil
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.OrderID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.withProducts(ctx).First(&dto, "id = ?", id.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Delete removes the order and its line items.
func (r *GormOrderRepository) Delete(ctx context.Context, id kernel.OrderID) error {
	db := r.db.WithContext(ctx)

	if err := db.Where("order_id = ?", id.String()).Delete(&LineItemDTO{}).Error; err != nil {
		return err
	}

	result := db.Where("id = ?", id.String()).Delete(&OrderDTO{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	return nil
}

func (r *GormOrderRepository) List(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	query := r.withProducts(ctx).Order("position")
	if filter.Status != nil {
		query = query.Where("status = ?", int(*filter.Status))
	}

	var dtos []OrderDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

func (r *GormOrderRepository) CountByStatus(ctx context.Context) (map[order.Status]int, error) {
	var rows []struct {
		Status int
		Total  int
	}
	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Select("status, count(*) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[order.Status]int, len(order.AllStatuses()))
	for _, st := range order.AllStatuses() {
		counts[st] = 0
	}
	for _, row := range rows {
		counts[order.Status(row.Status)] = row.Total
	}
	return counts, nil
}

func (r *GormOrderRepository) withProducts(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Products", func(db *gorm.DB) *gorm.DB {
		return db.Order("line")
	})
}
