package repositories

import (
	"context"

	"github.com/Rakhulsr/go-marketplace/app/models"
	"gorm.io/gorm"
)

type OrderItemRepository interface {
	BulkCreate(ctx context.Context, db *gorm.DB, items []models.OrderItem) error
	GetByOrderID(ctx context.Context, db *gorm.DB, orderID string) ([]models.OrderItem, error)
}

type OrderItemRepositoryImpl struct {
	DB *gorm.DB
}

func NewOrderItemRepository(db *gorm.DB) OrderItemRepository {
	return &OrderItemRepositoryImpl{DB: db}
}

func (r *OrderItemRepositoryImpl) BulkCreate(ctx context.Context, db *gorm.DB, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return conn(r.DB, db).WithContext(ctx).Create(&items).Error
}

func (r *OrderItemRepositoryImpl) GetByOrderID(ctx context.Context, db *gorm.DB, orderID string) ([]models.OrderItem, error) {
	var items []models.OrderItem
	err := conn(r.DB, db).WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
