package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Rakhulsr/go-marketplace/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *models.Order) error
	GetByID(ctx context.Context, db *gorm.DB, id string) (*models.Order, error)
	FindByCode(ctx context.Context, orderNumber string) (*models.Order, error)
	FindByUserID(ctx context.Context, userID string) ([]models.Order, error)
	FindBySellerID(ctx context.Context, sellerID string) ([]models.Order, error)
	FindAll(ctx context.Context, status string) ([]models.Order, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, orderID, status string) error
	AppendStatusHistory(ctx context.Context, db *gorm.DB, entry *models.OrderStatusHistory) error
}

type gormOrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &gormOrderRepository{db: db}
}

func withOrderDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_items.created_at ASC").Order("order_items.id ASC")
		}).
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_status_histories.timestamp ASC")
		})
}

// Create inserts the order row only; items and history are written by their
// own repositories inside the same transaction.
func (r *gormOrderRepository) Create(ctx context.Context, tx *gorm.DB, order *models.Order) error {
	return conn(r.db, tx).WithContext(ctx).Omit(clause.Associations).Create(order).Error
}

func (r *gormOrderRepository) GetByID(ctx context.Context, db *gorm.DB, id string) (*models.Order, error) {
	var order models.Order

	err := conn(r.db, db).WithContext(ctx).Scopes(withOrderDetails).First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

func (r *gormOrderRepository) FindByCode(ctx context.Context, orderNumber string) (*models.Order, error) {
	var order models.Order

	err := r.db.WithContext(ctx).Scopes(withOrderDetails).First(&order, "order_number = ?", orderNumber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *gormOrderRepository) FindByUserID(ctx context.Context, userID string) ([]models.Order, error) {
	var orders []models.Order

	err := r.db.WithContext(ctx).
		Scopes(withOrderDetails).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error

	if err != nil {
		return nil, err
	}
	return orders, nil
}

// FindBySellerID returns orders holding at least one of the seller's
// products, each carrying only that seller's items.
func (r *gormOrderRepository) FindBySellerID(ctx context.Context, sellerID string) ([]models.Order, error) {
	var orders []models.Order

	sellerOrders := r.db.Model(&models.OrderItem{}).Select("order_id").Where("seller_id = ?", sellerID)

	err := r.db.WithContext(ctx).
		Preload("Items", "seller_id = ?", sellerID).
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_status_histories.timestamp ASC")
		}).
		Where("id IN (?)", sellerOrders).
		Order("created_at DESC").
		Find(&orders).Error

	if err != nil {
		return nil, err
	}
	return orders, nil
}

// FindAll lists every order, newest first, optionally narrowed to one status.
func (r *gormOrderRepository) FindAll(ctx context.Context, status string) ([]models.Order, error) {
	var orders []models.Order

	query := r.db.WithContext(ctx).Scopes(withOrderDetails)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *gormOrderRepository) UpdateStatus(ctx context.Context, db *gorm.DB, orderID, status string) error {
	return conn(r.db, db).WithContext(ctx).Model(&models.Order{}).Where("id = ?", orderID).Updates(map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}).Error
}

func (r *gormOrderRepository) AppendStatusHistory(ctx context.Context, db *gorm.DB, entry *models.OrderStatusHistory) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	return conn(r.db, db).WithContext(ctx).Create(entry).Error
}
