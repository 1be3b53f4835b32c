package repositories

import (
	"context"
	"errors"

	"github.com/Rakhulsr/go-marketplace/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartItemRepository struct {
	DB *gorm.DB
}

type CartItemRepositoryImpl interface {
	Add(ctx context.Context, db *gorm.DB, item *models.CartItem) error
	Update(ctx context.Context, db *gorm.DB, item *models.CartItem) error
	Delete(ctx context.Context, db *gorm.DB, cartID, itemID string) (bool, error)
	GetByID(ctx context.Context, db *gorm.DB, cartID, itemID string) (*models.CartItem, error)
	GetCartAndProduct(ctx context.Context, db *gorm.DB, cartID, productID string) (*models.CartItem, error)
	ClearCartItems(ctx context.Context, tx *gorm.DB, cartID string) error
}

func NewCartItemRepository(db *gorm.DB) CartItemRepositoryImpl {
	return &CartItemRepository{db}
}

func (r *CartItemRepository) Add(ctx context.Context, db *gorm.DB, item *models.CartItem) error {
	return conn(r.DB, db).WithContext(ctx).Omit(clause.Associations).Create(item).Error
}

// Update rewrites quantity and captured price only.
func (r *CartItemRepository) Update(ctx context.Context, db *gorm.DB, item *models.CartItem) error {
	return conn(r.DB, db).WithContext(ctx).
		Model(&models.CartItem{}).
		Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"quantity": item.Quantity,
			"price":    item.Price,
		}).Error
}

// Delete reports whether a row matched.
func (r *CartItemRepository) Delete(ctx context.Context, db *gorm.DB, cartID, itemID string) (bool, error) {
	result := conn(r.DB, db).WithContext(ctx).
		Where("cart_id = ? AND id = ?", cartID, itemID).
		Delete(&models.CartItem{})
	return result.RowsAffected > 0, result.Error
}

func (r *CartItemRepository) GetByID(ctx context.Context, db *gorm.DB, cartID, itemID string) (*models.CartItem, error) {
	var item models.CartItem
	err := conn(r.DB, db).WithContext(ctx).
		Preload("Product").
		First(&item, "cart_id = ? AND id = ?", cartID, itemID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *CartItemRepository) GetCartAndProduct(ctx context.Context, db *gorm.DB, cartID, productID string) (*models.CartItem, error) {
	var item models.CartItem
	err := conn(r.DB, db).WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *CartItemRepository) ClearCartItems(ctx context.Context, tx *gorm.DB, cartID string) error {
	return conn(r.DB, tx).WithContext(ctx).Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
}
