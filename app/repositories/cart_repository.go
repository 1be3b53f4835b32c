package repositories

import (
	"context"
	"errors"

	"github.com/Rakhulsr/go-marketplace/app/models"
	"github.com/Rakhulsr/go-marketplace/app/utils/calc"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CartRepository interface {
	GetByUserID(ctx context.Context, db *gorm.DB, userID string) (*models.Cart, error)
	GetOrCreateByUserID(ctx context.Context, db *gorm.DB, userID string) (*models.Cart, error)
	UpdateCartSummary(ctx context.Context, db *gorm.DB, cartID string) (decimal.Decimal, error)
	GetCartItemCount(ctx context.Context, db *gorm.DB, cartID string) (int, error)
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db}
}

func withItems(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("cart_items.created_at ASC").Order("cart_items.id ASC")
		}).
		Preload("Items.Product")
}

// GetByUserID loads the cart with its items and their products. Items whose
// product was deleted come back with a nil Product.
func (r *cartRepository) GetByUserID(ctx context.Context, db *gorm.DB, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := conn(r.db, db).WithContext(ctx).
		Scopes(withItems).
		Where("user_id = ?", userID).
		First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

func (r *cartRepository) GetOrCreateByUserID(ctx context.Context, db *gorm.DB, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := conn(r.db, db).WithContext(ctx).
		Where(models.Cart{UserID: userID}).
		FirstOrCreate(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// UpdateCartSummary recomputes the subtotal from the stored items and writes
// it back. It returns the new subtotal.
func (r *cartRepository) UpdateCartSummary(ctx context.Context, db *gorm.DB, cartID string) (decimal.Decimal, error) {
	var items []models.CartItem
	tx := conn(r.db, db).WithContext(ctx)

	if err := tx.Where("cart_id = ?", cartID).Find(&items).Error; err != nil {
		return decimal.Zero, err
	}

	subtotal := calc.CartSubtotal(items)
	err := tx.Model(&models.Cart{}).
		Where("id = ?", cartID).
		Updates(map[string]interface{}{"subtotal": subtotal}).Error
	if err != nil {
		return decimal.Zero, err
	}
	return subtotal, nil
}

// GetCartItemCount is the number of units in the cart, summed over lines.
func (r *cartRepository) GetCartItemCount(ctx context.Context, db *gorm.DB, cartID string) (int, error) {
	var count int64
	err := conn(r.db, db).WithContext(ctx).
		Model(&models.CartItem{}).
		Where("cart_id = ?", cartID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&count).Error

	return int(count), err
}
