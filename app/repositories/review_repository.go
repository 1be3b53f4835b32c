package repositories

import (
	"context"
	"errors"

	"github.com/Rakhulsr/go-marketplace/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReviewRepository interface {
	Exists(ctx context.Context, db *gorm.DB, productID, userID string) (bool, error)
	Create(ctx context.Context, db *gorm.DB, review *models.Review) error
	GetByID(ctx context.Context, id string) (*models.Review, error)
	GetByProductID(ctx context.Context, productID string) ([]models.Review, error)
	RatingsForProduct(ctx context.Context, db *gorm.DB, productID string) ([]int, error)
	IncrementHelpful(ctx context.Context, id string) (bool, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Exists(ctx context.Context, db *gorm.DB, productID, userID string) (bool, error) {
	var count int64
	err := conn(r.db, db).WithContext(ctx).
		Model(&models.Review{}).
		Where("product_id = ? AND user_id = ?", productID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *reviewRepository) Create(ctx context.Context, db *gorm.DB, review *models.Review) error {
	return conn(r.db, db).WithContext(ctx).Omit(clause.Associations).Create(review).Error
}

func (r *reviewRepository) GetByID(ctx context.Context, id string) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).First(&review, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) GetByProductID(ctx context.Context, productID string) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) RatingsForProduct(ctx context.Context, db *gorm.DB, productID string) ([]int, error) {
	var ratings []int
	err := conn(r.db, db).WithContext(ctx).
		Model(&models.Review{}).
		Where("product_id = ?", productID).
		Pluck("rating", &ratings).Error
	return ratings, err
}

func (r *reviewRepository) IncrementHelpful(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("id = ?", id).
		UpdateColumn("helpful", gorm.Expr("helpful + ?", 1))
	return result.RowsAffected > 0, result.Error
}
