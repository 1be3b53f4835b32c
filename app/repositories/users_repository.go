package repositories

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/Rakhulsr/go-marketplace/app/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserRepositoryImpl interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, db *gorm.DB, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	AddLoyaltyPoints(ctx context.Context, db *gorm.DB, userID string, points int) error
	HasWishlistItem(ctx context.Context, userID, productID string) (bool, error)
	AddToWishlist(ctx context.Context, user *models.User, product *models.Product) error
	RemoveFromWishlist(ctx context.Context, userID, productID string) error
	GetWishlist(ctx context.Context, userID string) ([]models.Product, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepositoryImpl {
	return &userRepository{db}
}

// Create hashes the plain-text password held in user.Password before insert.
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	hashPass, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("UserRepository.Create: failed to hash password for %s: %v", user.Email, err)
		return err
	}
	user.Password = string(hashPass)

	if user.Role == "" {
		user.Role = models.RoleCustomer
	}

	return r.db.WithContext(ctx).Omit("Wishlist").Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	err := conn(r.db, db).WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) AddLoyaltyPoints(ctx context.Context, db *gorm.DB, userID string, points int) error {
	if points == 0 {
		return nil
	}
	result := conn(r.db, db).WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("loyalty_points", gorm.Expr("loyalty_points + ?", points))
	if result.Error != nil {
		return fmt.Errorf("failed to add loyalty points for user %s: %w", userID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to add loyalty points: user %s: %w", userID, gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *userRepository) HasWishlistItem(ctx context.Context, userID, productID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("user_wishlists").
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error
	return count > 0, err
}

func (r *userRepository) AddToWishlist(ctx context.Context, user *models.User, product *models.Product) error {
	return r.db.WithContext(ctx).Model(user).Association("Wishlist").Append(product)
}

func (r *userRepository) RemoveFromWishlist(ctx context.Context, userID, productID string) error {
	return r.db.WithContext(ctx).
		Model(&models.User{ID: userID}).
		Association("Wishlist").
		Delete(&models.Product{ID: productID})
}

func (r *userRepository) GetWishlist(ctx context.Context, userID string) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Model(&models.User{ID: userID}).
		Association("Wishlist").
		Find(&products)
	if err != nil {
		return nil, fmt.Errorf("failed to load wishlist: %w", err)
	}
	return products, nil
}
