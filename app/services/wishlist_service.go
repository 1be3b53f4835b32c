package services

import (
	"context"
	"log"

	"github.com/Rakhulsr/go-marketplace/app/models"
	"github.com/Rakhulsr/go-marketplace/app/repositories"
)

type WishlistService struct {
	userRepo    repositories.UserRepositoryImpl
	productRepo repositories.ProductRepositoryImpl
}

func NewWishlistService(userRepo repositories.UserRepositoryImpl, productRepo repositories.ProductRepositoryImpl) *WishlistService {
	return &WishlistService{userRepo: userRepo, productRepo: productRepo}
}

// Add is idempotent: adding a product twice keeps a single entry.
func (s *WishlistService) Add(ctx context.Context, userID, productID string) error {
	user, err := s.userRepo.FindByID(ctx, nil, userID)
	if err != nil {
		return persistence("load user", err)
	}
	if user == nil {
		return notFound("User not found")
	}

	product, err := s.productRepo.GetByID(ctx, nil, productID)
	if err != nil {
		return persistence("load product", err)
	}
	if product == nil || !product.IsActive {
		return notFound("Product not found")
	}

	exists, err := s.userRepo.HasWishlistItem(ctx, userID, productID)
	if err != nil {
		return persistence("check wishlist", err)
	}
	if exists {
		return nil
	}

	if err := s.userRepo.AddToWishlist(ctx, user, product); err != nil {
		log.Printf("WishlistService.Add: user %s product %s: %v", userID, productID, err)
		return persistence("add to wishlist", err)
	}
	return nil
}

func (s *WishlistService) Remove(ctx context.Context, userID, productID string) error {
	if err := s.userRepo.RemoveFromWishlist(ctx, userID, productID); err != nil {
		log.Printf("WishlistService.Remove: user %s product %s: %v", userID, productID, err)
		return persistence("remove from wishlist", err)
	}
	return nil
}

func (s *WishlistService) List(ctx context.Context, userID string) ([]models.Product, error) {
	products, err := s.userRepo.GetWishlist(ctx, userID)
	if err != nil {
		log.Printf("WishlistService.List: user %s: %v", userID, err)
		return nil, persistence("load wishlist", err)
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}
