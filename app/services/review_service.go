package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/Rakhulsr/go-marketplace/app/models"
	"github.com/Rakhulsr/go-marketplace/app/repositories"
	"github.com/Rakhulsr/go-marketplace/app/utils/calc"
	"gorm.io/gorm"
)

type AddReviewInput struct {
	ProductID string `json:"productId" validate:"required"`
	Rating    int    `json:"rating" validate:"min=1,max=5"`
	Title     string `json:"title" validate:"max=255"`
	Comment   string `json:"comment" validate:"required"`
	OrderID   string `json:"orderId"`
}

type ReviewService struct {
	db          *gorm.DB
	reviewRepo  repositories.ReviewRepository
	productRepo repositories.ProductRepositoryImpl
	orderRepo   repositories.OrderRepository
}

func NewReviewService(db *gorm.DB, reviewRepo repositories.ReviewRepository, productRepo repositories.ProductRepositoryImpl, orderRepo repositories.OrderRepository) *ReviewService {
	return &ReviewService{
		db:          db,
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
	}
}

// AddReview stores one review per user and product, then recomputes the
// product's rating aggregate from every review it has.
func (s *ReviewService) AddReview(ctx context.Context, userID string, input AddReviewInput) (*models.Review, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Comment = strings.TrimSpace(input.Comment)
	input.OrderID = strings.TrimSpace(input.OrderID)
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	var review *models.Review
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		product, err := s.productRepo.GetByID(ctx, tx, input.ProductID)
		if err != nil {
			return persistence("load product", err)
		}
		if product == nil {
			return notFound("Product not found")
		}

		exists, err := s.reviewRepo.Exists(ctx, tx, product.ID, userID)
		if err != nil {
			return persistence("check existing review", err)
		}
		if exists {
			return duplicateReview()
		}

		verified, err := s.isVerifiedPurchase(ctx, tx, userID, product.ID, input.OrderID)
		if err != nil {
			return err
		}

		created := &models.Review{
			ProductID:          product.ID,
			UserID:             userID,
			Rating:             input.Rating,
			Title:              input.Title,
			Comment:            input.Comment,
			IsVerifiedPurchase: verified,
		}
		if input.OrderID != "" {
			orderID := input.OrderID
			created.OrderID = &orderID
		}

		if err := s.reviewRepo.Create(ctx, tx, created); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return duplicateReview()
			}
			return persistence("create review", err)
		}

		ratings, err := s.reviewRepo.RatingsForProduct(ctx, tx, product.ID)
		if err != nil {
			return persistence("load product ratings", err)
		}
		summary := calc.SummarizeRatings(ratings)
		if err := s.productRepo.UpdateRating(ctx, tx, product.ID, summary.Average, summary.Count); err != nil {
			return persistence("update product rating", err)
		}

		review = created
		return nil
	})
	if err != nil {
		log.Printf("ReviewService.AddReview: user %s product %s: %v", userID, input.ProductID, err)
		return nil, err
	}
	return review, nil
}

// isVerifiedPurchase holds only for a delivered order of the reviewer that
// contains the product.
func (s *ReviewService) isVerifiedPurchase(ctx context.Context, tx *gorm.DB, userID, productID, orderID string) (bool, error) {
	if orderID == "" {
		return false, nil
	}

	order, err := s.orderRepo.GetByID(ctx, tx, orderID)
	if err != nil {
		return false, persistence("load order", err)
	}
	if order == nil || order.UserID != userID {
		return false, nil
	}
	return order.Status == models.OrderStatusDelivered && order.ContainsProduct(productID), nil
}

func (s *ReviewService) MarkHelpful(ctx context.Context, reviewID string) (*models.Review, error) {
	ok, err := s.reviewRepo.IncrementHelpful(ctx, reviewID)
	if err != nil {
		log.Printf("ReviewService.MarkHelpful: review %s: %v", reviewID, err)
		return nil, persistence("mark review helpful", err)
	}
	if !ok {
		return nil, notFound("Review not found")
	}

	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, persistence("load review", err)
	}
	if review == nil {
		return nil, notFound("Review not found")
	}
	return review, nil
}

func (s *ReviewService) ListForProduct(ctx context.Context, productID string) ([]models.Review, error) {
	reviews, err := s.reviewRepo.GetByProductID(ctx, productID)
	if err != nil {
		log.Printf("ReviewService.ListForProduct: product %s: %v", productID, err)
		return nil, persistence("list reviews", err)
	}
	return reviews, nil
}
