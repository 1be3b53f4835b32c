package services

import (
	"context"
	"log"

	"github.com/Rakhulsr/go-marketplace/app/models"
	"github.com/Rakhulsr/go-marketplace/app/repositories"
	"github.com/Rakhulsr/go-marketplace/app/utils/calc"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CartService struct {
	db           *gorm.DB
	cartRepo     repositories.CartRepository
	cartItemRepo repositories.CartItemRepositoryImpl
	productRepo  repositories.ProductRepositoryImpl
}

func NewCartService(db *gorm.DB, cartRepo repositories.CartRepository, cartItemRepo repositories.CartItemRepositoryImpl, productRepo repositories.ProductRepositoryImpl) *CartService {
	return &CartService{
		db:           db,
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
	}
}

type variantList struct {
	Variants []models.Variant `json:"variants" validate:"dive"`
}

// AddItem puts qty units of a product in the user's cart, creating the cart
// on first use. Adding a product already in the cart sums the quantities and
// refreshes the captured price.
func (s *CartService) AddItem(ctx context.Context, userID, productID string, qty int, variants []models.Variant) (*models.Cart, int, error) {
	if qty < 1 {
		return nil, 0, invalid("quantity", "quantity must be at least 1")
	}
	if err := validateStruct(variantList{Variants: variants}); err != nil {
		return nil, 0, err
	}

	var cart *models.Cart
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		product, err := s.productRepo.GetByID(ctx, tx, productID)
		if err != nil {
			return persistence("load product", err)
		}
		if product == nil || !product.IsActive {
			return notFound("Product not found")
		}
		if product.Stock < qty {
			return insufficientStock(product.ID, product.Name, product.Stock, qty)
		}

		current, err := s.cartRepo.GetOrCreateByUserID(ctx, tx, userID)
		if err != nil {
			return persistence("get or create cart", err)
		}

		price := calc.ProductEffectivePrice(product)

		existing, err := s.cartItemRepo.GetCartAndProduct(ctx, tx, current.ID, productID)
		if err != nil {
			return persistence("check existing cart item", err)
		}

		if existing != nil {
			existing.Quantity += qty
			existing.Price = price
			if err := s.cartItemRepo.Update(ctx, tx, existing); err != nil {
				return persistence("update cart item", err)
			}
		} else {
			item := &models.CartItem{
				CartID:           current.ID,
				ProductID:        productID,
				Quantity:         qty,
				Price:            price,
				SelectedVariants: variants,
			}
			if err := s.cartItemRepo.Add(ctx, tx, item); err != nil {
				return persistence("add cart item", err)
			}
		}

		if _, err := s.cartRepo.UpdateCartSummary(ctx, tx, current.ID); err != nil {
			return persistence("update cart summary", err)
		}

		cart, err = s.cartRepo.GetByUserID(ctx, tx, userID)
		if err != nil {
			return persistence("reload cart", err)
		}
		return nil
	})
	if err != nil {
		log.Printf("CartService.AddItem: user %s product %s: %v", userID, productID, err)
		return nil, 0, err
	}

	normalizeCart(cart, userID)
	return cart, cart.ItemCount(), nil
}

// UpdateItem sets the quantity of one line. A quantity below 1 removes the
// line. The captured price is left as it was.
func (s *CartService) UpdateItem(ctx context.Context, userID, itemID string, qty int) (decimal.Decimal, int, error) {
	if qty < 1 {
		return s.removeItem(ctx, userID, itemID)
	}

	var subtotal decimal.Decimal
	var count int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := s.cartRepo.GetByUserID(ctx, tx, userID)
		if err != nil {
			return persistence("load cart", err)
		}
		if cart == nil {
			return notFound("Cart not found")
		}

		item, err := s.cartItemRepo.GetByID(ctx, tx, cart.ID, itemID)
		if err != nil {
			return persistence("load cart item", err)
		}
		if item == nil {
			return notFound("Item not found")
		}
		if item.Product == nil {
			return notFound("Product not found")
		}
		if item.Product.Stock < qty {
			return insufficientStock(item.Product.ID, item.Product.Name, item.Product.Stock, qty)
		}

		item.Quantity = qty
		if err := s.cartItemRepo.Update(ctx, tx, item); err != nil {
			return persistence("update cart item quantity", err)
		}

		subtotal, err = s.cartRepo.UpdateCartSummary(ctx, tx, cart.ID)
		if err != nil {
			return persistence("update cart summary", err)
		}

		count, err = s.cartRepo.GetCartItemCount(ctx, tx, cart.ID)
		if err != nil {
			return persistence("count cart items", err)
		}
		return nil
	})
	if err != nil {
		log.Printf("CartService.UpdateItem: user %s item %s: %v", userID, itemID, err)
		return decimal.Zero, 0, err
	}
	return subtotal, count, nil
}

// RemoveItem drops one line from the cart. An id that is not in the cart is
// ignored.
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID string) (int, error) {
	_, count, err := s.removeItem(ctx, userID, itemID)
	return count, err
}

func (s *CartService) removeItem(ctx context.Context, userID, itemID string) (decimal.Decimal, int, error) {
	var subtotal decimal.Decimal
	var count int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := s.cartRepo.GetByUserID(ctx, tx, userID)
		if err != nil {
			return persistence("load cart", err)
		}
		if cart == nil {
			return notFound("Cart not found")
		}

		if _, err := s.cartItemRepo.Delete(ctx, tx, cart.ID, itemID); err != nil {
			return persistence("remove item from cart", err)
		}

		subtotal, err = s.cartRepo.UpdateCartSummary(ctx, tx, cart.ID)
		if err != nil {
			return persistence("update cart summary", err)
		}

		count, err = s.cartRepo.GetCartItemCount(ctx, tx, cart.ID)
		if err != nil {
			return persistence("count cart items", err)
		}
		return nil
	})
	if err != nil {
		log.Printf("CartService.RemoveItem: user %s item %s: %v", userID, itemID, err)
		return decimal.Zero, 0, err
	}
	return subtotal, count, nil
}

// Clear empties the cart. A user without a cart is left as is.
func (s *CartService) Clear(ctx context.Context, userID string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := s.cartRepo.GetByUserID(ctx, tx, userID)
		if err != nil {
			return persistence("load cart", err)
		}
		if cart == nil {
			return nil
		}

		if err := s.cartItemRepo.ClearCartItems(ctx, tx, cart.ID); err != nil {
			return persistence("clear cart items", err)
		}
		if _, err := s.cartRepo.UpdateCartSummary(ctx, tx, cart.ID); err != nil {
			return persistence("update cart summary", err)
		}
		return nil
	})
	if err != nil {
		log.Printf("CartService.Clear: user %s: %v", userID, err)
	}
	return err
}

// GetCart never returns a nil cart: a user who has not added anything gets an
// empty one that is not persisted.
func (s *CartService) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	cart, err := s.cartRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		log.Printf("CartService.GetCart: user %s: %v", userID, err)
		return nil, persistence("load cart", err)
	}
	if cart == nil {
		cart = &models.Cart{UserID: userID, Subtotal: decimal.Zero}
	}
	normalizeCart(cart, userID)
	return cart, nil
}

// CartItemCount is used by the cart badge middleware.
func (s *CartService) CartItemCount(ctx context.Context, userID string) (int, error) {
	cart, err := s.cartRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return 0, persistence("load cart", err)
	}
	if cart == nil {
		return 0, nil
	}
	return cart.ItemCount(), nil
}

func normalizeCart(cart *models.Cart, userID string) {
	if cart.UserID == "" {
		cart.UserID = userID
	}
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
}
