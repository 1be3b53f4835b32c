package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Rakhulsr/go-marketplace/app/models"
	"github.com/Rakhulsr/go-marketplace/app/repositories"
	"github.com/Rakhulsr/go-marketplace/app/utils/calc"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DefaultCountry   = "USA"
	orderPlacedNote  = "Order placed"
	orderNumberChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

type PlaceOrderInput struct {
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod" validate:"required,oneof=cod card paypal bank_transfer"`
}

// OrderNotifier is told about every committed order. Failures are logged and
// never undo the order.
type OrderNotifier interface {
	OrderPlaced(ctx context.Context, order *models.Order, buyer *models.User) error
}

type OrderService struct {
	db            *gorm.DB
	cartRepo      repositories.CartRepository
	cartItemRepo  repositories.CartItemRepositoryImpl
	productRepo   repositories.ProductRepositoryImpl
	userRepo      repositories.UserRepositoryImpl
	orderRepo     repositories.OrderRepository
	orderItemRepo repositories.OrderItemRepository
	pricing       calc.Pricing
	notifier      OrderNotifier
}

func NewOrderService(
	db *gorm.DB,
	cartRepo repositories.CartRepository,
	cartItemRepo repositories.CartItemRepositoryImpl,
	productRepo repositories.ProductRepositoryImpl,
	userRepo repositories.UserRepositoryImpl,
	orderRepo repositories.OrderRepository,
	orderItemRepo repositories.OrderItemRepository,
	pricing calc.Pricing,
) *OrderService {
	return &OrderService{
		db:            db,
		cartRepo:      cartRepo,
		cartItemRepo:  cartItemRepo,
		productRepo:   productRepo,
		userRepo:      userRepo,
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		pricing:       pricing,
	}
}

func (s *OrderService) SetNotifier(n OrderNotifier) {
	s.notifier = n
}

// GenerateOrderNumber returns "ORD", the unix time in milliseconds and nine
// random upper-case alphanumerics.
func GenerateOrderNumber(now time.Time) string {
	id := uuid.New()
	// bytes 6 and 8 carry the uuid version and variant bits
	entropy := []byte{id[0], id[1], id[2], id[3], id[4], id[5], id[7], id[9], id[10]}

	var suffix strings.Builder
	for _, b := range entropy {
		suffix.WriteByte(orderNumberChars[int(b)%len(orderNumberChars)])
	}
	return fmt.Sprintf("ORD%d%s", now.UnixMilli(), suffix.String())
}

// PlaceOrder turns the user's cart into an order. Every step runs in one
// transaction: a failure at any point leaves stock, loyalty points and the
// cart exactly as they were.
func (s *OrderService) PlaceOrder(ctx context.Context, userID string, input PlaceOrderInput) (*models.Order, error) {
	input.ShippingAddress.FullName = strings.TrimSpace(input.ShippingAddress.FullName)
	if strings.TrimSpace(input.ShippingAddress.Country) == "" {
		input.ShippingAddress.Country = DefaultCountry
	}
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	now := time.Now()
	orderNumber := GenerateOrderNumber(now)

	var order *models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := s.cartRepo.GetByUserID(ctx, tx, userID)
		if err != nil {
			return persistence("load cart", err)
		}
		if cart == nil || len(cart.Items) == 0 {
			return emptyCart()
		}

		items := make([]models.OrderItem, 0, len(cart.Items))
		for _, cartItem := range cart.Items {
			product := cartItem.Product
			if product == nil || !product.IsActive {
				return notFound("Product %s is no longer available", cartItem.ProductID)
			}
			if product.Stock < cartItem.Quantity {
				return insufficientStock(product.ID, product.Name, product.Stock, cartItem.Quantity)
			}

			items = append(items, models.OrderItem{
				ProductID:        product.ID,
				SellerID:         product.SellerID,
				Name:             product.Name,
				Quantity:         cartItem.Quantity,
				Price:            cartItem.Price,
				SelectedVariants: cartItem.SelectedVariants,
			})
		}

		totals := calc.PriceOrder(calc.OrderItemsSubtotal(items), s.pricing.ShippingCost, s.pricing.TaxRate)

		placed := &models.Order{
			OrderNumber:     orderNumber,
			UserID:          userID,
			ShippingAddress: input.ShippingAddress,
			PaymentMethod:   input.PaymentMethod,
			Subtotal:        totals.Subtotal,
			ShippingCost:    totals.ShippingCost,
			Tax:             totals.Tax,
			Total:           totals.Total,
			Status:          models.OrderStatusPending,
		}
		if err := s.orderRepo.Create(ctx, tx, placed); err != nil {
			return persistence("create order", err)
		}

		for i := range items {
			items[i].OrderID = placed.ID
		}
		if err := s.orderItemRepo.BulkCreate(ctx, tx, items); err != nil {
			return persistence("create order items", err)
		}

		history := models.OrderStatusHistory{
			OrderID:   placed.ID,
			Status:    models.OrderStatusPending,
			Note:      orderPlacedNote,
			Timestamp: now,
		}
		if err := s.orderRepo.AppendStatusHistory(ctx, tx, &history); err != nil {
			return persistence("record order status", err)
		}

		for _, item := range items {
			debited, err := s.productRepo.DecrementStock(ctx, tx, item.ProductID, item.Quantity)
			if err != nil {
				return persistence("update product stock", err)
			}
			if !debited {
				available := 0
				if current, err := s.productRepo.GetByID(ctx, tx, item.ProductID); err == nil && current != nil {
					available = current.Stock
				}
				return insufficientStock(item.ProductID, item.Name, available, item.Quantity)
			}
		}

		points := calc.LoyaltyPoints(totals.Total, s.pricing.LoyaltyDivisor)
		if err := s.userRepo.AddLoyaltyPoints(ctx, tx, userID, points); err != nil {
			return persistence("award loyalty points", err)
		}

		if err := s.cartItemRepo.ClearCartItems(ctx, tx, cart.ID); err != nil {
			return persistence("clear cart", err)
		}
		if _, err := s.cartRepo.UpdateCartSummary(ctx, tx, cart.ID); err != nil {
			return persistence("update cart summary", err)
		}

		placed.Items = items
		placed.StatusHistory = []models.OrderStatusHistory{history}
		order = placed
		return nil
	})
	if err != nil {
		var svcErr *Error
		if errors.As(err, &svcErr) {
			log.Printf("OrderService.PlaceOrder: user %s: %v", userID, err)
			return nil, err
		}
		log.Printf("OrderService.PlaceOrder: commit failed for order %s (user %s), reconcile manually: %v", orderNumber, userID, err)
		return nil, persistence("commit order "+orderNumber, err)
	}

	log.Printf("OrderService.PlaceOrder: order %s placed for user %s, total %s", order.OrderNumber, userID, order.Total.StringFixed(2))
	s.notifyPlaced(ctx, order)
	return order, nil
}

func (s *OrderService) notifyPlaced(ctx context.Context, order *models.Order) {
	if s.notifier == nil {
		return
	}

	buyer, err := s.userRepo.FindByID(ctx, nil, order.UserID)
	if err != nil || buyer == nil {
		log.Printf("OrderService.notifyPlaced: buyer %s for order %s not loaded: %v", order.UserID, order.OrderNumber, err)
		return
	}
	if err := s.notifier.OrderPlaced(ctx, order, buyer); err != nil {
		log.Printf("OrderService.notifyPlaced: order %s: %v", order.OrderNumber, err)
	}
}
