package services

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/Rakhulsr/go-marketplace/app/models"
	"github.com/Rakhulsr/go-marketplace/app/utils/format"
	"gorm.io/gorm"
)

var orderTransitions = map[string][]string{
	models.OrderStatusPending:    {models.OrderStatusProcessing, models.OrderStatusCancelled},
	models.OrderStatusProcessing: {models.OrderStatusShipped, models.OrderStatusCancelled},
	models.OrderStatusShipped:    {models.OrderStatusDelivered, models.OrderStatusCancelled},
}

func CanTransition(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// GetOrder answers NotFound both for unknown ids and for orders placed by
// someone else.
func (s *OrderService) GetOrder(ctx context.Context, userID, orderID string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, nil, orderID)
	if err != nil {
		log.Printf("OrderService.GetOrder: order %s: %v", orderID, err)
		return nil, persistence("load order", err)
	}
	if order == nil || order.UserID != userID {
		return nil, notFound("Order not found")
	}
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, userID string) ([]models.Order, error) {
	orders, err := s.orderRepo.FindByUserID(ctx, userID)
	if err != nil {
		log.Printf("OrderService.ListOrders: user %s: %v", userID, err)
		return nil, persistence("list orders", err)
	}
	return orders, nil
}

// ListSellerOrders returns orders that include the seller's products, each
// trimmed to the seller's own line items.
func (s *OrderService) ListSellerOrders(ctx context.Context, sellerID string) ([]models.Order, error) {
	orders, err := s.orderRepo.FindBySellerID(ctx, sellerID)
	if err != nil {
		log.Printf("OrderService.ListSellerOrders: seller %s: %v", sellerID, err)
		return nil, persistence("list seller orders", err)
	}
	return orders, nil
}

// ListAllOrders backs the admin order list.
func (s *OrderService) ListAllOrders(ctx context.Context, status string) ([]models.Order, error) {
	orders, err := s.orderRepo.FindAll(ctx, strings.ToLower(strings.TrimSpace(status)))
	if err != nil {
		log.Printf("OrderService.ListAllOrders: %v", err)
		return nil, persistence("list orders", err)
	}
	return orders, nil
}

func (s *OrderService) Receipt(ctx context.Context, userID, orderID string) (string, error) {
	order, err := s.GetOrder(ctx, userID, orderID)
	if err != nil {
		return "", err
	}
	return format.Receipt(order), nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, orderID, status, note string) (*models.Order, error) {
	return s.updateStatus(ctx, "", orderID, status, note)
}

// UpdateSellerOrderStatus lets a seller move an order that holds at least one
// of their products.
func (s *OrderService) UpdateSellerOrderStatus(ctx context.Context, sellerID, orderID, status, note string) (*models.Order, error) {
	return s.updateStatus(ctx, sellerID, orderID, status, note)
}

func (s *OrderService) updateStatus(ctx context.Context, sellerID, orderID, status, note string) (*models.Order, error) {
	status = strings.ToLower(strings.TrimSpace(status))

	var updated *models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.GetByID(ctx, tx, orderID)
		if err != nil {
			return persistence("load order", err)
		}
		if order == nil || (sellerID != "" && !hasSellerItem(order, sellerID)) {
			return notFound("Order not found")
		}
		if !CanTransition(order.Status, status) {
			return invalid("status", "cannot change order status from "+order.Status+" to "+status)
		}

		if err := s.orderRepo.UpdateStatus(ctx, tx, order.ID, status); err != nil {
			return persistence("update order status", err)
		}

		entry := &models.OrderStatusHistory{
			OrderID:   order.ID,
			Status:    status,
			Note:      note,
			Timestamp: time.Now(),
		}
		if err := s.orderRepo.AppendStatusHistory(ctx, tx, entry); err != nil {
			return persistence("record order status", err)
		}

		if status == models.OrderStatusCancelled {
			for _, item := range order.Items {
				if err := s.productRepo.RestoreStock(ctx, tx, item.ProductID, item.Quantity); err != nil {
					return persistence("restore product stock", err)
				}
			}
		}

		updated, err = s.orderRepo.GetByID(ctx, tx, order.ID)
		if err != nil {
			return persistence("reload order", err)
		}
		return nil
	})
	if err != nil {
		log.Printf("OrderService.UpdateStatus: order %s to %q: %v", orderID, status, err)
		return nil, err
	}

	log.Printf("OrderService.UpdateStatus: order %s is now %s", updated.OrderNumber, updated.Status)
	return updated, nil
}

func hasSellerItem(order *models.Order, sellerID string) bool {
	for _, item := range order.Items {
		if item.SellerID == sellerID {
			return true
		}
	}
	return false
}
