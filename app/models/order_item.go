package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderItem is a frozen copy of a cart line. It keeps ProductID for lookups
// but never needs the live Product to render.
type OrderItem struct {
	ID               string          `gorm:"primaryKey;size:36;not null;uniqueIndex" json:"id"`
	OrderID          string          `gorm:"size:36;not null;index" json:"orderId"`
	ProductID        string          `gorm:"size:36;not null;index" json:"productId"`
	SellerID         string          `gorm:"size:36;not null;index" json:"sellerId"`
	Name             string          `gorm:"size:255;not null" json:"name"`
	Quantity         int             `gorm:"not null" json:"quantity"`
	Price            decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"price"`
	SelectedVariants []Variant       `gorm:"type:text;serializer:json" json:"selectedVariants"`
	CreatedAt        time.Time       `json:"createdAt"`
}

func (oi *OrderItem) BeforeCreate(tx *gorm.DB) (err error) {
	if oi.ID == "" {
		oi.ID = uuid.New().String()
	}
	return
}

type OrderStatusHistory struct {
	ID        string    `gorm:"primaryKey;size:36;not null;uniqueIndex" json:"id"`
	OrderID   string    `gorm:"size:36;not null;index" json:"orderId"`
	Status    string    `gorm:"size:20;not null" json:"status"`
	Note      string    `gorm:"size:500" json:"note"`
	Timestamp time.Time `gorm:"not null" json:"timestamp"`
}

func (h *OrderStatusHistory) BeforeCreate(tx *gorm.DB) (err error) {
	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	return
}
