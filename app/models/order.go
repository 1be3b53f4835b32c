package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

const (
	PaymentMethodCOD          = "cod"
	PaymentMethodCard         = "card"
	PaymentMethodPaypal       = "paypal"
	PaymentMethodBankTransfer = "bank_transfer"
)

// Order is immutable after placement apart from Status and the append-only
// StatusHistory.
type Order struct {
	ID              string               `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	OrderNumber     string               `gorm:"size:64;not null;uniqueIndex" json:"orderNumber"`
	UserID          string               `gorm:"size:36;not null;index" json:"userId"`
	Items           []OrderItem          `gorm:"foreignKey:OrderID" json:"items"`
	ShippingAddress ShippingAddress      `gorm:"embedded;embeddedPrefix:shipping_" json:"shippingAddress"`
	PaymentMethod   string               `gorm:"size:50;not null" json:"paymentMethod"`
	Subtotal        decimal.Decimal      `gorm:"type:decimal(16,2);not null" json:"subtotal"`
	ShippingCost    decimal.Decimal      `gorm:"type:decimal(16,2);not null" json:"shippingCost"`
	Tax             decimal.Decimal      `gorm:"type:decimal(16,2);not null" json:"tax"`
	Total           decimal.Decimal      `gorm:"type:decimal(16,2);not null" json:"total"`
	Status          string               `gorm:"size:20;not null;index" json:"status"`
	StatusHistory   []OrderStatusHistory `gorm:"foreignKey:OrderID" json:"statusHistory"`
	CreatedAt       time.Time            `json:"createdAt"`
	UpdatedAt       time.Time            `json:"updatedAt"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return
}

// ContainsProduct reports whether any frozen line item references productID.
func (o *Order) ContainsProduct(productID string) bool {
	for _, item := range o.Items {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}
