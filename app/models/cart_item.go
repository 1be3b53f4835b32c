package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Variant struct {
	Name  string `json:"name" validate:"required"`
	Value string `json:"value" validate:"required"`
}

type CartItem struct {
	ID               string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	CartID           string          `gorm:"size:36;not null;index" json:"cartId"`
	ProductID        string          `gorm:"size:36;not null;index" json:"productId"`
	Product          *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity         int             `gorm:"not null" json:"quantity"`
	Price            decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"price"`
	SelectedVariants []Variant       `gorm:"type:text;serializer:json" json:"selectedVariants"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

func (ci *CartItem) BeforeCreate(tx *gorm.DB) (err error) {
	if ci.ID == "" {
		ci.ID = uuid.New().String()
	}
	return
}
