package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Cart is owned by exactly one user. Subtotal is derived from Items and is
// rewritten on every persist.
type Cart struct {
	ID        string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	UserID    string          `gorm:"size:36;not null;uniqueIndex" json:"userId"`
	Items     []CartItem      `gorm:"foreignKey:CartID" json:"items"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"subtotal"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func (c *Cart) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}

// ItemCount is the number of units in the cart, not the number of lines.
func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}
