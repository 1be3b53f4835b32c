package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review is unique per (ProductID, UserID); the composite index backs the
// service-level duplicate check.
type Review struct {
	ID                 string    `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	ProductID          string    `gorm:"size:36;not null;uniqueIndex:idx_review_product_user" json:"productId"`
	UserID             string    `gorm:"size:36;not null;uniqueIndex:idx_review_product_user" json:"userId"`
	User               *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	OrderID            *string   `gorm:"size:36;index" json:"orderId,omitempty"`
	Rating             int       `gorm:"not null" json:"rating"`
	Title              string    `gorm:"size:255" json:"title"`
	Comment            string    `gorm:"type:text;not null" json:"comment"`
	IsVerifiedPurchase bool      `gorm:"not null" json:"isVerifiedPurchase"`
	Helpful            int       `gorm:"not null" json:"helpful"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}
