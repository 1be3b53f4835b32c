package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID            string    `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Name          string    `gorm:"size:100;not null" json:"name"`
	Email         string    `gorm:"size:100;not null;uniqueIndex" json:"email"`
	Phone         string    `gorm:"size:20" json:"phone"`
	Password      string    `gorm:"size:255;not null" json:"-"`
	Role          string    `gorm:"size:20;default:'customer';not null" json:"role"`
	BusinessName  string    `gorm:"size:255" json:"businessName,omitempty"`
	LoyaltyPoints int       `gorm:"not null" json:"loyaltyPoints"`
	Wishlist      []Product `gorm:"many2many:user_wishlists;" json:"wishlist,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
	RoleSeller   = "seller"
)

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}

// DisplaySellerName is the name copied onto a seller's products.
func (u *User) DisplaySellerName() string {
	if u.BusinessName != "" {
		return u.BusinessName
	}
	return u.Name
}
