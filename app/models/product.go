package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	StockStatusOutOfStock = "out-of-stock"
	StockStatusLowStock   = "low-stock"
	StockStatusInStock    = "in-stock"

	DefaultLowStockThreshold = 10
	MinProductImages         = 1
	MaxProductImages         = 6
)

type ProductImage struct {
	URL string `json:"url" validate:"required,url"`
	Alt string `json:"alt" validate:"max=255"`
}

type Product struct {
	ID                string              `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	SellerID          string              `gorm:"size:36;not null;index" json:"sellerId"`
	SellerName        string              `gorm:"size:255;not null" json:"sellerName"`
	CategoryID        *string             `gorm:"size:36;index" json:"categoryId,omitempty"`
	Category          *Category           `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Name              string              `gorm:"size:255;not null;index" json:"name"`
	Slug              string              `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	Sku               string              `gorm:"size:100;not null;uniqueIndex" json:"sku"`
	Description       string              `gorm:"type:text;not null" json:"description"`
	ShortDescription  string              `gorm:"size:500" json:"shortDescription"`
	Brand             string              `gorm:"size:100;index" json:"brand"`
	Tags              []string            `gorm:"type:text;serializer:json" json:"tags"`
	Images            []ProductImage      `gorm:"type:text;serializer:json" json:"images"`
	Price             decimal.Decimal     `gorm:"type:decimal(16,2);not null" json:"price"`
	SalePrice         decimal.NullDecimal `gorm:"type:decimal(16,2)" json:"salePrice"`
	Stock             int                 `gorm:"not null" json:"stock"`
	LowStockThreshold int                 `gorm:"not null" json:"lowStockThreshold"`
	SalesCount        int                 `gorm:"not null" json:"salesCount"`
	Views             int                 `gorm:"not null" json:"views"`
	AverageRating     float64             `gorm:"not null" json:"averageRating"`
	RatingCount       int                 `gorm:"not null" json:"ratingCount"`
	ReviewCount       int                 `gorm:"not null" json:"reviewCount"`
	IsActive          bool                `gorm:"not null;index" json:"isActive"`
	IsFeatured        bool                `gorm:"not null" json:"isFeatured"`
	CreatedAt         time.Time           `json:"createdAt"`
	UpdatedAt         time.Time           `json:"updatedAt"`
	DeletedAt         gorm.DeletedAt      `gorm:"index" json:"-"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}
