// Package testdb opens throwaway SQLite databases migrated with the
// production schema, plus small fixtures shared by package tests.
package testdb

import (
	"fmt"
	"testing"

	"github.com/Rakhulsr/go-marketplace/app/models"
	"github.com/Rakhulsr/go-marketplace/app/models/migrations"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New returns a migrated in-memory database private to the test. It holds a
// single connection, so concurrent transactions queue behind each other and
// every read inside a transaction must go through that transaction.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, migrations.AutoMigrate(db))

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}

func CreateUser(t testing.TB, db *gorm.DB, role string) *models.User {
	t.Helper()

	id := uuid.NewString()
	user := &models.User{
		ID:       id,
		Name:     "User " + id[:8],
		Email:    id + "@example.com",
		Password: "not-a-real-hash",
		Role:     role,
	}
	if role == models.RoleSeller {
		user.BusinessName = "Shop " + id[:8]
	}
	require.NoError(t, db.Omit("Wishlist").Create(user).Error)
	return user
}

// ProductOption tweaks a fixture product before insert.
type ProductOption func(*models.Product)

func WithSalePrice(price string) ProductOption {
	return func(p *models.Product) {
		p.SalePrice = decimal.NewNullDecimal(decimal.RequireFromString(price))
	}
}

func WithTags(tags ...string) ProductOption {
	return func(p *models.Product) {
		p.Tags = tags
	}
}

func Inactive() ProductOption {
	return func(p *models.Product) {
		p.IsActive = false
	}
}

func CreateProduct(t testing.TB, db *gorm.DB, seller *models.User, price string, stock int, opts ...ProductOption) *models.Product {
	t.Helper()

	id := uuid.NewString()
	product := &models.Product{
		ID:                id,
		SellerID:          seller.ID,
		SellerName:        seller.DisplaySellerName(),
		Name:              "Product " + id[:8],
		Slug:              "product-" + id,
		Sku:               "SKU-" + id,
		Description:       "A product used in tests",
		Tags:              []string{},
		Images:            []models.ProductImage{{URL: "https://img.example.com/" + id + ".jpg"}},
		Price:             decimal.RequireFromString(price),
		Stock:             stock,
		LowStockThreshold: models.DefaultLowStockThreshold,
		IsActive:          true,
	}
	for _, opt := range opts {
		opt(product)
	}
	require.NoError(t, db.Omit("Category").Create(product).Error)
	return product
}
