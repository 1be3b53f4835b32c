package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Rakhulsr/go-marketplace/app/db/testdb"
	"github.com/Rakhulsr/go-marketplace/app/models"
	"github.com/Rakhulsr/go-marketplace/app/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productInput(name, price string, stock int) ProductInput {
	return ProductInput{
		Name:        name,
		Description: name + " description",
		Images:      []models.ProductImage{{URL: "https://img.example.com/p.jpg", Alt: name}},
		Price:       decimal.RequireFromString(price),
		Stock:       stock,
	}
}

func requireFieldError(t *testing.T, err error, field string) {
	t.Helper()
	require.ErrorIs(t, err, ErrValidation)
	var svcErr *Error
	require.True(t, errors.As(err, &svcErr))
	assert.Contains(t, svcErr.Fields, field)
}

func TestCreateProductDefaults(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seller := testdb.CreateUser(t, env.db, models.RoleSeller)

	input := productInput("Blue Ceramic Mug", "12.5", 20)
	input.Tags = []string{" Kitchen ", "kitchen", "", "Gift"}
	product, err := env.products.CreateProduct(ctx, seller.ID, input)
	require.NoError(t, err)

	assert.Equal(t, "blue-ceramic-mug", product.Slug)
	assert.True(t, strings.HasPrefix(product.Sku, "SKU-"))
	assert.Equal(t, seller.BusinessName, product.SellerName)
	assert.True(t, product.IsActive)
	assert.Equal(t, models.DefaultLowStockThreshold, product.LowStockThreshold)
	assert.Equal(t, []string{"kitchen", "gift"}, product.Tags)
	assert.Equal(t, "12.50", product.Price.StringFixed(2))

	stored := env.reloadProduct(t, product.ID)
	assert.Equal(t, product.Slug, stored.Slug)
	assert.Equal(t, product.Sku, stored.Sku)
}

func TestCreateProductRejections(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seller := testdb.CreateUser(t, env.db, models.RoleSeller)

	first := productInput("Desk Lamp", "30", 5)
	first.Sku = "LAMP-1"
	_, err := env.products.CreateProduct(ctx, seller.ID, first)
	require.NoError(t, err)

	_, err = env.products.CreateProduct(ctx, seller.ID, productInput("Desk Lamp", "30", 5))
	requireFieldError(t, err, "slug")

	dupSku := productInput("Floor Lamp", "30", 5)
	dupSku.Sku = "LAMP-1"
	_, err = env.products.CreateProduct(ctx, seller.ID, dupSku)
	requireFieldError(t, err, "sku")

	noImages := productInput("Bare Lamp", "30", 5)
	noImages.Images = nil
	_, err = env.products.CreateProduct(ctx, seller.ID, noImages)
	requireFieldError(t, err, "images")

	tooMany := productInput("Gallery Lamp", "30", 5)
	for i := 0; i < models.MaxProductImages; i++ {
		tooMany.Images = append(tooMany.Images, models.ProductImage{URL: "https://img.example.com/x.jpg"})
	}
	_, err = env.products.CreateProduct(ctx, seller.ID, tooMany)
	requireFieldError(t, err, "images")

	_, err = env.products.CreateProduct(ctx, seller.ID, productInput("Free Lamp", "0", 5))
	requireFieldError(t, err, "price")

	negativeStock := productInput("Odd Lamp", "10", -1)
	_, err = env.products.CreateProduct(ctx, seller.ID, negativeStock)
	requireFieldError(t, err, "stock")

	noCategory := productInput("Lost Lamp", "10", 1)
	noCategory.CategoryID = "missing"
	_, err = env.products.CreateProduct(ctx, seller.ID, noCategory)
	requireFieldError(t, err, "categoryId")

	_, err = env.products.CreateProduct(ctx, "nobody", productInput("Ghost Lamp", "10", 1))
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, int64(1), env.countRows(t, &models.Product{}))
}

func TestUpdateProductOwnershipAndCounters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seller := testdb.CreateUser(t, env.db, models.RoleSeller)
	other := testdb.CreateUser(t, env.db, models.RoleSeller)

	product, err := env.products.CreateProduct(ctx, seller.ID, productInput("Tea Kettle", "40", 8))
	require.NoError(t, err)
	require.NoError(t, env.db.Model(&models.Product{}).Where("id = ?", product.ID).Update("sales_count", 7).Error)

	update := productInput("Tea Kettle", "35", 6)
	update.SalePrice = decimal.NewNullDecimal(decimal.RequireFromString("29.99"))

	_, err = env.products.UpdateProduct(ctx, other.ID, product.ID, update)
	assert.ErrorIs(t, err, ErrNotFound)

	updated, err := env.products.UpdateProduct(ctx, seller.ID, product.ID, update)
	require.NoError(t, err)
	assert.Equal(t, product.Slug, updated.Slug)
	assert.Equal(t, product.Sku, updated.Sku)

	stored := env.reloadProduct(t, product.ID)
	assert.Equal(t, "35.00", stored.Price.StringFixed(2))
	assert.True(t, stored.SalePrice.Valid)
	assert.Equal(t, "29.99", stored.SalePrice.Decimal.StringFixed(2))
	assert.Equal(t, 6, stored.Stock)
	assert.Equal(t, 7, stored.SalesCount)
}

func TestDeleteProduct(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seller := testdb.CreateUser(t, env.db, models.RoleSeller)
	other := testdb.CreateUser(t, env.db, models.RoleSeller)

	product, err := env.products.CreateProduct(ctx, seller.ID, productInput("Wall Clock", "25", 3))
	require.NoError(t, err)

	assert.ErrorIs(t, env.products.DeleteProduct(ctx, other.ID, product.ID), ErrNotFound)
	require.NoError(t, env.products.DeleteProduct(ctx, seller.ID, product.ID))

	_, err = env.products.GetProductDetail(ctx, product.Slug)
	assert.ErrorIs(t, err, ErrNotFound)

	// the row is kept for order history
	assert.Equal(t, product.ID, env.reloadProduct(t, product.ID).ID)
}

func TestListProductsFiltersAndSorts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seller := testdb.CreateUser(t, env.db, models.RoleSeller)

	kitchen := &models.Category{Name: "Kitchen", Slug: "kitchen", IsActive: true}
	require.NoError(t, env.db.Create(kitchen).Error)

	onSale := productInput("Copper Pan", "30", 5)
	onSale.SalePrice = decimal.NewNullDecimal(decimal.RequireFromString("5"))
	onSale.CategoryID = kitchen.ID
	pan, err := env.products.CreateProduct(ctx, seller.ID, onSale)
	require.NoError(t, err)

	spoonInput := productInput("Wooden Spoon", "10", 5)
	spoonInput.CategoryID = kitchen.ID
	spoon, err := env.products.CreateProduct(ctx, seller.ID, spoonInput)
	require.NoError(t, err)

	lamp, err := env.products.CreateProduct(ctx, seller.ID, productInput("Reading Lamp", "20", 5))
	require.NoError(t, err)

	hidden := productInput("Hidden Pot", "1", 5)
	inactive := false
	hidden.IsActive = &inactive
	_, err = env.products.CreateProduct(ctx, seller.ID, hidden)
	require.NoError(t, err)

	ids := func(products []models.Product) []string {
		out := make([]string, 0, len(products))
		for _, p := range products {
			out = append(out, p.ID)
		}
		return out
	}

	page, err := env.products.ListProducts(ctx, repositories.ProductFilter{Sort: repositories.SortPriceAsc})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, []string{pan.ID, spoon.ID, lamp.ID}, ids(page.Products))

	page, err = env.products.ListProducts(ctx, repositories.ProductFilter{CategorySlug: "kitchen", Sort: repositories.SortPriceDesc})
	require.NoError(t, err)
	assert.Equal(t, []string{spoon.ID, pan.ID}, ids(page.Products))
	require.NotNil(t, page.Products[0].Category)
	assert.Equal(t, "Kitchen", page.Products[0].Category.Name)

	page, err = env.products.ListProducts(ctx, repositories.ProductFilter{Search: "LAMP"})
	require.NoError(t, err)
	assert.Equal(t, []string{lamp.ID}, ids(page.Products))

	page, err = env.products.ListProducts(ctx, repositories.ProductFilter{
		MinPrice: decimal.NewNullDecimal(decimal.RequireFromString("8")),
		MaxPrice: decimal.NewNullDecimal(decimal.RequireFromString("25")),
		Sort:     repositories.SortPriceAsc,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{spoon.ID, lamp.ID}, ids(page.Products))

	page, err = env.products.ListProducts(ctx, repositories.ProductFilter{MinPrice: decimal.NewNullDecimal(decimal.RequireFromString("15"))})
	require.NoError(t, err)
	assert.Equal(t, []string{lamp.ID}, ids(page.Products))

	page, err = env.products.ListProducts(ctx, repositories.ProductFilter{MaxPrice: decimal.NewNullDecimal(decimal.RequireFromString("6"))})
	require.NoError(t, err)
	assert.Equal(t, []string{pan.ID}, ids(page.Products))

	page, err = env.products.ListProducts(ctx, repositories.ProductFilter{Sort: repositories.SortPriceAsc, Page: 2, PerPage: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, []string{lamp.ID}, ids(page.Products))

	page, err = env.products.ListProducts(ctx, repositories.ProductFilter{Search: "nothing matches"})
	require.NoError(t, err)
	assert.NotNil(t, page.Products)
	assert.Empty(t, page.Products)

	_, err = env.products.ListProducts(ctx, repositories.ProductFilter{CategorySlug: "garden"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetProductDetail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seller := testdb.CreateUser(t, env.db, models.RoleSeller)
	other := testdb.CreateUser(t, env.db, models.RoleSeller)

	product := testdb.CreateProduct(t, env.db, seller, "10", 3, testdb.WithTags("garden"))
	sameSeller := testdb.CreateProduct(t, env.db, seller, "12", 5)
	sameTag := testdb.CreateProduct(t, env.db, other, "8", 5, testdb.WithTags("garden"))
	testdb.CreateProduct(t, env.db, other, "9", 5, testdb.WithTags("kitchen"))

	detail, err := env.products.GetProductDetail(ctx, product.Slug)
	require.NoError(t, err)
	assert.Equal(t, 1, detail.Product.Views)
	assert.Equal(t, models.StockStatusLowStock, detail.StockStatus)
	assert.NotNil(t, detail.Reviews)
	require.Len(t, detail.Related, 2)
	assert.ElementsMatch(t, []string{sameSeller.ID, sameTag.ID}, []string{detail.Related[0].ID, detail.Related[1].ID})

	detail, err = env.products.GetProductDetail(ctx, product.Slug)
	require.NoError(t, err)
	assert.Equal(t, 2, detail.Product.Views)
	assert.Equal(t, 2, env.reloadProduct(t, product.ID).Views)

	_, err = env.products.GetProductDetail(ctx, "no-such-product")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSellerReport(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seller := testdb.CreateUser(t, env.db, models.RoleSeller)
	other := testdb.CreateUser(t, env.db, models.RoleSeller)

	steady := testdb.CreateProduct(t, env.db, seller, "10", 50)
	scarce := testdb.CreateProduct(t, env.db, seller, "20", 2, testdb.WithSalePrice("15"))
	testdb.CreateProduct(t, env.db, other, "99", 1)

	require.NoError(t, env.db.Model(&models.Product{}).Where("id = ?", steady.ID).Update("sales_count", 3).Error)
	require.NoError(t, env.db.Model(&models.Product{}).Where("id = ?", scarce.ID).Update("sales_count", 2).Error)

	report, err := env.products.SellerReport(ctx, seller.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, report.TotalProducts)
	assert.Equal(t, 5, report.TotalSales)
	assert.Equal(t, "60.00", report.TotalRevenue.StringFixed(2))
	require.Len(t, report.TopProducts, 2)
	assert.Equal(t, steady.ID, report.TopProducts[0].ID)
	require.Len(t, report.LowStockProducts, 1)
	assert.Equal(t, scarce.ID, report.LowStockProducts[0].ID)
}

func TestNormalizeTagsAndSKU(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, NormalizeTags([]string{" A", "b", "a ", " "}))
	assert.Empty(t, NormalizeTags(nil))

	sku := GenerateSKU(time.UnixMilli(1700000000000))
	assert.Regexp(t, `^SKU-1700000000000-[0-9A-F]{6}$`, sku)
}
