package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Rakhulsr/go-marketplace/app/db/testdb"
	"github.com/Rakhulsr/go-marketplace/app/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddItemCreatesCartWithEffectivePrice(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seller := testdb.CreateUser(t, env.db, models.RoleSeller)
	buyer := testdb.CreateUser(t, env.db, models.RoleCustomer)
	product := testdb.CreateProduct(t, env.db, seller, "20", 5, testdb.WithSalePrice("15.50"))

	variants := []models.Variant{{Name: "Color", Value: "Red"}}
	cart, count, err := env.carts.AddItem(ctx, buyer.ID, product.ID, 2, variants)
	require.NoError(t, err)

	assert.Equal(t, 2, count)
	assert.Equal(t, buyer.ID, cart.UserID)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "15.50", cart.Items[0].Price.StringFixed(2))
	assert.Equal(t, variants, cart.Items[0].SelectedVariants)
	require.NotNil(t, cart.Items[0].Product)
	assert.Equal(t, product.ID, cart.Items[0].Product.ID)
	assert.Equal(t, "31.00", cart.Subtotal.StringFixed(2))
}

func TestAddItemSumsQuantityAndRefreshesPrice(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seller := testdb.CreateUser(t, env.db, models.RoleSeller)
	buyer := testdb.CreateUser(t, env.db, models.RoleCustomer)
	product := testdb.CreateProduct(t, env.db, seller, "10", 10)

	_, _, err := env.carts.AddItem(ctx, buyer.ID, product.ID, 1, nil)
	require.NoError(t, err)

	require.NoError(t, env.db.Model(&models.Product{}).Where("id = ?", product.ID).Update("price", decimal.RequireFromString("12")).Error)

	cart, count, err := env.carts.AddItem(ctx, buyer.ID, product.ID, 2, nil)
	require.NoError(t, err)

	assert.Equal(t, 3, count)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.Equal(t, "12.00", cart.Items[0].Price.StringFixed(2))
	assert.Equal(t, "36.00", cart.Subtotal.StringFixed(2))
}

func TestAddItemRejections(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seller := testdb.CreateUser(t, env.db, models.RoleSeller)
	buyer := testdb.CreateUser(t, env.db, models.RoleCustomer)
	product := testdb.CreateProduct(t, env.db, seller, "10", 3)
	inactive := testdb.CreateProduct(t, env.db, seller, "10", 3, testdb.Inactive())

	_, _, err := env.carts.AddItem(ctx, buyer.ID, product.ID, 0, nil)
	assert.ErrorIs(t, err, ErrValidation)

	_, _, err = env.carts.AddItem(ctx, buyer.ID, product.ID, 1, []models.Variant{{Name: "Size"}})
	assert.ErrorIs(t, err, ErrValidation)

	_, _, err = env.carts.AddItem(ctx, buyer.ID, "missing", 1, nil)
	assert.ErrorIs(t, err, ErrNotFound)

	_, _, err = env.carts.AddItem(ctx, buyer.ID, inactive.ID, 1, nil)
	assert.ErrorIs(t, err, ErrNotFound)

	_, _, err = env.carts.AddItem(ctx, buyer.ID, product.ID, 4, nil)
	require.ErrorIs(t, err, ErrInsufficientStock)
	var svcErr *Error
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, product.ID, svcErr.ProductID)

	cart, err := env.carts.GetCart(ctx, buyer.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCartSubtotalTracksItems(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seller := testdb.CreateUser(t, env.db, models.RoleSeller)
	buyer := testdb.CreateUser(t, env.db, models.RoleCustomer)
	a := testdb.CreateProduct(t, env.db, seller, "10", 10)
	b := testdb.CreateProduct(t, env.db, seller, "5", 10)

	_, _, err := env.carts.AddItem(ctx, buyer.ID, a.ID, 2, nil)
	require.NoError(t, err)
	cart, count, err := env.carts.AddItem(ctx, buyer.ID, b.ID, 1, nil)
	require.NoError(t, err)

	assert.Equal(t, 3, count)
	assert.Equal(t, "25.00", cart.Subtotal.StringFixed(2))

	var stored models.Cart
	require.NoError(t, env.db.First(&stored, "user_id = ?", buyer.ID).Error)
	assert.Equal(t, "25.00", stored.Subtotal.StringFixed(2))
}

func TestUpdateItem(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seller := testdb.CreateUser(t, env.db, models.RoleSeller)
	buyer := testdb.CreateUser(t, env.db, models.RoleCustomer)
	product := testdb.CreateProduct(t, env.db, seller, "10", 5)

	cart, _, err := env.carts.AddItem(ctx, buyer.ID, product.ID, 1, nil)
	require.NoError(t, err)
	itemID := cart.Items[0].ID

	subtotal, count, err := env.carts.UpdateItem(ctx, buyer.ID, itemID, 4)
	require.NoError(t, err)
	assert.Equal(t, "40.00", subtotal.StringFixed(2))
	assert.Equal(t, 4, count)

	_, _, err = env.carts.UpdateItem(ctx, buyer.ID, itemID, 6)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	_, _, err = env.carts.UpdateItem(ctx, buyer.ID, "unknown", 1)
	assert.ErrorIs(t, err, ErrNotFound)

	stranger := testdb.CreateUser(t, env.db, models.RoleCustomer)
	_, _, err = env.carts.UpdateItem(ctx, stranger.ID, itemID, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateItemToZeroRemovesIt(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seller := testdb.CreateUser(t, env.db, models.RoleSeller)
	buyer := testdb.CreateUser(t, env.db, models.RoleCustomer)
	a := testdb.CreateProduct(t, env.db, seller, "10", 5)
	b := testdb.CreateProduct(t, env.db, seller, "5", 5)

	_, _, err := env.carts.AddItem(ctx, buyer.ID, a.ID, 1, nil)
	require.NoError(t, err)
	cart, _, err := env.carts.AddItem(ctx, buyer.ID, b.ID, 2, nil)
	require.NoError(t, err)

	var itemA string
	for _, item := range cart.Items {
		if item.ProductID == a.ID {
			itemA = item.ID
		}
	}
	require.NotEmpty(t, itemA)

	subtotal, count, err := env.carts.UpdateItem(ctx, buyer.ID, itemA, 0)
	require.NoError(t, err)
	assert.Equal(t, "10.00", subtotal.StringFixed(2))
	assert.Equal(t, 2, count)

	cart, err = env.carts.GetCart(ctx, buyer.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, b.ID, cart.Items[0].ProductID)
}

func TestRemoveOnlyItemLeavesEmptyCart(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seller := testdb.CreateUser(t, env.db, models.RoleSeller)
	buyer := testdb.CreateUser(t, env.db, models.RoleCustomer)
	product := testdb.CreateProduct(t, env.db, seller, "10", 5)

	cart, _, err := env.carts.AddItem(ctx, buyer.ID, product.ID, 2, nil)
	require.NoError(t, err)

	count, err := env.carts.RemoveItem(ctx, buyer.ID, cart.Items[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	cart, err = env.carts.GetCart(ctx, buyer.ID)
	require.NoError(t, err)
	require.NotNil(t, cart)
	assert.NotNil(t, cart.Items)
	assert.Empty(t, cart.Items)
	assert.True(t, cart.Subtotal.IsZero())
}

func TestRemoveItemEdgeCases(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seller := testdb.CreateUser(t, env.db, models.RoleSeller)
	buyer := testdb.CreateUser(t, env.db, models.RoleCustomer)
	product := testdb.CreateProduct(t, env.db, seller, "10", 5)

	_, err := env.carts.RemoveItem(ctx, buyer.ID, "anything")
	assert.ErrorIs(t, err, ErrNotFound)

	_, _, err = env.carts.AddItem(ctx, buyer.ID, product.ID, 2, nil)
	require.NoError(t, err)

	count, err := env.carts.RemoveItem(ctx, buyer.ID, "not-in-cart")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestClearAndGetCart(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seller := testdb.CreateUser(t, env.db, models.RoleSeller)
	buyer := testdb.CreateUser(t, env.db, models.RoleCustomer)
	product := testdb.CreateProduct(t, env.db, seller, "10", 5)

	cart, err := env.carts.GetCart(ctx, buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, buyer.ID, cart.UserID)
	assert.Empty(t, cart.Items)
	assert.True(t, cart.Subtotal.IsZero())

	require.NoError(t, env.carts.Clear(ctx, buyer.ID))

	_, _, err = env.carts.AddItem(ctx, buyer.ID, product.ID, 3, nil)
	require.NoError(t, err)
	require.NoError(t, env.carts.Clear(ctx, buyer.ID))

	cart, err = env.carts.GetCart(ctx, buyer.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.True(t, cart.Subtotal.IsZero())

	count, err := env.carts.CartItemCount(ctx, buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
