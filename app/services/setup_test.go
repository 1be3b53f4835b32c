package services

import (
	"context"
	"sync"
	"testing"

	"github.com/Rakhulsr/go-marketplace/app/db/testdb"
	"github.com/Rakhulsr/go-marketplace/app/models"
	"github.com/Rakhulsr/go-marketplace/app/repositories"
	"github.com/Rakhulsr/go-marketplace/app/utils/calc"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	db       *gorm.DB
	carts    *CartService
	orders   *OrderService
	reviews  *ReviewService
	wishlist *WishlistService
	products *ProductService
	notifier *recordingNotifier
}

type recordingNotifier struct {
	mu     sync.Mutex
	orders []string
}

func (n *recordingNotifier) OrderPlaced(ctx context.Context, order *models.Order, buyer *models.User) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.orders = append(n.orders, order.OrderNumber)
	return nil
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.orders)
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testdb.New(t)

	cartRepo := repositories.NewCartRepository(db)
	cartItemRepo := repositories.NewCartItemRepository(db)
	productRepo := repositories.NewProductRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	userRepo := repositories.NewUserRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	orderItemRepo := repositories.NewOrderItemRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)

	notifier := &recordingNotifier{}
	orders := NewOrderService(db, cartRepo, cartItemRepo, productRepo, userRepo, orderRepo, orderItemRepo, calc.DefaultPricing())
	orders.SetNotifier(notifier)

	return &testEnv{
		db:       db,
		carts:    NewCartService(db, cartRepo, cartItemRepo, productRepo),
		orders:   orders,
		reviews:  NewReviewService(db, reviewRepo, productRepo, orderRepo),
		wishlist: NewWishlistService(userRepo, productRepo),
		products: NewProductService(productRepo, categoryRepo, reviewRepo, userRepo),
		notifier: notifier,
	}
}

func validAddress() models.ShippingAddress {
	return models.ShippingAddress{
		FullName:     "Jane Doe",
		Phone:        "555-0100",
		AddressLine1: "1 Main St",
		City:         "Springfield",
		State:        "IL",
		ZipCode:      "62701",
	}
}

func placeInput() PlaceOrderInput {
	return PlaceOrderInput{ShippingAddress: validAddress(), PaymentMethod: models.PaymentMethodCOD}
}

func (e *testEnv) reloadProduct(t *testing.T, id string) *models.Product {
	t.Helper()
	var product models.Product
	require.NoError(t, e.db.Unscoped().First(&product, "id = ?", id).Error)
	return &product
}

func (e *testEnv) reloadUser(t *testing.T, id string) *models.User {
	t.Helper()
	var user models.User
	require.NoError(t, e.db.First(&user, "id = ?", id).Error)
	return &user
}

func (e *testEnv) countRows(t *testing.T, model interface{}) int64 {
	t.Helper()
	var count int64
	require.NoError(t, e.db.Model(model).Count(&count).Error)
	return count
}

func (e *testEnv) setStock(t *testing.T, productID string, stock int) {
	t.Helper()
	require.NoError(t, e.db.Model(&models.Product{}).Where("id = ?", productID).Update("stock", stock).Error)
}

// placeDeliveredOrder buys qty of product for buyer and walks the order to
// delivered.
func (e *testEnv) placeDeliveredOrder(t *testing.T, buyer *models.User, product *models.Product, qty int) *models.Order {
	t.Helper()
	ctx := context.Background()

	_, _, err := e.carts.AddItem(ctx, buyer.ID, product.ID, qty, nil)
	require.NoError(t, err)
	order, err := e.orders.PlaceOrder(ctx, buyer.ID, placeInput())
	require.NoError(t, err)

	for _, status := range []string{models.OrderStatusProcessing, models.OrderStatusShipped, models.OrderStatusDelivered} {
		order, err = e.orders.UpdateStatus(ctx, order.ID, status, "")
		require.NoError(t, err)
	}
	return order
}
