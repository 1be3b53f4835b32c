package format

import (
	"testing"
	"time"

	"github.com/Rakhulsr/go-marketplace/app/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func sampleOrder() *models.Order {
	return &models.Order{
		OrderNumber:   "ORD1700000000000ABCDEFGHI",
		PaymentMethod: models.PaymentMethodCOD,
		Status:        models.OrderStatusPending,
		CreatedAt:     time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC),
		Items: []models.OrderItem{
			{Name: "Mug", Quantity: 2, Price: decimal.RequireFromString("10")},
			{Name: "Shirt", Quantity: 1, Price: decimal.RequireFromString("5"), SelectedVariants: []models.Variant{{Name: "Size", Value: "M"}}},
		},
		Subtotal:     decimal.RequireFromString("25"),
		ShippingCost: decimal.RequireFromString("10"),
		Tax:          decimal.RequireFromString("2"),
		Total:        decimal.RequireFromString("37"),
		ShippingAddress: models.ShippingAddress{
			FullName:     "Jane Doe",
			AddressLine1: "1 Main St",
			City:         "Springfield",
			State:        "IL",
			ZipCode:      "62701",
			Country:      "USA",
		},
	}
}

func TestReceipt(t *testing.T) {
	receipt := Receipt(sampleOrder())

	assert.Contains(t, receipt, "Order ORD1700000000000ABCDEFGHI\n")
	assert.Contains(t, receipt, "Placed: 2024-03-01 12:30 UTC\n")
	assert.Contains(t, receipt, "2 x Mug @ $10.00 = $20.00\n")
	assert.Contains(t, receipt, "1 x Shirt (Size: M) @ $5.00 = $5.00\n")
	assert.Contains(t, receipt, "Subtotal: $25.00\nShipping: $10.00\nTax: $2.00\nTotal: $37.00\n")
	assert.Contains(t, receipt, "Springfield, IL 62701\nUSA\n")
}

func TestReceiptIsDeterministic(t *testing.T) {
	assert.Equal(t, Receipt(sampleOrder()), Receipt(sampleOrder()))
}
