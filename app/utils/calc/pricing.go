package calc

import (
	"github.com/Rakhulsr/go-marketplace/app/models"
	"github.com/shopspring/decimal"
)

// EffectivePrice is the sale price when one is set and lower than the list
// price, otherwise the list price.
func EffectivePrice(price decimal.Decimal, salePrice decimal.NullDecimal) decimal.Decimal {
	if salePrice.Valid && salePrice.Decimal.LessThan(price) {
		return salePrice.Decimal
	}
	return price
}

func ProductEffectivePrice(p *models.Product) decimal.Decimal {
	return EffectivePrice(p.Price, p.SalePrice)
}

func LineTotal(price decimal.Decimal, qty int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(qty)))
}

// CartSubtotal is the only source of a cart's subtotal; it must run before
// every cart persist.
func CartSubtotal(items []models.CartItem) decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(LineTotal(item.Price, item.Quantity))
	}
	return subtotal.Round(2)
}

func OrderItemsSubtotal(items []models.OrderItem) decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(LineTotal(item.Price, item.Quantity))
	}
	return subtotal.Round(2)
}

func StockStatus(p *models.Product) string {
	switch {
	case p.Stock <= 0:
		return models.StockStatusOutOfStock
	case p.Stock <= p.LowStockThreshold:
		return models.StockStatusLowStock
	default:
		return models.StockStatusInStock
	}
}
