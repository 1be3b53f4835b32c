package calc

import "github.com/shopspring/decimal"

var (
	DefaultTaxRate      = decimal.RequireFromString("0.08")
	DefaultShippingCost = decimal.NewFromInt(10)
)

const DefaultLoyaltyDivisor = 10

// Pricing holds the checkout knobs loaded from configuration.
type Pricing struct {
	ShippingCost   decimal.Decimal
	TaxRate        decimal.Decimal
	LoyaltyDivisor int64
}

func DefaultPricing() Pricing {
	return Pricing{
		ShippingCost:   DefaultShippingCost,
		TaxRate:        DefaultTaxRate,
		LoyaltyDivisor: DefaultLoyaltyDivisor,
	}
}

type OrderTotals struct {
	Subtotal     decimal.Decimal
	ShippingCost decimal.Decimal
	Tax          decimal.Decimal
	Total        decimal.Decimal
}

// CalculateTax applies a flat rate and rounds to cents.
func CalculateTax(subtotal, taxRate decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(taxRate).Round(2)
}

func CalculateGrandTotal(subtotal, shippingCost, taxAmount decimal.Decimal) decimal.Decimal {
	return subtotal.Add(shippingCost).Add(taxAmount).Round(2)
}

// PriceOrder derives every monetary field of an order from its subtotal, so a
// receipt can always be rebuilt from the stored order.
func PriceOrder(subtotal, shippingCost, taxRate decimal.Decimal) OrderTotals {
	subtotal = subtotal.Round(2)
	tax := CalculateTax(subtotal, taxRate)
	return OrderTotals{
		Subtotal:     subtotal,
		ShippingCost: shippingCost.Round(2),
		Tax:          tax,
		Total:        CalculateGrandTotal(subtotal, shippingCost, tax),
	}
}

// LoyaltyPoints is floor(total / divisor). A non-positive divisor disables
// the reward.
func LoyaltyPoints(total decimal.Decimal, divisor int64) int {
	if divisor <= 0 || total.IsNegative() {
		return 0
	}
	return int(total.Div(decimal.NewFromInt(divisor)).Floor().IntPart())
}
