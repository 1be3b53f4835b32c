package configs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPricingDefaults(t *testing.T) {
	pricing := ENV{}.Pricing()

	assert.Equal(t, "10", pricing.ShippingCost.String())
	assert.Equal(t, "0.08", pricing.TaxRate.String())
	assert.Equal(t, int64(10), pricing.LoyaltyDivisor)
}

func TestPricingOverrides(t *testing.T) {
	pricing := ENV{ShippingCost: "4.99", TaxRate: "0.2", LoyaltyPoint: "5"}.Pricing()

	assert.Equal(t, "4.99", pricing.ShippingCost.String())
	assert.Equal(t, "0.2", pricing.TaxRate.String())
	assert.Equal(t, int64(5), pricing.LoyaltyDivisor)
}

func TestPricingIgnoresInvalidValues(t *testing.T) {
	pricing := ENV{ShippingCost: "-1", TaxRate: "abc", LoyaltyPoint: "ten"}.Pricing()

	assert.Equal(t, "10", pricing.ShippingCost.String())
	assert.Equal(t, "0.08", pricing.TaxRate.String())
	assert.Equal(t, int64(10), pricing.LoyaltyDivisor)
}
