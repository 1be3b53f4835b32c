package format

import (
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

var usd = accounting.Accounting{
	Symbol:    "$",
	Precision: 2,
	Thousand:  ",",
	Decimal:   ".",
}

// Money renders an amount in the store currency, e.g. $1,234.50.
func Money(amount decimal.Decimal) string {
	return usd.FormatMoneyDecimal(amount)
}
