package utils

import (
	"github.com/shopspring/decimal"
)

// VAT is the fixed Spanish IVA rate applied on top of display prices.
var VAT = decimal.NewFromFloat(0.21)

var hundred = decimal.NewFromInt(100)

// DisplayPrice derives the externally visible price from the supplier base
// price. Associates get a percentage discount on top of the multiplied price.
// Pure function: configuration values are passed in by the caller, which reads
// them per request.
func DisplayPrice(base, multiplier decimal.Decimal, role string, associateDiscountPct decimal.Decimal) decimal.Decimal {
	price := base.Mul(multiplier)
	if role == "associate" {
		factor := decimal.NewFromInt(1).Sub(associateDiscountPct.Div(hundred))
		price = price.Mul(factor)
	}
	return price.Round(2)
}

// WithVAT returns the VAT-inclusive price. Always >= the input for a
// non-negative price.
func WithVAT(price decimal.Decimal) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(1).Add(VAT)).Round(2)
}
