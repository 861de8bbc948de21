package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

func TestDisplayPriceCustomer(t *testing.T) {
	cases := []struct {
		base, multiplier, want string
	}{
		{"10.00", "2.5", "25.00"},
		{"19.99", "2.5", "49.98"},
		{"0", "2.5", "0.00"},
		{"100", "1.8", "180.00"},
	}

	for _, tc := range cases {
		got := DisplayPrice(d(tc.base), d(tc.multiplier), "customer", d("20"))
		assert.True(t, got.Equal(d(tc.want)), "base %s: got %s want %s", tc.base, got, tc.want)
	}
}

func TestDisplayPriceAssociate(t *testing.T) {
	// p·m·(1−d/100)
	got := DisplayPrice(d("10.00"), d("2.5"), "associate", d("20"))
	assert.True(t, got.Equal(d("20.00")), "got %s", got)

	// zero discount: same as customer
	got = DisplayPrice(d("10.00"), d("2.5"), "associate", d("0"))
	assert.True(t, got.Equal(d("25.00")), "got %s", got)

	// admin prices like a customer
	got = DisplayPrice(d("10.00"), d("2.5"), "admin", d("20"))
	assert.True(t, got.Equal(d("25.00")), "got %s", got)
}

func TestWithVAT(t *testing.T) {
	price := d("25.00")
	withVat := WithVAT(price)
	assert.True(t, withVat.Equal(d("30.25")), "got %s", withVat)

	// VAT-inclusive price is never below the display price
	for _, p := range []string{"0", "0.01", "9.99", "123.45"} {
		assert.False(t, WithVAT(d(p)).LessThan(d(p)), "price %s", p)
	}
}

func TestDisplayPriceDeterministic(t *testing.T) {
	a := DisplayPrice(d("37.50"), d("2.5"), "associate", d("20"))
	b := DisplayPrice(d("37.50"), d("2.5"), "associate", d("20"))
	assert.True(t, a.Equal(b))
}
