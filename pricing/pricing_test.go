package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coffeehouse/models"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func item(price string, qty int) models.LineItem {
	return models.LineItem{Price: d(price), Qty: qty}
}

// Two items at 10x2 and 5x1 with 8% tax and 5.99 shipping.
func scenarioCart() []models.LineItem {
	return []models.LineItem{item("10", 2), item("5", 1)}
}

func scenarioRates() Rates {
	return Rates{Shipping: d("5.99"), TaxRate: d("0.08")}
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, got.Equal(d(want)), "want %s, got %s", want, got)
}

func TestQuoteNoDiscount(t *testing.T) {
	totals := Quote(scenarioCart(), scenarioRates(), decimal.Zero)

	assertDecimal(t, "25.00", totals.Subtotal)
	assertDecimal(t, "0", totals.Discount)
	assertDecimal(t, "2.00", totals.Tax)
	assertDecimal(t, "5.99", totals.Shipping)
	assertDecimal(t, "32.99", totals.Total)
}

func TestQuoteWithTenPercentDiscount(t *testing.T) {
	totals := Quote(scenarioCart(), scenarioRates(), d("0.10"))

	assertDecimal(t, "25.00", totals.Subtotal)
	assertDecimal(t, "2.50", totals.Discount)
	assertDecimal(t, "1.80", totals.Tax)
	assertDecimal(t, "5.99", totals.Shipping)
	assertDecimal(t, "30.29", totals.Total)
}

func TestQuoteEmptyCartChargesNothing(t *testing.T) {
	totals := Quote(nil, scenarioRates(), d("0.10"))

	assertDecimal(t, "0", totals.Subtotal)
	assertDecimal(t, "0", totals.Discount)
	assertDecimal(t, "0", totals.Tax)
	assertDecimal(t, "0", totals.Shipping)
	assertDecimal(t, "0", totals.Total)
}

func TestSubtotalOrderInvariant(t *testing.T) {
	forward := []models.LineItem{item("24.99", 1), item("18.99", 3), item("22.99", 2)}
	backward := []models.LineItem{item("22.99", 2), item("18.99", 3), item("24.99", 1)}

	a := Quote(forward, scenarioRates(), decimal.Zero)
	b := Quote(backward, scenarioRates(), decimal.Zero)
	assert.True(t, a.Subtotal.Equal(b.Subtotal))
	assert.True(t, a.Total.Equal(b.Total))
}

func TestLookupPromo(t *testing.T) {
	tests := []struct {
		code string
		rate string
		ok   bool
	}{
		{"WELCOME10", "0.10", true},
		{"welcome10", "0.10", true},
		{"  Coffee15 ", "0.15", true},
		{"SAVE20", "0.20", true},
		{"BOGUS", "0", false},
		{"", "0", false},
	}
	for _, tt := range tests {
		rate, ok := LookupPromo(tt.code)
		assert.Equal(t, tt.ok, ok, "code %q", tt.code)
		assertDecimal(t, tt.rate, rate)
	}
}

func TestLookupPromoIdempotent(t *testing.T) {
	first, ok := LookupPromo("WELCOME10")
	require.True(t, ok)
	second, ok := LookupPromo("WELCOME10")
	require.True(t, ok)
	assert.True(t, first.Equal(second))

	a := Quote(scenarioCart(), scenarioRates(), first)
	b := Quote(scenarioCart(), scenarioRates(), second)
	assert.True(t, a.Total.Equal(b.Total))
}

func TestDefaultRates(t *testing.T) {
	rates := DefaultRates()
	assertDecimal(t, "5.99", rates.Shipping)
	assertDecimal(t, "0.08", rates.TaxRate)
}
