// Package pricing derives order totals from a cart: subtotal,
// promo discount, tax on the discounted amount, flat shipping.
package pricing

import (
	"strings"

	"github.com/shopspring/decimal"

	"coffeehouse/models"
)

// Rates are the external pricing inputs. Defaults match the
// storefront: $5.99 flat shipping, 8% tax.
type Rates struct {
	Shipping decimal.Decimal
	TaxRate  decimal.Decimal
}

// DefaultRates returns the storefront's standard rates.
func DefaultRates() Rates {
	return Rates{
		Shipping: decimal.RequireFromString("5.99"),
		TaxRate:  decimal.RequireFromString("0.08"),
	}
}

// promoCodes maps an uppercase promo code to its fractional discount.
var promoCodes = map[string]decimal.Decimal{
	"WELCOME10": decimal.RequireFromString("0.10"),
	"COFFEE15":  decimal.RequireFromString("0.15"),
	"SAVE20":    decimal.RequireFromString("0.20"),
}

// LookupPromo case-normalizes and trims code and returns its discount
// rate. An unknown or empty code yields a zero rate and ok=false;
// that is a UI message, not an error.
func LookupPromo(code string) (decimal.Decimal, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return decimal.Zero, false
	}
	rate, ok := promoCodes[code]
	if !ok {
		return decimal.Zero, false
	}
	return rate, true
}

// Quote computes the totals for the given line items. Every derived
// figure is rounded to cents. An empty cart quotes zero everywhere,
// shipping included: no items, nothing to ship.
func Quote(items []models.LineItem, rates Rates, discountRate decimal.Decimal) models.Totals {
	if len(items) == 0 {
		return models.Totals{
			Subtotal: decimal.Zero,
			Discount: decimal.Zero,
			Shipping: decimal.Zero,
			Tax:      decimal.Zero,
			Total:    decimal.Zero,
		}
	}

	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Subtotal())
	}
	subtotal = subtotal.Round(2)

	discount := subtotal.Mul(discountRate).Round(2)
	taxable := subtotal.Sub(discount)
	tax := taxable.Mul(rates.TaxRate).Round(2)
	shipping := rates.Shipping.Round(2)
	total := taxable.Add(tax).Add(shipping)

	return models.Totals{
		Subtotal: subtotal,
		Discount: discount,
		Shipping: shipping,
		Tax:      tax,
		Total:    total,
	}
}
