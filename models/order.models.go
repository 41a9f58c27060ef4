package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatusConfirmed is the only status an order ever carries: an
// order exists only once checkout has completed, and there is no
// cancellation or refund flow.
const OrderStatusConfirmed = "confirmed"

// Totals holds the computed pricing breakdown for a cart or order.
// All figures are raw numerics rounded to cents; currency formatting
// is a render-time concern.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Shipping decimal.Decimal `json:"shipping"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// Customer carries the contact and delivery fields collected on the
// checkout form.
type Customer struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address"`
	City      string `json:"city"`
	ZipCode   string `json:"zip_code"`
	Country   string `json:"country"`
}

// Order is an immutable snapshot created at checkout: the cart
// contents, the customer fields, and the totals as computed at
// submission time. It is appended to the orders list and never
// mutated afterwards.
type Order struct {
	ID            string     `json:"order_id"`
	Customer      Customer   `json:"customer"`
	PaymentMethod string     `json:"payment_method"`
	Items         []LineItem `json:"items"`
	Totals        Totals     `json:"totals"`
	PlacedAt      time.Time  `json:"placed_at"`
	Status        string     `json:"status"`
}
