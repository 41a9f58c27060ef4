// Package checkout owns the one irreversible transition in the
// system: a populated cart becomes a confirmed order. Validation is
// all-or-nothing; nothing changes unless the order is recorded.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"coffeehouse/cart"
	"coffeehouse/models"
	"coffeehouse/payment"
	"coffeehouse/pricing"
)

// ErrEmptyCart rejects checkout on a cart with no items.
var ErrEmptyCart = errors.New("checkout: cart is empty")

// ValidationError names the first checkout field that is missing or
// malformed. The submit performs no state change when returning one.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("checkout: field %q is missing or invalid", e.Field)
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// orderIDPrefix matches the storefront's order numbering.
const orderIDPrefix = "COF"

// Writer performs checkout submissions for any user's cart.
type Writer struct {
	orders  *Orders
	rates   pricing.Rates
	gateway payment.Gateway
	now     func() time.Time
	log     zerolog.Logger
}

// NewWriter returns a Writer recording orders through the given
// repository and charging through the given gateway.
func NewWriter(orders *Orders, rates pricing.Rates, gateway payment.Gateway, log zerolog.Logger) *Writer {
	return &Writer{
		orders:  orders,
		rates:   rates,
		gateway: gateway,
		now:     time.Now,
		log:     log,
	}
}

// Submit validates the customer fields, prices the cart, charges the
// payment, records the order, and finally clears the cart. A failure
// before the order append leaves every piece of state untouched; a
// failed append leaves the cart intact.
func (w *Writer) Submit(ctx context.Context, store *cart.Store, customer models.Customer, paymentMethod, promoCode string) (models.Order, error) {
	if err := validateCustomer(customer); err != nil {
		return models.Order{}, err
	}
	if !payment.KnownMethod(paymentMethod) {
		return models.Order{}, &ValidationError{Field: "paymentMethod"}
	}

	items := store.Items()
	if len(items) == 0 {
		return models.Order{}, ErrEmptyCart
	}

	discountRate, _ := pricing.LookupPromo(promoCode)
	totals := pricing.Quote(items, w.rates, discountRate)

	if err := w.gateway.Charge(ctx, totals.Total, paymentMethod); err != nil {
		return models.Order{}, fmt.Errorf("checkout: charging payment: %w", err)
	}

	placedAt := w.now().UTC()
	order := models.Order{
		ID:            newOrderID(placedAt),
		Customer:      customer,
		PaymentMethod: paymentMethod,
		Items:         items,
		Totals:        totals,
		PlacedAt:      placedAt,
		Status:        models.OrderStatusConfirmed,
	}

	if err := w.orders.Append(ctx, order); err != nil {
		return models.Order{}, err
	}

	if err := store.Clear(ctx); err != nil {
		// The order is already on record; surface the divergence
		// instead of pretending the cart was cleared.
		w.log.Error().Err(err).Str("order_id", order.ID).Msg("order recorded but cart clear failed")
		return order, fmt.Errorf("checkout: order %s recorded but cart not cleared: %w", order.ID, err)
	}

	w.log.Info().Str("order_id", order.ID).Str("total", totals.Total.StringFixed(2)).Msg("order confirmed")
	return order, nil
}

// newOrderID keeps the storefront's COF+millis shape but appends a
// random fragment so ids stay unique under concurrent submissions.
func newOrderID(ts time.Time) string {
	return orderIDPrefix + strconv.FormatInt(ts.UnixMilli(), 10) + "-" + uuid.NewString()[:8]
}

// validateCustomer checks the fields in form order; the first blank
// field names the ValidationError.
func validateCustomer(c models.Customer) error {
	fields := []struct {
		name  string
		value string
	}{
		{"firstName", c.FirstName},
		{"lastName", c.LastName},
		{"email", c.Email},
		{"address", c.Address},
		{"city", c.City},
		{"zipCode", c.ZipCode},
		{"country", c.Country},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return &ValidationError{Field: f.name}
		}
	}
	if !emailPattern.MatchString(c.Email) {
		return &ValidationError{Field: "email"}
	}
	return nil
}
