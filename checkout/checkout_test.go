package checkout

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coffeehouse/cart"
	"coffeehouse/catalog"
	"coffeehouse/models"
	"coffeehouse/payment"
	"coffeehouse/pricing"
	"coffeehouse/storage"
)

func testCatalog() *catalog.Catalog {
	return catalog.New([]models.Product{
		{ID: "ethiopian", Title: "Ethiopian Single Origin", Price: decimal.RequireFromString("10")},
		{ID: "colombian", Title: "Colombian Medium Blend", Price: decimal.RequireFromString("5")},
	})
}

func testRates() pricing.Rates {
	return pricing.Rates{
		Shipping: decimal.RequireFromString("5.99"),
		TaxRate:  decimal.RequireFromString("0.08"),
	}
}

func validCustomer() models.Customer {
	return models.Customer{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Address:   "12 Analytical Way",
		City:      "London",
		ZipCode:   "EC1A 1AA",
		Country:   "UK",
	}
}

type fixture struct {
	port   *storage.Memory
	store  *cart.Store
	orders *Orders
	writer *Writer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	port := storage.NewMemory()
	store := cart.NewStore(port, testCatalog(), storage.CartKey("ada@example.com"), zerolog.Nop())
	require.NoError(t, store.Hydrate(context.Background()))
	orders := NewOrders(port)
	writer := NewWriter(orders, testRates(), &payment.Simulated{}, zerolog.Nop())
	return &fixture{port: port, store: store, orders: orders, writer: writer}
}

func (f *fixture) fillCart(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	_, err := f.store.AddItem(ctx, "ethiopian", 2, nil)
	require.NoError(t, err)
	_, err = f.store.AddItem(ctx, "colombian", 1, nil)
	require.NoError(t, err)
}

func TestSubmitConfirmsOrderAndClearsCart(t *testing.T) {
	f := newFixture(t)
	f.fillCart(t)
	ctx := context.Background()

	order, err := f.writer.Submit(ctx, f.store, validCustomer(), "credit-card", "")
	require.NoError(t, err)

	assert.NotEmpty(t, order.ID)
	assert.True(t, strings.HasPrefix(order.ID, "COF"))
	assert.Equal(t, models.OrderStatusConfirmed, order.Status)
	assert.Len(t, order.Items, 2)
	assert.True(t, order.Totals.Subtotal.Equal(decimal.RequireFromString("25.00")))
	assert.True(t, order.Totals.Tax.Equal(decimal.RequireFromString("2.00")))
	assert.True(t, order.Totals.Total.Equal(decimal.RequireFromString("32.99")))
	assert.Equal(t, 0, f.store.Len(), "cart clears on confirmation")

	recorded, err := f.orders.List(ctx, "ada@example.com")
	require.NoError(t, err)
	require.Len(t, recorded, 1)
	assert.Equal(t, order.ID, recorded[0].ID)
}

func TestSubmitAppliesPromoCode(t *testing.T) {
	f := newFixture(t)
	f.fillCart(t)

	order, err := f.writer.Submit(context.Background(), f.store, validCustomer(), "credit-card", "welcome10")
	require.NoError(t, err)

	assert.True(t, order.Totals.Discount.Equal(decimal.RequireFromString("2.50")))
	assert.True(t, order.Totals.Tax.Equal(decimal.RequireFromString("1.80")))
	assert.True(t, order.Totals.Total.Equal(decimal.RequireFromString("30.29")))
}

func TestSubmitUnknownPromoCodeIsNotAnError(t *testing.T) {
	f := newFixture(t)
	f.fillCart(t)

	order, err := f.writer.Submit(context.Background(), f.store, validCustomer(), "credit-card", "BOGUS")
	require.NoError(t, err)
	assert.True(t, order.Totals.Discount.IsZero())
}

func TestSubmitOrderIDsUnique(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seen := make(map[string]bool)

	for i := 0; i < 5; i++ {
		f.fillCart(t)
		order, err := f.writer.Submit(ctx, f.store, validCustomer(), "credit-card", "")
		require.NoError(t, err)
		assert.False(t, seen[order.ID], "order id %s repeated", order.ID)
		seen[order.ID] = true
	}

	recorded, err := f.orders.List(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Len(t, recorded, 5)
}

func TestSubmitValidationNamesFirstOffendingField(t *testing.T) {
	f := newFixture(t)
	f.fillCart(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*models.Customer)
		field  string
	}{
		{"missing first name", func(c *models.Customer) { c.FirstName = "" }, "firstName"},
		{"blank last name", func(c *models.Customer) { c.LastName = "   " }, "lastName"},
		{"missing email", func(c *models.Customer) { c.Email = "" }, "email"},
		{"malformed email", func(c *models.Customer) { c.Email = "ada@no-tld" }, "email"},
		{"email with spaces", func(c *models.Customer) { c.Email = "ada lovelace@example.com" }, "email"},
		{"missing address", func(c *models.Customer) { c.Address = "" }, "address"},
		{"missing city", func(c *models.Customer) { c.City = "" }, "city"},
		{"missing zip", func(c *models.Customer) { c.ZipCode = "" }, "zipCode"},
		{"missing country", func(c *models.Customer) { c.Country = "" }, "country"},
		{"first offender wins", func(c *models.Customer) { c.FirstName = ""; c.City = "" }, "firstName"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			customer := validCustomer()
			tt.mutate(&customer)

			_, err := f.writer.Submit(ctx, f.store, customer, "credit-card", "")
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, 2, f.store.Len(), "failed validation must not touch the cart")
		})
	}
}

func TestSubmitRejectsUnknownPaymentMethod(t *testing.T) {
	f := newFixture(t)
	f.fillCart(t)

	_, err := f.writer.Submit(context.Background(), f.store, validCustomer(), "barter", "")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "paymentMethod", verr.Field)
}

func TestSubmitEmptyCart(t *testing.T) {
	f := newFixture(t)

	_, err := f.writer.Submit(context.Background(), f.store, validCustomer(), "credit-card", "")
	require.ErrorIs(t, err, ErrEmptyCart)
}

func TestSubmitFailedAppendKeepsCart(t *testing.T) {
	f := newFixture(t)
	f.fillCart(t)
	ctx := context.Background()

	f.port.FailKey(storage.OrdersKey, errors.New("quota exceeded"))

	_, err := f.writer.Submit(ctx, f.store, validCustomer(), "credit-card", "")
	var perr *storage.PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, f.store.Len(), "cart survives a failed order write")

	recorded, err := f.orders.List(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Empty(t, recorded)
}

func TestSubmitCancelledContextAbortsCharge(t *testing.T) {
	port := storage.NewMemory()
	store := cart.NewStore(port, testCatalog(), storage.CartKey("ada@example.com"), zerolog.Nop())
	require.NoError(t, store.Hydrate(context.Background()))
	_, err := store.AddItem(context.Background(), "ethiopian", 1, nil)
	require.NoError(t, err)

	orders := NewOrders(port)
	writer := NewWriter(orders, testRates(), &payment.Simulated{Latency: time.Second}, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err = writer.Submit(ctx, store, validCustomer(), "credit-card", "")
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, store.Len(), "aborted charge leaves the cart alone")

	recorded, err := orders.List(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.Empty(t, recorded)
}

func TestOrdersGet(t *testing.T) {
	f := newFixture(t)
	f.fillCart(t)
	ctx := context.Background()

	order, err := f.writer.Submit(ctx, f.store, validCustomer(), "paypal", "")
	require.NoError(t, err)

	got, err := f.orders.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)
	assert.Equal(t, "paypal", got.PaymentMethod)

	_, err = f.orders.Get(ctx, "COF000-missing")
	require.ErrorIs(t, err, ErrOrderNotFound)
}
