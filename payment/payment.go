// Package payment is the charge boundary at checkout. The storefront
// faked this with a timer; here it is a real call that can time out
// or be cancelled, with an interface where a processor plugs in.
package payment

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Gateway charges the customer. Implementations must honor ctx
// cancellation and deadlines.
type Gateway interface {
	Charge(ctx context.Context, amount decimal.Decimal, method string) error
}

// Methods accepted on the checkout form.
var acceptedMethods = map[string]bool{
	"credit-card": true,
	"paypal":      true,
	"apple-pay":   true,
}

// KnownMethod reports whether method is an accepted payment method.
func KnownMethod(method string) bool {
	return acceptedMethods[method]
}

// Simulated is a gateway that always succeeds after a fixed latency,
// unless the context expires first.
type Simulated struct {
	Latency time.Duration
}

// Charge waits out the configured latency and succeeds. A cancelled
// or expired context aborts the charge with the context's error.
func (g *Simulated) Charge(ctx context.Context, _ decimal.Decimal, _ string) error {
	if g.Latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(g.Latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
