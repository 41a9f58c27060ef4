// Package metrics registers the service's Prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// CartMutations counts cart operations by kind (add, remove,
	// set_quantity, patch_options, clear).
	CartMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "coffeehouse",
		Name:      "cart_mutations_total",
		Help:      "Cart mutations by operation.",
	}, []string{"op"})

	// OrdersPlaced counts confirmed orders.
	OrdersPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "coffeehouse",
		Name:      "orders_placed_total",
		Help:      "Orders confirmed at checkout.",
	})

	// CheckoutFailures counts rejected checkout submissions by
	// reason (validation, empty_cart, payment, persistence).
	CheckoutFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "coffeehouse",
		Name:      "checkout_failures_total",
		Help:      "Checkout submissions rejected, by reason.",
	}, []string{"reason"})
)

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
