package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"coffeehouse/cart"
	"coffeehouse/checkout"
	"coffeehouse/metrics"
	"coffeehouse/middleware"
	"coffeehouse/models"
	"coffeehouse/utils"
)

// OrderController handles checkout submission and order history.
type OrderController struct {
	Carts        *cart.Manager
	Writer       *checkout.Writer
	Orders       *checkout.Orders
	EmailService *utils.EmailService
	Log          zerolog.Logger
}

// NewOrderController creates a new OrderController
func NewOrderController(carts *cart.Manager, writer *checkout.Writer, orders *checkout.Orders, emailService *utils.EmailService, log zerolog.Logger) *OrderController {
	return &OrderController{
		Carts:        carts,
		Writer:       writer,
		Orders:       orders,
		EmailService: emailService,
		Log:          log,
	}
}

// checkoutRequest is the checkout form payload.
type checkoutRequest struct {
	models.Customer
	PaymentMethod string `json:"payment_method"`
	PromoCode     string `json:"promo_code"`
}

// Checkout submits the authenticated user's cart as an order.
func (oc *OrderController) Checkout(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	store, err := oc.Carts.For(r.Context(), claims.Email)
	if err != nil {
		http.Error(w, "Error loading cart", http.StatusInternalServerError)
		return
	}

	order, err := oc.Writer.Submit(r.Context(), store, req.Customer, strings.ToLower(req.PaymentMethod), req.PromoCode)
	if err != nil {
		oc.failSubmit(w, err)
		return
	}
	metrics.OrdersPlaced.Inc()

	// Confirmation mail must not hold up the response.
	go func(email string, order models.Order) {
		if err := oc.EmailService.SendOrderConfirmationEmail(email, order); err != nil {
			oc.Log.Error().Err(err).Str("order_id", order.ID).Msg("confirmation email failed")
		}
	}(order.Customer.Email, order)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(order)
}

// GetOrders retrieves all orders for the authenticated user
func (oc *OrderController) GetOrders(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	orders, err := oc.Orders.List(r.Context(), claims.Email)
	if err != nil {
		http.Error(w, "Failed to retrieve orders", http.StatusInternalServerError)
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(orders)
}

// GetOrder retrieves one order by id, for the confirmation view. Only
// the order's owner can read it.
func (oc *OrderController) GetOrder(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	order, err := oc.Orders.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, checkout.ErrOrderNotFound) {
			http.Error(w, "Order not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to retrieve order", http.StatusInternalServerError)
		return
	}
	if !strings.EqualFold(order.Customer.Email, claims.Email) {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(order)
}

func (oc *OrderController) failSubmit(w http.ResponseWriter, err error) {
	var verr *checkout.ValidationError
	switch {
	case errors.As(err, &verr):
		metrics.CheckoutFailures.WithLabelValues("validation").Inc()
		http.Error(w, verr.Field+" is missing or invalid", http.StatusBadRequest)
	case errors.Is(err, checkout.ErrEmptyCart):
		metrics.CheckoutFailures.WithLabelValues("empty_cart").Inc()
		http.Error(w, "Cart is empty", http.StatusBadRequest)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		metrics.CheckoutFailures.WithLabelValues("payment").Inc()
		http.Error(w, "Payment timed out", http.StatusGatewayTimeout)
	default:
		metrics.CheckoutFailures.WithLabelValues("persistence").Inc()
		http.Error(w, "Failed to create order", http.StatusInternalServerError)
	}
}
