package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"coffeehouse/cart"
	"coffeehouse/catalog"
	"coffeehouse/metrics"
	"coffeehouse/middleware"
	"coffeehouse/models"
	"coffeehouse/pricing"
	"coffeehouse/storage"
)

// CartController handles cart-related requests
type CartController struct {
	Carts *cart.Manager
	Rates pricing.Rates
}

// NewCartController creates a new CartController
func NewCartController(carts *cart.Manager, rates pricing.Rates) *CartController {
	return &CartController{Carts: carts, Rates: rates}
}

// cartResponse is the cart payload: items plus the current quote.
type cartResponse struct {
	Items  []models.LineItem `json:"items"`
	Totals models.Totals     `json:"totals"`
}

func (cc *CartController) storeFor(w http.ResponseWriter, r *http.Request) (*cart.Store, bool) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return nil, false
	}
	store, err := cc.Carts.For(r.Context(), claims.Email)
	if err != nil {
		http.Error(w, "Error loading cart", http.StatusInternalServerError)
		return nil, false
	}
	return store, true
}

// GetCart returns the cart items with totals at the standard rates.
func (cc *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	store, ok := cc.storeFor(w, r)
	if !ok {
		return
	}
	cc.respond(w, store, "")
}

// Quote returns the cart totals with an optional ?promo= code
// applied.
func (cc *CartController) Quote(w http.ResponseWriter, r *http.Request) {
	store, ok := cc.storeFor(w, r)
	if !ok {
		return
	}
	cc.respond(w, store, r.URL.Query().Get("promo"))
}

// AddToCart adds a product to the user's cart
func (cc *CartController) AddToCart(w http.ResponseWriter, r *http.Request) {
	store, ok := cc.storeFor(w, r)
	if !ok {
		return
	}

	var req struct {
		ProductID string            `json:"product_id"`
		Qty       int               `json:"qty"`
		Options   map[string]string `json:"options"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	item, err := store.AddItem(r.Context(), req.ProductID, req.Qty, req.Options)
	if err != nil {
		cc.fail(w, err)
		return
	}
	metrics.CartMutations.WithLabelValues("add").Inc()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(item)
}

// RemoveFromCart removes a line item from the user's cart
func (cc *CartController) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	store, ok := cc.storeFor(w, r)
	if !ok {
		return
	}

	if err := store.RemoveItem(r.Context(), mux.Vars(r)["itemId"]); err != nil {
		cc.fail(w, err)
		return
	}
	metrics.CartMutations.WithLabelValues("remove").Inc()
	cc.respond(w, store, "")
}

// SetQuantity overwrites a line item's quantity. Zero or below
// removes the item.
func (cc *CartController) SetQuantity(w http.ResponseWriter, r *http.Request) {
	store, ok := cc.storeFor(w, r)
	if !ok {
		return
	}

	var req struct {
		Qty int `json:"qty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	if err := store.SetQuantity(r.Context(), mux.Vars(r)["itemId"], req.Qty); err != nil {
		cc.fail(w, err)
		return
	}
	metrics.CartMutations.WithLabelValues("set_quantity").Inc()
	cc.respond(w, store, "")
}

// ClearCart empties the user's cart.
func (cc *CartController) ClearCart(w http.ResponseWriter, r *http.Request) {
	store, ok := cc.storeFor(w, r)
	if !ok {
		return
	}

	if err := store.Clear(r.Context()); err != nil {
		cc.fail(w, err)
		return
	}
	metrics.CartMutations.WithLabelValues("clear").Inc()
	cc.respond(w, store, "")
}

// PatchOptions shallow-merges option changes into a line item.
func (cc *CartController) PatchOptions(w http.ResponseWriter, r *http.Request) {
	store, ok := cc.storeFor(w, r)
	if !ok {
		return
	}

	var req struct {
		Options map[string]string `json:"options"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	if err := store.PatchOptions(r.Context(), mux.Vars(r)["itemId"], req.Options); err != nil {
		cc.fail(w, err)
		return
	}
	metrics.CartMutations.WithLabelValues("patch_options").Inc()
	cc.respond(w, store, "")
}

func (cc *CartController) respond(w http.ResponseWriter, store *cart.Store, promo string) {
	items := store.Items()
	rate, _ := pricing.LookupPromo(promo)
	resp := cartResponse{
		Items:  items,
		Totals: pricing.Quote(items, cc.Rates, rate),
	}
	if resp.Items == nil {
		resp.Items = []models.LineItem{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (cc *CartController) fail(w http.ResponseWriter, err error) {
	var perr *storage.PersistenceError
	switch {
	case errors.Is(err, catalog.ErrProductNotFound):
		http.Error(w, "Product not found", http.StatusNotFound)
	case errors.As(err, &perr):
		http.Error(w, "Error updating cart", http.StatusInternalServerError)
	default:
		http.Error(w, "Error updating cart", http.StatusInternalServerError)
	}
}
