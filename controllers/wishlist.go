package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"coffeehouse/catalog"
	"coffeehouse/middleware"
	"coffeehouse/wishlist"
)

// WishlistController handles the per-user wishlist.
type WishlistController struct {
	Wishlist *wishlist.Service
}

// NewWishlistController creates a new WishlistController
func NewWishlistController(svc *wishlist.Service) *WishlistController {
	return &WishlistController{Wishlist: svc}
}

// Toggle flips a product's wishlist membership for the authenticated
// user.
func (wc *WishlistController) Toggle(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	added, err := wc.Wishlist.Toggle(r.Context(), claims.Email, mux.Vars(r)["productId"])
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			http.Error(w, "Product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Error updating wishlist", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"in_wishlist": added})
}

// List returns the authenticated user's saved product ids.
func (wc *WishlistController) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ids, err := wc.Wishlist.List(r.Context(), claims.Email)
	if err != nil {
		http.Error(w, "Error loading wishlist", http.StatusInternalServerError)
		return
	}
	if ids == nil {
		ids = []string{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ids)
}
