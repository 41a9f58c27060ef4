package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"coffeehouse/controllers"
	"coffeehouse/metrics"
	"coffeehouse/middleware"
)

// Controllers bundles the handlers RegisterRoutes wires up.
type Controllers struct {
	Users    *controllers.UserController
	Products *controllers.ProductController
	Cart     *controllers.CartController
	Orders   *controllers.OrderController
	Contact  *controllers.ContactController
	Wishlist *controllers.WishlistController
}

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(router *mux.Router, c Controllers) {
	// Public routes
	router.HandleFunc("/register", c.Users.Register).Methods("POST")
	router.HandleFunc("/login", c.Users.Login).Methods("POST")
	router.HandleFunc("/verify", c.Users.VerifyEmail).Methods("GET")

	// Product routes
	router.HandleFunc("/products", c.Products.GetProducts).Methods("GET")
	router.HandleFunc("/products/{id}", c.Products.GetProductByID).Methods("GET")

	// Contact routes
	router.HandleFunc("/contact", c.Contact.SubmitMessage).Methods("POST")
	router.HandleFunc("/newsletter", c.Contact.SubscribeNewsletter).Methods("POST")

	// Operational endpoints
	router.Handle("/metrics", metrics.Handler()).Methods("GET")
	router.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("GET")

	// Protected routes
	protected := router.PathPrefix("/").Subrouter()
	protected.Use(middleware.AuthMiddleware)

	protected.HandleFunc("/profile", c.Users.GetProfile).Methods("GET")
	protected.HandleFunc("/profile", c.Users.UpdateProfile).Methods("PUT")

	// Cart routes
	protected.HandleFunc("/cart", c.Cart.GetCart).Methods("GET")
	protected.HandleFunc("/cart", c.Cart.AddToCart).Methods("POST")
	protected.HandleFunc("/cart", c.Cart.ClearCart).Methods("DELETE")
	protected.HandleFunc("/cart/quote", c.Cart.Quote).Methods("GET")
	protected.HandleFunc("/cart/{itemId}", c.Cart.SetQuantity).Methods("PUT")
	protected.HandleFunc("/cart/{itemId}", c.Cart.PatchOptions).Methods("PATCH")
	protected.HandleFunc("/cart/{itemId}", c.Cart.RemoveFromCart).Methods("DELETE")

	// Checkout and order routes
	protected.HandleFunc("/checkout", c.Orders.Checkout).Methods("POST")
	protected.HandleFunc("/orders", c.Orders.GetOrders).Methods("GET")
	protected.HandleFunc("/orders/{id}", c.Orders.GetOrder).Methods("GET")

	// Wishlist routes
	protected.HandleFunc("/wishlist", c.Wishlist.List).Methods("GET")
	protected.HandleFunc("/wishlist/{productId}", c.Wishlist.Toggle).Methods("POST")
}
