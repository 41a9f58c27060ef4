package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"coffeehouse/cart"
	"coffeehouse/catalog"
	"coffeehouse/checkout"
	"coffeehouse/contact"
	"coffeehouse/controllers"
	"coffeehouse/middleware"
	"coffeehouse/payment"
	"coffeehouse/pricing"
	"coffeehouse/routes"
	"coffeehouse/storage"
	"coffeehouse/users"
	"coffeehouse/utils"
	"coffeehouse/wishlist"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found, proceeding with environment variables")
	}

	// Set the JWT secret key
	utils.JwtKey = []byte(os.Getenv("JWT_SECRET"))
	if len(utils.JwtKey) == 0 {
		log.Fatal().Msg("JWT_SECRET is not set")
	}

	// Initialize EmailService
	emailService := utils.NewEmailService()

	// Connect to MongoDB and back the storage port with it
	client := utils.ConnectDB()
	defer func() {
		if err := client.Disconnect(context.TODO()); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()
	port := storage.NewMongo(client, "coffeehouse")

	// Domain services
	cat := catalog.Default()
	rates := ratesFromEnv()
	carts := cart.NewManager(port, cat, log.Logger)
	orders := checkout.NewOrders(port)
	gateway := &payment.Simulated{Latency: 200 * time.Millisecond}
	writer := checkout.NewWriter(orders, rates, gateway, log.Logger)
	userService := users.NewService(port, emailService, utils.GenerateJWT, log.Logger)
	contactService := contact.NewService(port, emailService, os.Getenv("CONTACT_INBOX"), log.Logger)
	wishlistService := wishlist.NewService(port, cat)

	// Set up the router
	router := mux.NewRouter()
	router.Use(middleware.RequestLogger(log.Logger))
	routes.RegisterRoutes(router, routes.Controllers{
		Users:    controllers.NewUserController(userService),
		Products: controllers.NewProductController(cat),
		Cart:     controllers.NewCartController(carts, rates),
		Orders:   controllers.NewOrderController(carts, writer, orders, emailService, log.Logger),
		Contact:  controllers.NewContactController(contactService),
		Wishlist: controllers.NewWishlistController(wishlistService),
	})

	// Start the server
	listenPort := os.Getenv("PORT")
	if listenPort == "" {
		listenPort = "8000"
	}
	server := &http.Server{
		Addr:         ":" + listenPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info().Str("port", listenPort).Msg("server running")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
	log.Info().Msg("server stopped")
}

// ratesFromEnv reads SHIPPING_COST and TAX_RATE, keeping the
// storefront defaults when unset or malformed.
func ratesFromEnv() pricing.Rates {
	rates := pricing.DefaultRates()
	if v := os.Getenv("SHIPPING_COST"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			rates.Shipping = d
		} else {
			log.Warn().Str("value", v).Msg("invalid SHIPPING_COST, using default")
		}
	}
	if v := os.Getenv("TAX_RATE"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			rates.TaxRate = d
		} else {
			log.Warn().Str("value", v).Msg("invalid TAX_RATE, using default")
		}
	}
	return rates
}
