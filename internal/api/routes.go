package api

import (
	"github.com/gorilla/mux"
)

// SetupRoutes configures all API routes
func SetupRoutes(handler *Handler) *mux.Router {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()

	// Public routes
	api.HandleFunc("/health", handler.HealthCheck).Methods("GET")
	api.HandleFunc("/auth/register", handler.Register).Methods("POST")
	api.HandleFunc("/auth/login", handler.Login).Methods("POST")

	// Protected routes
	protected := api.NewRoute().Subrouter()
	protected.Use(handler.Authenticate)

	protected.HandleFunc("/auth/me", handler.Me).Methods("GET")
	protected.HandleFunc("/auth/profile", handler.UpdateProfile).Methods("PUT")

	protected.HandleFunc("/portfolio", handler.GetPortfolio).Methods("GET")
	protected.HandleFunc("/portfolio", handler.AddHolding).Methods("POST")
	protected.HandleFunc("/portfolio/{id}", handler.UpdateHolding).Methods("PUT")
	protected.HandleFunc("/portfolio/{id}", handler.DeleteHolding).Methods("DELETE")

	protected.HandleFunc("/transactions", handler.GetTransactions).Methods("GET")
	protected.HandleFunc("/transactions", handler.AddTransaction).Methods("POST")
	protected.HandleFunc("/transactions/stats", handler.GetTransactionStats).Methods("GET")
	protected.HandleFunc("/transactions/{id}", handler.DeleteTransaction).Methods("DELETE")

	protected.HandleFunc("/watchlist", handler.GetWatchlist).Methods("GET")
	protected.HandleFunc("/watchlist", handler.AddWatchlistItem).Methods("POST")
	protected.HandleFunc("/watchlist/{id}", handler.RemoveWatchlistItem).Methods("DELETE")

	protected.HandleFunc("/crypto/top", handler.GetTopCryptos).Methods("GET")
	protected.HandleFunc("/crypto/{symbol}", handler.GetCryptoBySymbol).Methods("GET")

	protected.HandleFunc("/news", handler.GetNews).Methods("GET")

	return r
}
