package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/trogers1052/finance-tracker/internal/apperr"
	"github.com/trogers1052/finance-tracker/internal/auth"
	"github.com/trogers1052/finance-tracker/internal/database"
	"github.com/trogers1052/finance-tracker/internal/kafka"
	"github.com/trogers1052/finance-tracker/internal/models"
)

// MarketData is the capability the crypto endpoints need from the
// market data gateway
type MarketData interface {
	TopCryptos(ctx context.Context, limit int) ([]models.Crypto, error)
	CryptoBySymbol(ctx context.Context, symbol string) (*models.Crypto, error)
}

// NewsSource serves market news articles
type NewsSource interface {
	News(category string, limit int) []models.NewsItem
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	db       *database.DB
	tokens   *auth.TokenIssuer
	market   MarketData
	news     NewsSource
	producer *kafka.Producer
}

// NewHandler creates a new Handler. producer may be nil, in which case
// no ledger events are published.
func NewHandler(db *database.DB, tokens *auth.TokenIssuer, market MarketData, news NewsSource, producer *kafka.Producer) *Handler {
	return &Handler{
		db:       db,
		tokens:   tokens,
		market:   market,
		news:     news,
		producer: producer,
	}
}

// HealthCheck handles GET /api/health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "Finance Tracker API is running",
	})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

// respondError maps an error from the lower layers to an HTTP status.
// Stack traces and internal details never reach the client.
func respondError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case apperr.IsValidation(err):
		respondMessage(w, http.StatusBadRequest, err.Error())
	case apperr.IsDuplicate(err):
		respondMessage(w, http.StatusBadRequest, fallback)
	case apperr.IsNotFound(err):
		respondMessage(w, http.StatusNotFound, fallback)
	case apperr.IsUnauthorized(err):
		respondMessage(w, http.StatusUnauthorized, fallback)
	case apperr.IsGateway(err):
		respondMessage(w, http.StatusBadGateway, fallback)
	default:
		log.Printf("unexpected error: %v", err)
		respondMessage(w, http.StatusInternalServerError, fallback)
	}
}
