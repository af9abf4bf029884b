package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/trogers1052/finance-tracker/internal/apperr"
)

// GetTopCryptos handles GET /api/crypto/top
func (h *Handler) GetTopCryptos(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			respondMessage(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	cryptos, err := h.market.TopCryptos(r.Context(), limit)
	if err != nil {
		respondError(w, err, "Failed to fetch crypto data")
		return
	}
	respondJSON(w, http.StatusOK, cryptos)
}

// GetCryptoBySymbol handles GET /api/crypto/{symbol}
func (h *Handler) GetCryptoBySymbol(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]

	crypto, err := h.market.CryptoBySymbol(r.Context(), symbol)
	if err != nil {
		if apperr.IsNotFound(err) {
			respondMessage(w, http.StatusNotFound, "Cryptocurrency not found")
			return
		}
		respondError(w, err, "Failed to fetch crypto data")
		return
	}
	respondJSON(w, http.StatusOK, crypto)
}

// GetNews handles GET /api/news
func (h *Handler) GetNews(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	news := h.news.News(r.URL.Query().Get("category"), limit)
	respondJSON(w, http.StatusOK, news)
}
