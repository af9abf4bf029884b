package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/trogers1052/finance-tracker/internal/apperr"
	"github.com/trogers1052/finance-tracker/internal/models"
)

type addWatchlistRequest struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Type   string `json:"type"`
}

// GetWatchlist handles GET /api/watchlist
func (h *Handler) GetWatchlist(w http.ResponseWriter, r *http.Request) {
	items, err := h.db.GetWatchlistByUser(userID(r))
	if err != nil {
		respondError(w, err, "Failed to fetch watchlist")
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// AddWatchlistItem handles POST /api/watchlist
func (h *Handler) AddWatchlistItem(w http.ResponseWriter, r *http.Request) {
	var req addWatchlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Symbol == "" || req.Name == "" {
		respondMessage(w, http.StatusBadRequest, "symbol and name are required")
		return
	}
	if req.Type != "" && !models.ValidAssetType(req.Type) {
		respondMessage(w, http.StatusBadRequest, "type must be stock or crypto")
		return
	}

	item := &models.WatchlistItem{
		UserID:    userID(r),
		Symbol:    req.Symbol,
		Name:      req.Name,
		AssetType: req.Type,
	}
	if err := h.db.CreateWatchlistItem(item); err != nil {
		if apperr.IsDuplicate(err) {
			respondMessage(w, http.StatusBadRequest, "Already in watchlist")
			return
		}
		respondError(w, err, "Failed to add to watchlist")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Added to watchlist",
		"item":    item,
	})
}

// RemoveWatchlistItem handles DELETE /api/watchlist/{id}
func (h *Handler) RemoveWatchlistItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid watchlist id")
		return
	}

	if err := h.db.DeleteWatchlistItem(userID(r), id); err != nil {
		respondError(w, err, "Item not found in watchlist")
		return
	}
	respondMessage(w, http.StatusOK, "Removed from watchlist")
}
