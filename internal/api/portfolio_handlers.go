package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/trogers1052/finance-tracker/internal/models"
)

type addHoldingRequest struct {
	Symbol        string          `json:"symbol"`
	Name          string          `json:"name"`
	Type          string          `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
}

type updateHoldingRequest struct {
	Quantity      *decimal.Decimal `json:"quantity"`
	PurchasePrice *decimal.Decimal `json:"purchasePrice"`
}

// GetPortfolio handles GET /api/portfolio
func (h *Handler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	holdings, err := h.db.GetHoldingsByUser(userID(r))
	if err != nil {
		respondError(w, err, "Failed to fetch portfolio")
		return
	}
	respondJSON(w, http.StatusOK, holdings)
}

// AddHolding handles POST /api/portfolio. A buy of an instrument the
// user already holds merges into the existing row at weighted-average
// cost; a first buy creates the row.
func (h *Handler) AddHolding(w http.ResponseWriter, r *http.Request) {
	var req addHoldingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Symbol == "" || req.Name == "" {
		respondMessage(w, http.StatusBadRequest, "symbol and name are required")
		return
	}
	if !models.ValidAssetType(req.Type) {
		respondMessage(w, http.StatusBadRequest, "type must be stock or crypto")
		return
	}

	holding, created, err := h.db.MergeBuy(userID(r), req.Symbol, req.Name, req.Type, req.Quantity, req.PurchasePrice)
	if err != nil {
		respondError(w, err, "Failed to add holding")
		return
	}

	if h.producer != nil {
		var pubErr error
		if created {
			pubErr = h.producer.PublishHoldingAdded(r.Context(), holding)
		} else {
			pubErr = h.producer.PublishHoldingUpdated(r.Context(), holding)
		}
		if pubErr != nil {
			log.Printf("failed to publish holding event: %v", pubErr)
		}
	}

	if created {
		respondJSON(w, http.StatusCreated, map[string]interface{}{
			"message": "Holding added",
			"holding": holding,
		})
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Holding updated",
		"holding": holding,
	})
}

// UpdateHolding handles PUT /api/portfolio/{id}
func (h *Handler) UpdateHolding(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid holding id")
		return
	}

	var req updateHoldingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Quantity != nil && req.Quantity.IsNegative() {
		respondMessage(w, http.StatusBadRequest, "quantity cannot be negative")
		return
	}
	if req.PurchasePrice != nil && req.PurchasePrice.IsNegative() {
		respondMessage(w, http.StatusBadRequest, "purchase price cannot be negative")
		return
	}

	holding, err := h.db.UpdateHolding(userID(r), id, req.Quantity, req.PurchasePrice)
	if err != nil {
		respondError(w, err, "Holding not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Holding updated",
		"holding": holding,
	})
}

// DeleteHolding handles DELETE /api/portfolio/{id}
func (h *Handler) DeleteHolding(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid holding id")
		return
	}

	holding, err := h.db.GetHoldingByID(userID(r), id)
	if err != nil {
		respondError(w, err, "Holding not found")
		return
	}

	if err := h.db.DeleteHolding(userID(r), id); err != nil {
		respondError(w, err, "Holding not found")
		return
	}

	if h.producer != nil {
		if err := h.producer.PublishHoldingRemoved(r.Context(), holding.UserID, holding.Symbol); err != nil {
			log.Printf("failed to publish holding removed event: %v", err)
		}
	}

	respondMessage(w, http.StatusOK, "Holding removed")
}
