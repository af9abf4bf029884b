package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/trogers1052/finance-tracker/internal/accounting"
	"github.com/trogers1052/finance-tracker/internal/models"
)

type addTransactionRequest struct {
	Symbol   string          `json:"symbol"`
	Name     string          `json:"name"`
	Type     string          `json:"type"`
	Action   string          `json:"action"`
	Quantity decimal.Decimal `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Notes    string          `json:"notes"`
}

// GetTransactions handles GET /api/transactions
func (h *Handler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.db.GetTransactionsByUser(userID(r))
	if err != nil {
		respondError(w, err, "Failed to fetch transactions")
		return
	}
	respondJSON(w, http.StatusOK, transactions)
}

// AddTransaction handles POST /api/transactions
func (h *Handler) AddTransaction(w http.ResponseWriter, r *http.Request) {
	var req addTransactionRequest
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
	if !models.ValidAction(req.Action) {
		respondMessage(w, http.StatusBadRequest, "action must be buy or sell")
		return
	}
	if req.Quantity.IsNegative() || req.Price.IsNegative() {
		respondMessage(w, http.StatusBadRequest, "quantity and price cannot be negative")
		return
	}

	transaction := &models.Transaction{
		UserID:    userID(r),
		Symbol:    req.Symbol,
		Name:      req.Name,
		AssetType: req.Type,
		Action:    req.Action,
		Quantity:  req.Quantity,
		Price:     req.Price,
		Notes:     req.Notes,
	}
	if err := h.db.CreateTransaction(transaction); err != nil {
		respondError(w, err, "Failed to record transaction")
		return
	}

	if h.producer != nil {
		if err := h.producer.PublishTransactionRecorded(r.Context(), transaction); err != nil {
			log.Printf("failed to publish transaction event: %v", err)
		}
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":     "Transaction recorded",
		"transaction": transaction,
	})
}

// GetTransactionStats handles GET /api/transactions/stats
func (h *Handler) GetTransactionStats(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.db.GetTransactionsByUser(userID(r))
	if err != nil {
		respondError(w, err, "Failed to calculate stats")
		return
	}
	respondJSON(w, http.StatusOK, accounting.ComputeStats(transactions))
}

// DeleteTransaction handles DELETE /api/transactions/{id}
func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	if err := h.db.DeleteTransaction(userID(r), id); err != nil {
		respondError(w, err, "Transaction not found")
		return
	}
	respondMessage(w, http.StatusOK, "Transaction deleted")
}
