package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction action constants
const (
	ActionBuy  = "buy"
	ActionSell = "sell"
)

// ValidAction reports whether a is a known transaction action
func ValidAction(a string) bool {
	return a == ActionBuy || a == ActionSell
}

// Transaction is an immutable record of a single buy or sell event.
// Total is fixed at quantity x price when the record is created and is
// never recomputed afterwards.
type Transaction struct {
	ID              int             `json:"id"`
	UserID          int             `json:"-"`
	Symbol          string          `json:"symbol"`
	Name            string          `json:"name"`
	AssetType       string          `json:"type"`
	Action          string          `json:"action"`
	Quantity        decimal.Decimal `json:"quantity"`
	Price           decimal.Decimal `json:"price"`
	Total           decimal.Decimal `json:"total"`
	Notes           string          `json:"notes,omitempty"`
	TransactionDate time.Time       `json:"transactionDate"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// Stats summarizes realized profit/loss over a user's transaction history
type Stats struct {
	TotalTransactions    int             `json:"totalTransactions"`
	TotalBuys            decimal.Decimal `json:"totalBuys"`
	TotalSells           decimal.Decimal `json:"totalSells"`
	ProfitLoss           decimal.Decimal `json:"profitLoss"`
	ProfitLossPercentage decimal.Decimal `json:"profitLossPercentage"`
}
