// Package accounting holds the pure portfolio accounting logic: merging
// buy events into a holding at weighted-average cost, and folding a
// transaction history into realized profit/loss statistics. It has no
// storage or network dependencies.
package accounting

import (
	"github.com/shopspring/decimal"

	"github.com/trogers1052/finance-tracker/internal/apperr"
	"github.com/trogers1052/finance-tracker/internal/models"
)

var hundred = decimal.NewFromInt(100)

// MergeBuy folds a buy of quantity units at price into an existing
// holding. With no existing holding the result carries the incoming
// quantity and price unchanged; otherwise the quantities are summed and
// the purchase price becomes the quantity-weighted mean of the old and
// incoming costs.
//
// quantity must be positive and price non-negative, so the merged
// quantity can never be zero and the weighted mean is always defined.
func MergeBuy(existing *models.Holding, quantity, price decimal.Decimal) (models.Holding, error) {
	if !quantity.IsPositive() {
		return models.Holding{}, apperr.Validationf("quantity must be greater than zero")
	}
	if price.IsNegative() {
		return models.Holding{}, apperr.Validationf("purchase price cannot be negative")
	}

	if existing == nil {
		return models.Holding{
			Quantity:      quantity,
			PurchasePrice: price,
		}, nil
	}

	merged := *existing
	newQuantity := existing.Quantity.Add(quantity)
	existingCost := existing.Quantity.Mul(existing.PurchasePrice)
	incomingCost := quantity.Mul(price)

	merged.Quantity = newQuantity
	merged.PurchasePrice = existingCost.Add(incomingCost).Div(newQuantity)
	return merged, nil
}

// ComputeStats folds a transaction history into summary statistics.
// The fold sums by action only, so the result is independent of the
// order of the input. An empty history yields all-zero stats; a history
// with no buys reports a zero percentage rather than dividing by zero.
func ComputeStats(transactions []models.Transaction) models.Stats {
	stats := models.Stats{
		TotalTransactions:    len(transactions),
		TotalBuys:            decimal.Zero,
		TotalSells:           decimal.Zero,
		ProfitLoss:           decimal.Zero,
		ProfitLossPercentage: decimal.Zero,
	}

	for _, t := range transactions {
		switch t.Action {
		case models.ActionBuy:
			stats.TotalBuys = stats.TotalBuys.Add(t.Total)
		case models.ActionSell:
			stats.TotalSells = stats.TotalSells.Add(t.Total)
		}
	}

	stats.ProfitLoss = stats.TotalSells.Sub(stats.TotalBuys)
	if stats.TotalBuys.IsPositive() {
		stats.ProfitLossPercentage = stats.ProfitLoss.Div(stats.TotalBuys).Mul(hundred).Round(2)
	}
	return stats
}
