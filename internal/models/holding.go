package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Asset type constants
const (
	AssetTypeStock  = "stock"
	AssetTypeCrypto = "crypto"
)

// ValidAssetType reports whether t is a known instrument type
func ValidAssetType(t string) bool {
	return t == AssetTypeStock || t == AssetTypeCrypto
}

// Holding represents a user's aggregate position in one instrument.
// PurchasePrice is the quantity-weighted mean of every buy merged into it.
// At most one holding exists per (user, symbol, asset type).
type Holding struct {
	ID            int             `json:"id"`
	UserID        int             `json:"-"`
	Symbol        string          `json:"symbol"`
	Name          string          `json:"name"`
	AssetType     string          `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	PurchaseDate  time.Time       `json:"purchaseDate"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}
