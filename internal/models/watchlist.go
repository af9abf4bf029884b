package models

import "time"

// WatchlistItem is a symbol a user monitors without holding a position.
// Unique per (user, symbol).
type WatchlistItem struct {
	ID        int       `json:"id"`
	UserID    int       `json:"-"`
	Symbol    string    `json:"symbol"`
	Name      string    `json:"name"`
	AssetType string    `json:"type"`
	AddedAt   time.Time `json:"addedAt"`
}
