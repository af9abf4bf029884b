package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/trogers1052/finance-tracker/internal/apperr"
	"github.com/trogers1052/finance-tracker/internal/models"
)

// CreateWatchlistItem adds a symbol to the user's watchlist. Returns
// apperr.ErrDuplicate if the user already watches the symbol.
func (db *DB) CreateWatchlistItem(item *models.WatchlistItem) error {
	query := `
		INSERT INTO watchlist (user_id, symbol, name, asset_type, added_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	now := time.Now()
	item.Symbol = strings.ToUpper(item.Symbol)
	if item.AssetType == "" {
		item.AssetType = models.AssetTypeStock
	}

	err := db.conn.QueryRow(query, item.UserID, item.Symbol, item.Name, item.AssetType, now).Scan(&item.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("watchlist entry %s: %w", item.Symbol, apperr.ErrDuplicate)
		}
		return fmt.Errorf("failed to create watchlist item: %w", err)
	}
	item.AddedAt = now
	return nil
}

// GetWatchlistByUser retrieves the user's watchlist, newest first
func (db *DB) GetWatchlistByUser(userID int) ([]*models.WatchlistItem, error) {
	query := `
		SELECT id, user_id, symbol, name, asset_type, added_at
		FROM watchlist
		WHERE user_id = $1
		ORDER BY added_at DESC
	`
	rows, err := db.conn.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list watchlist: %w", err)
	}
	defer rows.Close()

	items := []*models.WatchlistItem{}
	for rows.Next() {
		var item models.WatchlistItem
		err := rows.Scan(&item.ID, &item.UserID, &item.Symbol, &item.Name, &item.AssetType, &item.AddedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan watchlist item: %w", err)
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}

// DeleteWatchlistItem removes a watchlist entry, scoped to its owner
func (db *DB) DeleteWatchlistItem(userID, id int) error {
	result, err := db.conn.Exec(`DELETE FROM watchlist WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete watchlist item: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete watchlist item: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("watchlist item %d: %w", id, apperr.ErrNotFound)
	}
	return nil
}
