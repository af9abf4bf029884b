package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/trogers1052/finance-tracker/internal/accounting"
	"github.com/trogers1052/finance-tracker/internal/apperr"
	"github.com/trogers1052/finance-tracker/internal/models"
)

const holdingColumns = `id, user_id, symbol, name, asset_type, quantity, purchase_price, purchase_date, created_at, updated_at`

// GetHoldingsByUser retrieves all holdings owned by a user, newest first
func (db *DB) GetHoldingsByUser(userID int) ([]*models.Holding, error) {
	query := `
		SELECT ` + holdingColumns + `
		FROM holdings
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := db.conn.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list holdings: %w", err)
	}
	defer rows.Close()

	holdings := []*models.Holding{}
	for rows.Next() {
		h, err := scanHolding(rows)
		if err != nil {
			return nil, err
		}
		holdings = append(holdings, h)
	}
	return holdings, rows.Err()
}

// GetHoldingByID retrieves a holding by ID, scoped to its owner.
// A row owned by a different user is reported as not found.
func (db *DB) GetHoldingByID(userID, id int) (*models.Holding, error) {
	query := `
		SELECT ` + holdingColumns + `
		FROM holdings
		WHERE id = $1 AND user_id = $2
	`
	row := db.conn.QueryRow(query, id, userID)
	h, err := scanHoldingRow(row)
	if err != nil {
		return nil, err
	}
	return h, nil
}

// MergeBuy folds a buy into the user's holding for (symbol, assetType),
// creating the row on a first buy. The read-merge-write runs in one
// transaction with the existing row locked, so concurrent buys of the
// same instrument serialize instead of losing an update. Returns the
// stored holding and whether a new row was created.
func (db *DB) MergeBuy(userID int, symbol, name, assetType string, quantity, price decimal.Decimal) (*models.Holding, bool, error) {
	holding, created, err := db.mergeBuyOnce(userID, symbol, name, assetType, quantity, price)
	if err != nil && apperr.IsDuplicate(err) {
		// Lost a first-buy race: another request inserted the row after
		// our lookup. It exists now, so a second pass merges into it.
		return db.mergeBuyOnce(userID, symbol, name, assetType, quantity, price)
	}
	return holding, created, err
}

func (db *DB) mergeBuyOnce(userID int, symbol, name, assetType string, quantity, price decimal.Decimal) (*models.Holding, bool, error) {
	symbol = strings.ToUpper(symbol)

	tx, err := db.conn.Begin()
	if err != nil {
		return nil, false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		SELECT ` + holdingColumns + `
		FROM holdings
		WHERE user_id = $1 AND symbol = $2 AND asset_type = $3
		FOR UPDATE
	`
	existing, err := scanHoldingRow(tx.QueryRow(query, userID, symbol, assetType))
	if err != nil && !apperr.IsNotFound(err) {
		return nil, false, err
	}

	merged, err := accounting.MergeBuy(existing, quantity, price)
	if err != nil {
		return nil, false, err
	}

	now := time.Now()
	if existing == nil {
		insert := `
			INSERT INTO holdings (user_id, symbol, name, asset_type, quantity, purchase_price, purchase_date, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id
		`
		merged.UserID = userID
		merged.Symbol = symbol
		merged.Name = name
		merged.AssetType = assetType
		merged.PurchaseDate = now
		merged.CreatedAt = now
		merged.UpdatedAt = now

		err = tx.QueryRow(insert,
			userID, symbol, name, assetType,
			merged.Quantity, merged.PurchasePrice, now, now, now,
		).Scan(&merged.ID)
		if err != nil {
			if isUniqueViolation(err) {
				return nil, false, fmt.Errorf("holding %s: %w", symbol, apperr.ErrDuplicate)
			}
			return nil, false, fmt.Errorf("failed to create holding: %w", err)
		}
	} else {
		update := `
			UPDATE holdings
			SET quantity = $2, purchase_price = $3, updated_at = $4
			WHERE id = $1
		`
		merged.UpdatedAt = now
		if _, err := tx.Exec(update, merged.ID, merged.Quantity, merged.PurchasePrice, now); err != nil {
			return nil, false, fmt.Errorf("failed to update holding: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("failed to commit holding merge: %w", err)
	}
	return &merged, existing == nil, nil
}

// UpdateHolding overwrites the quantity and/or purchase price of a
// holding, scoped to its owner. Nil fields are left unchanged.
func (db *DB) UpdateHolding(userID, id int, quantity, price *decimal.Decimal) (*models.Holding, error) {
	query := `
		UPDATE holdings
		SET quantity = COALESCE($3, quantity),
		    purchase_price = COALESCE($4, purchase_price),
		    updated_at = $5
		WHERE id = $1 AND user_id = $2
		RETURNING ` + holdingColumns + `
	`
	var qty, prc interface{}
	if quantity != nil {
		qty = *quantity
	}
	if price != nil {
		prc = *price
	}

	row := db.conn.QueryRow(query, id, userID, qty, prc, time.Now())
	return scanHoldingRow(row)
}

// DeleteHolding removes a holding, scoped to its owner
func (db *DB) DeleteHolding(userID, id int) error {
	result, err := db.conn.Exec(`DELETE FROM holdings WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete holding: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete holding: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("holding %d: %w", id, apperr.ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanHolding(s rowScanner) (*models.Holding, error) {
	var h models.Holding
	err := s.Scan(
		&h.ID, &h.UserID, &h.Symbol, &h.Name, &h.AssetType,
		&h.Quantity, &h.PurchasePrice, &h.PurchaseDate, &h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan holding: %w", err)
	}
	return &h, nil
}

func scanHoldingRow(row *sql.Row) (*models.Holding, error) {
	var h models.Holding
	err := row.Scan(
		&h.ID, &h.UserID, &h.Symbol, &h.Name, &h.AssetType,
		&h.Quantity, &h.PurchasePrice, &h.PurchaseDate, &h.CreatedAt, &h.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("holding: %w", apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get holding: %w", err)
	}
	return &h, nil
}
