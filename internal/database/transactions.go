package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/trogers1052/finance-tracker/internal/apperr"
	"github.com/trogers1052/finance-tracker/internal/models"
)

const transactionColumns = `id, user_id, symbol, name, asset_type, action, quantity, price, total, notes, transaction_date, created_at`

// CreateTransaction appends a transaction to the log. The total is
// computed here, once, as quantity x price; it is never recalculated.
func (db *DB) CreateTransaction(t *models.Transaction) error {
	query := `
		INSERT INTO transactions (user_id, symbol, name, asset_type, action, quantity, price, total, notes, transaction_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`
	now := time.Now()
	if t.TransactionDate.IsZero() {
		t.TransactionDate = now
	}
	t.Symbol = strings.ToUpper(t.Symbol)
	t.Total = t.Quantity.Mul(t.Price)

	err := db.conn.QueryRow(query,
		t.UserID, t.Symbol, t.Name, t.AssetType, t.Action,
		t.Quantity, t.Price, t.Total, t.Notes, t.TransactionDate, now,
	).Scan(&t.ID)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	t.CreatedAt = now
	return nil
}

// GetTransactionsByUser retrieves all transactions owned by a user,
// newest first by transaction date
func (db *DB) GetTransactionsByUser(userID int) ([]models.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1
		ORDER BY transaction_date DESC
	`
	rows, err := db.conn.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		var t models.Transaction
		var notes sql.NullString
		err := rows.Scan(
			&t.ID, &t.UserID, &t.Symbol, &t.Name, &t.AssetType, &t.Action,
			&t.Quantity, &t.Price, &t.Total, &notes, &t.TransactionDate, &t.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		if notes.Valid {
			t.Notes = notes.String
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

// DeleteTransaction removes a transaction, scoped to its owner
func (db *DB) DeleteTransaction(userID, id int) error {
	result, err := db.conn.Exec(`DELETE FROM transactions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("transaction %d: %w", id, apperr.ErrNotFound)
	}
	return nil
}
