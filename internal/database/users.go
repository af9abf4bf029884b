package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/trogers1052/finance-tracker/internal/apperr"
	"github.com/trogers1052/finance-tracker/internal/models"
)

// CreateUser inserts a new user. Returns apperr.ErrDuplicate if the
// email is already registered.
func (db *DB) CreateUser(u *models.User) error {
	query := `
		INSERT INTO users (name, email, password_hash, avatar, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	now := time.Now()

	err := db.conn.QueryRow(query, u.Name, u.Email, u.PasswordHash, u.Avatar, now, now).Scan(&u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("email %s: %w", u.Email, apperr.ErrDuplicate)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	u.CreatedAt = now
	u.UpdatedAt = now
	return nil
}

// GetUserByEmail retrieves a user by email
func (db *DB) GetUserByEmail(email string) (*models.User, error) {
	query := `
		SELECT id, name, email, password_hash, avatar, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	return db.scanUser(db.conn.QueryRow(query, email))
}

// GetUserByID retrieves a user by ID
func (db *DB) GetUserByID(id int) (*models.User, error) {
	query := `
		SELECT id, name, email, password_hash, avatar, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	return db.scanUser(db.conn.QueryRow(query, id))
}

// UpdateUserProfile updates the profile fields of a user. Empty values
// leave the stored field unchanged.
func (db *DB) UpdateUserProfile(id int, name, avatar string) (*models.User, error) {
	query := `
		UPDATE users
		SET name = COALESCE(NULLIF($2, ''), name),
		    avatar = COALESCE(NULLIF($3, ''), avatar),
		    updated_at = $4
		WHERE id = $1
		RETURNING id, name, email, password_hash, avatar, created_at, updated_at
	`
	return db.scanUser(db.conn.QueryRow(query, id, name, avatar, time.Now()))
}

func (db *DB) scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	var avatar sql.NullString

	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &avatar, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user: %w", apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if avatar.Valid {
		u.Avatar = avatar.String
	}
	return &u, nil
}
