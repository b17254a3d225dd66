package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"attendance_notifier/internal/domain/notification"
)

// PostgresTokenRepository reads the recipient token from the admin_tokens table:
//
//	CREATE TABLE admin_tokens (
//	    key        TEXT PRIMARY KEY,
//	    token      TEXT,
//	    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);
type PostgresTokenRepository struct {
	db  *sql.DB
	key string
}

func NewPostgresTokenRepository(db *sql.DB, key string) *PostgresTokenRepository {
	return &PostgresTokenRepository{db: db, key: key}
}

func (r *PostgresTokenRepository) RecipientToken(ctx context.Context) (string, error) {
	query := `SELECT token FROM admin_tokens WHERE key = $1`

	var token sql.NullString
	err := r.db.QueryRowContext(ctx, query, r.key).Scan(&token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", notification.ErrTokenNotFound
		}
		return "", fmt.Errorf("error getting recipient token %q: %w", r.key, err)
	}
	if !token.Valid || token.String == "" {
		return "", notification.ErrTokenNotFound
	}
	return token.String, nil
}
