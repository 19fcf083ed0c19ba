package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ConfigRepository backs the pesapal_config table: a tiny key/value store
// holding the registered IPN channel id.
type ConfigRepository struct {
	DB *pgxpool.Pool
}

func NewConfigRepository(db *pgxpool.Pool) *ConfigRepository {
	return &ConfigRepository{DB: db}
}

// GetValue returns ("", nil) when the key is not stored.
func (r *ConfigRepository) GetValue(ctx context.Context, key string) (string, error) {
	var value string
	err := r.DB.QueryRow(ctx, `SELECT value FROM pesapal_config WHERE key=$1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

func (r *ConfigRepository) Upsert(ctx context.Context, key, value string) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO pesapal_config (key, value, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (key) DO UPDATE SET value=EXCLUDED.value, updated_at=NOW()
	`, key, value)
	return err
}
