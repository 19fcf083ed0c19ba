package repository

import (
	"context"

	"MediaStoreAPI/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CustomerAlbumsRepository tracks which user owns which album. Rows are
// written when an order completes and read by the premium-content gate.
type CustomerAlbumsRepository struct {
	DB *pgxpool.Pool
}

func NewCustomerAlbumsRepository(db *pgxpool.Pool) *CustomerAlbumsRepository {
	return &CustomerAlbumsRepository{DB: db}
}

// Grant is idempotent: re-granting an owned album is a no-op.
func (r *CustomerAlbumsRepository) Grant(ctx context.Context, authID int64, albumID string) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO customer_albums (authid, album_id, purchased_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (authid, album_id) DO NOTHING
	`, authID, albumID)
	return err
}

func (r *CustomerAlbumsRepository) Owns(ctx context.Context, authID int64, albumID string) (bool, error) {
	var owns bool
	query := `SELECT EXISTS (SELECT 1 FROM customer_albums WHERE authid=$1 AND album_id=$2)`
	if err := r.DB.QueryRow(ctx, query, authID, albumID).Scan(&owns); err != nil {
		return false, err
	}
	return owns, nil
}

func (r *CustomerAlbumsRepository) ListOwned(ctx context.Context, authID int64) ([]model.Album, error) {
	query := `
		SELECT a.id, a.title, a.description, a.price, a.currency, a.cover_url, a.is_active, a.created_at, a.updated_at
		FROM customer_albums ca
		JOIN albums a ON a.id = ca.album_id
		WHERE ca.authid=$1
		ORDER BY ca.purchased_at DESC
	`
	rows, err := r.DB.Query(ctx, query, authID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.Album
	for rows.Next() {
		var a model.Album
		if err := rows.Scan(&a.AlbumID, &a.Title, &a.Description, &a.Price, &a.Currency, &a.CoverURL, &a.IsActive, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, nil
}
