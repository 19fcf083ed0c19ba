package repository

import (
	"context"
	"errors"

	"MediaStoreAPI/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AlbumRepository struct {
	DB *pgxpool.Pool
}

func NewAlbumRepository(db *pgxpool.Pool) *AlbumRepository {
	return &AlbumRepository{DB: db}
}

func (r *AlbumRepository) Create(ctx context.Context, a *model.Album) (string, error) {
	var id string
	query := `
		INSERT INTO albums (title, description, price, currency, cover_url, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id
	`
	if err := r.DB.QueryRow(ctx, query, a.Title, a.Description, a.Price, a.Currency, a.CoverURL, a.IsActive).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

// GetByID returns (nil, nil) when no album exists with the given id.
func (r *AlbumRepository) GetByID(ctx context.Context, id string) (*model.Album, error) {
	var a model.Album
	query := `
		SELECT id, title, description, price, currency, cover_url, is_active, created_at, updated_at
		FROM albums
		WHERE id=$1
	`
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&a.AlbumID,
		&a.Title,
		&a.Description,
		&a.Price,
		&a.Currency,
		&a.CoverURL,
		&a.IsActive,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *AlbumRepository) ListActive(ctx context.Context, limit, offset int) ([]model.Album, error) {
	query := `
		SELECT id, title, description, price, currency, cover_url, is_active, created_at, updated_at
		FROM albums
		WHERE is_active=true
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.DB.Query(ctx, query, limit, offset)
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

func (r *AlbumRepository) Update(ctx context.Context, a *model.Album) error {
	query := `
		UPDATE albums
		SET title=$2, description=$3, price=$4, currency=$5, cover_url=$6, is_active=$7, updated_at=NOW()
		WHERE id=$1
	`
	tag, err := r.DB.Exec(ctx, query, a.AlbumID, a.Title, a.Description, a.Price, a.Currency, a.CoverURL, a.IsActive)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("album not found")
	}
	return nil
}

// Deactivate hides an album from the shop without deleting rows that orders
// still reference.
func (r *AlbumRepository) Deactivate(ctx context.Context, id string) error {
	tag, err := r.DB.Exec(ctx, `UPDATE albums SET is_active=false, updated_at=NOW() WHERE id=$1 AND is_active=true`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("album not found or already inactive")
	}
	return nil
}
