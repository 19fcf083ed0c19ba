package repository

import (
	"context"
	"errors"

	"MediaStoreAPI/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderRepository struct {
	DB *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{DB: db}
}

const orderColumns = `
	id, user_id, album_id, merchant_reference, notification_id,
	amount, currency, status, customer_email, customer_first_name,
	customer_last_name, callback_url, pesapal_tracking_id, created_at, updated_at
`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(
		&o.OrderID,
		&o.UserID,
		&o.AlbumID,
		&o.MerchantReference,
		&o.NotificationID,
		&o.Amount,
		&o.Currency,
		&o.Status,
		&o.CustomerEmail,
		&o.CustomerFirstName,
		&o.CustomerLastName,
		&o.CallbackURL,
		&o.TrackingID,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

// Create inserts a pending order and returns the generated id.
func (r *OrderRepository) Create(ctx context.Context, o *model.Order) (string, error) {
	var id string
	query := `
		INSERT INTO orders
			(user_id, album_id, merchant_reference, notification_id, amount, currency,
			 status, customer_email, customer_first_name, customer_last_name, callback_url,
			 created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING id
	`
	err := r.DB.QueryRow(
		ctx, query,
		o.UserID, o.AlbumID, o.MerchantReference, o.NotificationID, o.Amount, o.Currency,
		o.Status, o.CustomerEmail, o.CustomerFirstName, o.CustomerLastName, o.CallbackURL,
	).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	return scanOrder(r.DB.QueryRow(ctx, query, id))
}

// GetByMerchantReference returns (nil, nil) on a lookup miss so callers can
// distinguish "unknown order" from a store failure.
func (r *OrderRepository) GetByMerchantReference(ctx context.Context, ref string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE merchant_reference=$1`
	return scanOrder(r.DB.QueryRow(ctx, query, ref))
}

func (r *OrderRepository) GetByTrackingID(ctx context.Context, trackingID string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE pesapal_tracking_id=$1`
	return scanOrder(r.DB.QueryRow(ctx, query, trackingID))
}

func (r *OrderRepository) SetTrackingID(ctx context.Context, id, trackingID string) error {
	_, err := r.DB.Exec(ctx, `
		UPDATE orders
		SET pesapal_tracking_id=$2, updated_at=NOW()
		WHERE id=$1
	`, id, trackingID)
	return err
}

// MarkFailedIfPending moves a pending order to failed after a rejected
// gateway submission. A no-op when the order already left pending.
func (r *OrderRepository) MarkFailedIfPending(ctx context.Context, id string) error {
	_, err := r.DB.Exec(ctx, `
		UPDATE orders
		SET status='failed', updated_at=NOW()
		WHERE id=$1 AND status='pending'
	`, id)
	return err
}

// TransitionFromPending conditionally applies a terminal/intermediate status
// and the tracking id. The WHERE status='pending' guard is what keeps two
// concurrent callback deliveries from both advancing the order: only one
// update can match.
func (r *OrderRepository) TransitionFromPending(ctx context.Context, id, status, trackingID string) (bool, error) {
	tag, err := r.DB.Exec(ctx, `
		UPDATE orders
		SET status=$2, pesapal_tracking_id=$3, updated_at=NOW()
		WHERE id=$1 AND status='pending'
	`, id, status, trackingID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
