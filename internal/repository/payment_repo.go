package repository

import (
	"context"
	"errors"

	"MediaStoreAPI/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PaymentRepository struct {
	DB *pgxpool.Pool
}

func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

// InsertCompleted records the confirmed payment for an order. The payments
// table has a unique constraint on order_id; ON CONFLICT DO NOTHING makes
// duplicate gateway deliveries a no-op instead of a second row. Returns
// whether a row was actually inserted.
func (r *PaymentRepository) InsertCompleted(ctx context.Context, p *model.Payment) (bool, error) {
	tag, err := r.DB.Exec(ctx, `
		INSERT INTO payments
			(order_id, payment_status, payment_method, pesapal_transaction_id,
			 amount, currency, raw_response, confirmed_at)
		VALUES ($1, 'completed', $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (order_id) DO NOTHING
	`, p.OrderID, p.PaymentMethod, p.TransactionID, p.Amount, p.Currency, p.RawResponse)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PaymentRepository) GetByOrderID(ctx context.Context, orderID string) (*model.Payment, error) {
	var p model.Payment
	query := `
		SELECT id, order_id, payment_status, payment_method, pesapal_transaction_id,
		       amount, currency, raw_response, confirmed_at
		FROM payments
		WHERE order_id=$1
	`
	err := r.DB.QueryRow(ctx, query, orderID).Scan(
		&p.PaymentID,
		&p.OrderID,
		&p.PaymentStatus,
		&p.PaymentMethod,
		&p.TransactionID,
		&p.Amount,
		&p.Currency,
		&p.RawResponse,
		&p.ConfirmedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
