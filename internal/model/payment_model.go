package model

import "time"

// Payment is written at most once per order; the payments table carries a
// unique constraint on order_id so duplicate gateway callbacks cannot
// double-insert.
type Payment struct {
	PaymentID     string     `json:"payment_id"`
	OrderID       string     `json:"order_id"`
	PaymentStatus string     `json:"payment_status"`
	PaymentMethod *string    `json:"payment_method,omitempty"`
	TransactionID *string    `json:"pesapal_transaction_id,omitempty"`
	Amount        *float64   `json:"amount,omitempty"`
	Currency      *string    `json:"currency,omitempty"`
	RawResponse   []byte     `json:"raw_response,omitempty"`
	ConfirmedAt   *time.Time `json:"confirmed_at,omitempty"`
}
