package model

import "time"

// Order status values. Status only moves pending -> completed or
// pending -> failed; cancelled exists in the schema but is only set
// by manual/admin intervention, never by the payment workflow.
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusFailed    = "failed"
	OrderStatusCancelled = "cancelled"
)

type Order struct {
	OrderID           string     `json:"order_id"`
	UserID            *int64     `json:"user_id,omitempty"`
	AlbumID           string     `json:"album_id"`
	MerchantReference string     `json:"merchant_reference"`
	NotificationID    *string    `json:"notification_id,omitempty"`
	Amount            float64    `json:"amount"`
	Currency          string     `json:"currency"`
	Status            string     `json:"status"`
	CustomerEmail     string     `json:"customer_email"`
	CustomerFirstName *string    `json:"customer_first_name,omitempty"`
	CustomerLastName  *string    `json:"customer_last_name,omitempty"`
	CallbackURL       *string    `json:"callback_url,omitempty"`
	TrackingID        *string    `json:"pesapal_tracking_id,omitempty"`
	CreatedAt         *time.Time `json:"created_at,omitempty"`
	UpdatedAt         *time.Time `json:"updated_at,omitempty"`
}
