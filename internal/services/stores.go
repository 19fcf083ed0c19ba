package services

import (
	"context"

	"MediaStoreAPI/external/pesapal"
	"MediaStoreAPI/internal/model"
)

// Narrow store interfaces for the payment workflow. The pgx repositories
// satisfy these; tests substitute in-memory fakes.

type AlbumStore interface {
	GetByID(ctx context.Context, id string) (*model.Album, error)
}

type OrderStore interface {
	Create(ctx context.Context, o *model.Order) (string, error)
	GetByMerchantReference(ctx context.Context, ref string) (*model.Order, error)
	GetByTrackingID(ctx context.Context, trackingID string) (*model.Order, error)
	SetTrackingID(ctx context.Context, id, trackingID string) error
	MarkFailedIfPending(ctx context.Context, id string) error
	TransitionFromPending(ctx context.Context, id, status, trackingID string) (bool, error)
}

type PaymentStore interface {
	InsertCompleted(ctx context.Context, p *model.Payment) (bool, error)
	GetByOrderID(ctx context.Context, orderID string) (*model.Payment, error)
}

type ConfigStore interface {
	GetValue(ctx context.Context, key string) (string, error)
	Upsert(ctx context.Context, key, value string) error
}

type OwnershipStore interface {
	Grant(ctx context.Context, authID int64, albumID string) error
}

// Gateway is the slice of the Pesapal client the services use.
type Gateway interface {
	SubmitOrder(ctx context.Context, order pesapal.OrderRequest) (*pesapal.OrderResponse, error)
	GetTransactionStatus(ctx context.Context, trackingID string) (*pesapal.TransactionStatus, error)
	RegisterIPN(ctx context.Context, ipnURL string) (string, error)
}
