package services

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"MediaStoreAPI/external/pesapal"
	"MediaStoreAPI/internal/apperr"
	"MediaStoreAPI/internal/model"
)

// PaymentService reconciles stored orders with Pesapal's authoritative
// transaction status. It backs both the asynchronous IPN callback and the
// synchronous verification endpoint the front end polls.
type PaymentService struct {
	Orders    OrderStore
	Payments  PaymentStore
	Ownership OwnershipStore
	Config    ConfigStore
	Gateway   Gateway

	// IPNURL is the public IPN callback URL registered with Pesapal.
	IPNURL string
}

func NewPaymentService(o OrderStore, p PaymentStore, own OwnershipStore, c ConfigStore, g Gateway, ipnURL string) *PaymentService {
	return &PaymentService{
		Orders:    o,
		Payments:  p,
		Ownership: own,
		Config:    c,
		Gateway:   g,
		IPNURL:    ipnURL,
	}
}

type IPNNotification struct {
	TrackingID        string
	MerchantReference string
	NotificationType  string
}

// HandleIPN processes one callback delivery. The returned error is for
// logging only; the endpoint acknowledges receipt no matter what, since
// Pesapal keeps retrying anything that is not a 200.
func (s *PaymentService) HandleIPN(ctx context.Context, n IPNNotification) error {
	if n.TrackingID == "" || n.MerchantReference == "" {
		return nil
	}

	order, err := s.Orders.GetByMerchantReference(ctx, n.MerchantReference)
	if err != nil {
		return apperr.Persistence("load order", err)
	}
	if order == nil {
		// Unknown reference: acknowledge and stop, an error here would
		// just make the gateway redeliver an order we will never find.
		return nil
	}
	if order.Status == model.OrderStatusCompleted {
		return nil
	}

	_, _, err = s.reconcile(ctx, order, n.TrackingID)
	return err
}

type VerifyResult struct {
	Status            string          `json:"status"`
	TrackingID        string          `json:"order_tracking_id"`
	MerchantReference string          `json:"merchant_reference"`
	PaymentMethod     string          `json:"payment_method,omitempty"`
	ConfirmationCode  string          `json:"confirmation_code,omitempty"`
	RawStatus         json.RawMessage `json:"raw_status"`
}

// VerifyTransaction is the polling counterpart to HandleIPN. It can resolve
// the order by merchant reference alone, using the stored tracking id.
func (s *PaymentService) VerifyTransaction(ctx context.Context, trackingID, merchantReference string) (*VerifyResult, error) {
	trackingID = strings.TrimSpace(trackingID)
	merchantReference = strings.TrimSpace(merchantReference)
	if trackingID == "" && merchantReference == "" {
		return nil, apperr.Validationf("either orderTrackingId or merchantReference is required")
	}

	var order *model.Order
	var err error
	if merchantReference != "" {
		order, err = s.Orders.GetByMerchantReference(ctx, merchantReference)
		if err != nil {
			return nil, apperr.Persistence("load order", err)
		}
	}
	if order == nil && trackingID != "" {
		order, err = s.Orders.GetByTrackingID(ctx, trackingID)
		if err != nil {
			return nil, apperr.Persistence("load order", err)
		}
	}
	if order == nil {
		return nil, apperr.NotFoundf("order not found")
	}
	if trackingID == "" {
		if order.TrackingID == nil || *order.TrackingID == "" {
			return nil, apperr.NotFoundf("order tracking id not found")
		}
		trackingID = *order.TrackingID
	}

	status, mapped, err := s.reconcile(ctx, order, trackingID)
	if err != nil {
		return nil, err
	}

	return &VerifyResult{
		Status:            mapped,
		TrackingID:        trackingID,
		MerchantReference: order.MerchantReference,
		PaymentMethod:     status.PaymentMethod,
		ConfirmationCode:  status.ConfirmationCode,
		RawStatus:         status.Raw,
	}, nil
}

// reconcile queries the gateway and applies the mapped status to the order.
// Writes are conditional: the order only moves while still pending, and the
// payment insert is a no-op on conflict, so duplicate and concurrent
// deliveries converge on one terminal state and at most one payment row.
func (s *PaymentService) reconcile(ctx context.Context, order *model.Order, trackingID string) (*pesapal.TransactionStatus, string, error) {
	status, err := s.Gateway.GetTransactionStatus(ctx, trackingID)
	if err != nil {
		return nil, "", apperr.Gatewayf("%v", err)
	}

	mapped := status.MappedStatus()

	transitioned, err := s.Orders.TransitionFromPending(ctx, order.OrderID, mapped, trackingID)
	if err != nil {
		return nil, "", apperr.Persistence("update order status", err)
	}

	// A late "completed" for an order that already failed must not produce a
	// payment row or grant content: the order keeps its terminal state, so
	// only record when this call completed it or it was completed before.
	if mapped == model.OrderStatusCompleted && (transitioned || order.Status == model.OrderStatusCompleted) {
		if err := s.recordPayment(ctx, order, trackingID, status); err != nil {
			return nil, "", err
		}
	}

	return status, mapped, nil
}

func (s *PaymentService) recordPayment(ctx context.Context, order *model.Order, trackingID string, status *pesapal.TransactionStatus) error {
	txnID := status.ConfirmationCode
	if txnID == "" {
		txnID = trackingID
	}
	amount := status.Amount
	if amount == 0 {
		amount = order.Amount
	}
	currency := status.Currency
	if currency == "" {
		currency = order.Currency
	}

	payment := &model.Payment{
		OrderID:       order.OrderID,
		PaymentStatus: model.OrderStatusCompleted,
		TransactionID: &txnID,
		Amount:        &amount,
		Currency:      &currency,
		RawResponse:   status.Raw,
	}
	if status.PaymentMethod != "" {
		payment.PaymentMethod = &status.PaymentMethod
	}

	inserted, err := s.Payments.InsertCompleted(ctx, payment)
	if err != nil {
		return apperr.Persistence("insert payment", err)
	}
	if inserted {
		log.Printf("payment recorded for order %s", order.OrderID)
	}

	// Album access for logged-in buyers. Failure here must not undo the
	// reconciliation, the grant is retried on the next verify call.
	if order.UserID != nil {
		if err := s.Ownership.Grant(ctx, *order.UserID, order.AlbumID); err != nil {
			log.Printf("order %s: grant album access: %v", order.OrderID, err)
		}
	}
	return nil
}

type RegisterIPNResult struct {
	NotificationID string `json:"notification_id"`
	Message        string `json:"message,omitempty"`
}

// RegisterIPN registers the callback channel once. A stored notification id
// short-circuits without touching the gateway.
func (s *PaymentService) RegisterIPN(ctx context.Context) (*RegisterIPNResult, error) {
	existing, err := s.Config.GetValue(ctx, model.ConfigKeyNotificationID)
	if err != nil {
		return nil, apperr.Persistence("load notification id", err)
	}
	if existing != "" {
		return &RegisterIPNResult{NotificationID: existing, Message: "IPN already registered"}, nil
	}

	if s.IPNURL == "" {
		return nil, apperr.Configurationf("ipn_url not configured")
	}

	id, err := s.Gateway.RegisterIPN(ctx, s.IPNURL)
	if err != nil {
		return nil, apperr.Gatewayf("%v", err)
	}
	if err := s.Config.Upsert(ctx, model.ConfigKeyNotificationID, id); err != nil {
		return nil, apperr.Persistence("store notification id", err)
	}
	return &RegisterIPNResult{NotificationID: id}, nil
}
