package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"MediaStoreAPI/external/pesapal"
	"MediaStoreAPI/internal/apperr"
	"MediaStoreAPI/internal/model"

	"github.com/google/uuid"
)

// OrderService is the order initiator: it creates a pending order and
// submits it to Pesapal, handing the redirect URL back to the caller.
type OrderService struct {
	Albums  AlbumStore
	Orders  OrderStore
	Config  ConfigStore
	Gateway Gateway
}

func NewOrderService(a AlbumStore, o OrderStore, c ConfigStore, g Gateway) *OrderService {
	return &OrderService{Albums: a, Orders: o, Config: c, Gateway: g}
}

type CreateOrderInput struct {
	AlbumID           string
	CustomerEmail     string
	CustomerFirstName string
	CustomerLastName  string
	CallbackURL       string
	UserID            *int64
}

type CreateOrderResult struct {
	OrderID           string `json:"order_id"`
	MerchantReference string `json:"merchant_reference"`
	RedirectURL       string `json:"redirect_url"`
	TrackingID        string `json:"order_tracking_id"`
}

// NewMerchantReference builds the caller-side order identifier sent to
// Pesapal: ORD-<unix-millis>-<7 uppercase hex chars>. Uniqueness is
// probabilistic, same as the reference format the gateway already knows.
func NewMerchantReference() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:7]
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), suffix)
}

func (s *OrderService) CreateOrder(ctx context.Context, in CreateOrderInput) (*CreateOrderResult, error) {
	in.AlbumID = strings.TrimSpace(in.AlbumID)
	in.CustomerEmail = strings.TrimSpace(in.CustomerEmail)
	in.CallbackURL = strings.TrimSpace(in.CallbackURL)
	if in.AlbumID == "" || in.CustomerEmail == "" || in.CallbackURL == "" {
		return nil, apperr.Validationf("album_id, customer_email and callback_url are required")
	}

	album, err := s.Albums.GetByID(ctx, in.AlbumID)
	if err != nil {
		return nil, apperr.Persistence("load album", err)
	}
	if album == nil || !album.IsActive {
		return nil, apperr.NotFoundf("album not found")
	}

	notificationID, err := s.Config.GetValue(ctx, model.ConfigKeyNotificationID)
	if err != nil {
		return nil, apperr.Persistence("load notification id", err)
	}
	if notificationID == "" {
		return nil, apperr.Configurationf("IPN not registered, register IPN first")
	}

	ref := NewMerchantReference()

	order := &model.Order{
		UserID:            in.UserID,
		AlbumID:           album.AlbumID,
		MerchantReference: ref,
		NotificationID:    &notificationID,
		Amount:            album.Price,
		Currency:          album.Currency,
		Status:            model.OrderStatusPending,
		CustomerEmail:     in.CustomerEmail,
		CallbackURL:       &in.CallbackURL,
	}
	if in.CustomerFirstName != "" {
		order.CustomerFirstName = &in.CustomerFirstName
	}
	if in.CustomerLastName != "" {
		order.CustomerLastName = &in.CustomerLastName
	}

	// The pending row goes in before any gateway call so a lost response
	// still leaves a reconcilable order behind.
	orderID, err := s.Orders.Create(ctx, order)
	if err != nil {
		return nil, apperr.Persistence("create order", err)
	}

	firstName := in.CustomerFirstName
	if firstName == "" {
		firstName = "Customer"
	}

	resp, err := s.Gateway.SubmitOrder(ctx, pesapal.OrderRequest{
		ID:             ref,
		Currency:       album.Currency,
		Amount:         album.Price,
		Description:    "Purchase: " + album.Title,
		CallbackURL:    in.CallbackURL,
		NotificationID: notificationID,
		BillingAddress: pesapal.BillingAddress{
			EmailAddress: in.CustomerEmail,
			FirstName:    firstName,
			LastName:     in.CustomerLastName,
		},
	})
	if err != nil {
		if ferr := s.Orders.MarkFailedIfPending(ctx, orderID); ferr != nil {
			log.Printf("order %s: mark failed after gateway rejection: %v", orderID, ferr)
		}
		return nil, apperr.Gatewayf("%v", err)
	}

	if err := s.Orders.SetTrackingID(ctx, orderID, resp.OrderTrackingID); err != nil {
		return nil, apperr.Persistence("store tracking id", err)
	}

	return &CreateOrderResult{
		OrderID:           orderID,
		MerchantReference: ref,
		RedirectURL:       resp.RedirectURL,
		TrackingID:        resp.OrderTrackingID,
	}, nil
}
