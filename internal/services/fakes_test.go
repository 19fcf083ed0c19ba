package services

import (
	"context"
	"errors"
	"fmt"

	"MediaStoreAPI/external/pesapal"
	"MediaStoreAPI/internal/model"
)

// In-memory stand-ins for the pgx repositories. They reproduce the
// conditional-write semantics the real tables enforce: orders only move
// while pending, payments are unique per order.

type fakeAlbumStore struct {
	albums map[string]*model.Album
}

func (f *fakeAlbumStore) GetByID(_ context.Context, id string) (*model.Album, error) {
	return f.albums[id], nil
}

type fakeOrderStore struct {
	orders  map[string]*model.Order
	nextID  int
	creates int

	// onCreate lets a test observe store state mid-flow.
	onCreate func(o *model.Order)
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{orders: map[string]*model.Order{}}
}

func (f *fakeOrderStore) Create(_ context.Context, o *model.Order) (string, error) {
	f.nextID++
	f.creates++
	id := fmt.Sprintf("order-%d", f.nextID)
	cp := *o
	cp.OrderID = id
	f.orders[id] = &cp
	if f.onCreate != nil {
		f.onCreate(&cp)
	}
	return id, nil
}

func (f *fakeOrderStore) GetByID(_ context.Context, id string) (*model.Order, error) {
	return f.orders[id], nil
}

func (f *fakeOrderStore) GetByMerchantReference(_ context.Context, ref string) (*model.Order, error) {
	for _, o := range f.orders {
		if o.MerchantReference == ref {
			return o, nil
		}
	}
	return nil, nil
}

func (f *fakeOrderStore) GetByTrackingID(_ context.Context, trackingID string) (*model.Order, error) {
	for _, o := range f.orders {
		if o.TrackingID != nil && *o.TrackingID == trackingID {
			return o, nil
		}
	}
	return nil, nil
}

func (f *fakeOrderStore) SetTrackingID(_ context.Context, id, trackingID string) error {
	o, ok := f.orders[id]
	if !ok {
		return errors.New("order not found")
	}
	o.TrackingID = &trackingID
	return nil
}

func (f *fakeOrderStore) MarkFailedIfPending(_ context.Context, id string) error {
	o, ok := f.orders[id]
	if !ok {
		return errors.New("order not found")
	}
	if o.Status == model.OrderStatusPending {
		o.Status = model.OrderStatusFailed
	}
	return nil
}

func (f *fakeOrderStore) TransitionFromPending(_ context.Context, id, status, trackingID string) (bool, error) {
	o, ok := f.orders[id]
	if !ok {
		return false, nil
	}
	if o.Status != model.OrderStatusPending {
		return false, nil
	}
	o.Status = status
	o.TrackingID = &trackingID
	return true, nil
}

type fakePaymentStore struct {
	payments map[string]*model.Payment
	inserts  int
}

func newFakePaymentStore() *fakePaymentStore {
	return &fakePaymentStore{payments: map[string]*model.Payment{}}
}

func (f *fakePaymentStore) InsertCompleted(_ context.Context, p *model.Payment) (bool, error) {
	if _, exists := f.payments[p.OrderID]; exists {
		return false, nil
	}
	cp := *p
	f.payments[p.OrderID] = &cp
	f.inserts++
	return true, nil
}

func (f *fakePaymentStore) GetByOrderID(_ context.Context, orderID string) (*model.Payment, error) {
	return f.payments[orderID], nil
}

type fakeConfigStore struct {
	values map[string]string
}

func newFakeConfigStore() *fakeConfigStore {
	return &fakeConfigStore{values: map[string]string{}}
}

func (f *fakeConfigStore) GetValue(_ context.Context, key string) (string, error) {
	return f.values[key], nil
}

func (f *fakeConfigStore) Upsert(_ context.Context, key, value string) error {
	f.values[key] = value
	return nil
}

type fakeOwnershipStore struct {
	granted map[string]int64
}

func newFakeOwnershipStore() *fakeOwnershipStore {
	return &fakeOwnershipStore{granted: map[string]int64{}}
}

func (f *fakeOwnershipStore) Grant(_ context.Context, authID int64, albumID string) error {
	f.granted[albumID] = authID
	return nil
}

type fakeGateway struct {
	submitResp *pesapal.OrderResponse
	submitErr  error
	submits    []pesapal.OrderRequest

	statusResp *pesapal.TransactionStatus
	statusErr  error
	statusReqs []string

	ipnID  string
	ipnErr error
	ipnURL string
}

func (f *fakeGateway) SubmitOrder(_ context.Context, order pesapal.OrderRequest) (*pesapal.OrderResponse, error) {
	f.submits = append(f.submits, order)
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return f.submitResp, nil
}

func (f *fakeGateway) GetTransactionStatus(_ context.Context, trackingID string) (*pesapal.TransactionStatus, error) {
	f.statusReqs = append(f.statusReqs, trackingID)
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	return f.statusResp, nil
}

func (f *fakeGateway) RegisterIPN(_ context.Context, ipnURL string) (string, error) {
	f.ipnURL = ipnURL
	if f.ipnErr != nil {
		return "", f.ipnErr
	}
	return f.ipnID, nil
}
