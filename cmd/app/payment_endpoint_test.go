package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"MediaStoreAPI/external/pesapal"
	"MediaStoreAPI/internal/model"
	"MediaStoreAPI/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Transport-level stubs; the reconciliation logic itself is covered in the
// services package. These exist to pin the acknowledgement contract: the IPN
// endpoint answers 200 with the expected shape no matter what happens inside.

type stubOrderStore struct {
	order      *model.Order
	storeErr   error
	transition bool
}

func (s *stubOrderStore) Create(context.Context, *model.Order) (string, error) { return "", nil }
func (s *stubOrderStore) GetByID(context.Context, string) (*model.Order, error) {
	return s.order, s.storeErr
}
func (s *stubOrderStore) GetByMerchantReference(context.Context, string) (*model.Order, error) {
	return s.order, s.storeErr
}
func (s *stubOrderStore) GetByTrackingID(context.Context, string) (*model.Order, error) {
	return s.order, s.storeErr
}
func (s *stubOrderStore) SetTrackingID(context.Context, string, string) error { return nil }
func (s *stubOrderStore) MarkFailedIfPending(context.Context, string) error   { return nil }
func (s *stubOrderStore) TransitionFromPending(context.Context, string, string, string) (bool, error) {
	return s.transition, nil
}

type stubPaymentStore struct{}

func (stubPaymentStore) InsertCompleted(context.Context, *model.Payment) (bool, error) {
	return true, nil
}
func (stubPaymentStore) GetByOrderID(context.Context, string) (*model.Payment, error) {
	return nil, nil
}

type stubOwnershipStore struct{}

func (stubOwnershipStore) Grant(context.Context, int64, string) error { return nil }

type stubConfigStore struct{}

func (stubConfigStore) GetValue(context.Context, string) (string, error) { return "", nil }
func (stubConfigStore) Upsert(context.Context, string, string) error     { return nil }

type stubGateway struct {
	statusResp *pesapal.TransactionStatus
	statusErr  error
}

func (s *stubGateway) SubmitOrder(context.Context, pesapal.OrderRequest) (*pesapal.OrderResponse, error) {
	return nil, errors.New("not used")
}
func (s *stubGateway) GetTransactionStatus(context.Context, string) (*pesapal.TransactionStatus, error) {
	return s.statusResp, s.statusErr
}
func (s *stubGateway) RegisterIPN(context.Context, string) (string, error) { return "", nil }

func jsonBody(s string) io.Reader {
	return strings.NewReader(s)
}

func newPaymentTestServer(orders *stubOrderStore, gw *stubGateway) *echo.Echo {
	e := echo.New()
	svc := services.NewPaymentService(orders, stubPaymentStore{}, stubOwnershipStore{}, stubConfigStore{}, gw, "https://x/ipn")
	registerPaymentRoutes(e.Group("/media-store"), svc)
	return e
}

func doIPN(e *echo.Echo) (*httptest.ResponseRecorder, map[string]any) {
	req := httptest.NewRequest(http.MethodGet,
		"/media-store/payments/ipn?OrderTrackingId=track-1&OrderMerchantReference=ORD-1-A&OrderNotificationType=IPNCHANGE", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var body map[string]any
	json.Unmarshal(rec.Body.Bytes(), &body)
	return rec, body
}

func TestIPNAckShapeForUnknownOrder(t *testing.T) {
	e := newPaymentTestServer(&stubOrderStore{order: nil}, &stubGateway{})

	rec, body := doIPN(e)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "200", body["status"])
	assert.Equal(t, "track-1", body["orderTrackingId"])
	assert.Equal(t, "ORD-1-A", body["orderMerchantReference"])
	assert.Equal(t, "IPNCHANGE", body["orderNotificationType"])
}

func TestIPNAcksEvenWhenGatewayFails(t *testing.T) {
	orders := &stubOrderStore{order: &model.Order{
		OrderID:           "order-1",
		MerchantReference: "ORD-1-A",
		Status:            model.OrderStatusPending,
	}}
	gw := &stubGateway{statusErr: errors.New("gateway down")}
	e := newPaymentTestServer(orders, gw)

	rec, body := doIPN(e)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "200", body["status"])
}

func TestVerifyEndpointErrorPayload(t *testing.T) {
	e := newPaymentTestServer(&stubOrderStore{}, &stubGateway{})

	req := httptest.NewRequest(http.MethodGet, "/media-store/payments/verify", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body["error"])
}

func TestVerifyEndpointBodyFallback(t *testing.T) {
	orders := &stubOrderStore{order: &model.Order{
		OrderID:           "order-1",
		MerchantReference: "ORD-1-A",
		Status:            model.OrderStatusPending,
	}, transition: true}
	tid := "track-1"
	orders.order.TrackingID = &tid
	gw := &stubGateway{statusResp: &pesapal.TransactionStatus{
		PaymentStatusDescription: "Completed",
		StatusCode:               1,
	}}
	e := newPaymentTestServer(orders, gw)

	req := httptest.NewRequest(http.MethodPost, "/media-store/payments/verify",
		jsonBody(`{"merchantReference":"ORD-1-A"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "completed", body["status"])
	assert.Equal(t, "ORD-1-A", body["merchant_reference"])
}
