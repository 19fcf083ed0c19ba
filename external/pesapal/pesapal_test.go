package pesapal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	for path, h := range handlers {
		mux.HandleFunc(path, h)
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func tokenHandler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "key", body["consumer_key"])
		assert.Equal(t, "secret", body["consumer_secret"])
		json.NewEncoder(w).Encode(map[string]string{
			"token":      "tok-1",
			"expiryDate": "2026-01-01T00:00:00Z",
			"status":     "200",
		})
	}
}

func TestNewClientRequiresCredentials(t *testing.T) {
	_, err := NewClient("", "key", "secret")
	assert.Error(t, err)
	_, err = NewClient("https://x", "", "")
	assert.Error(t, err)
}

func TestRequestToken(t *testing.T) {
	srv := newTestServer(t, map[string]http.HandlerFunc{
		"/api/Auth/RequestToken": tokenHandler(t),
	})
	c, err := NewClient(srv.URL, "key", "secret")
	require.NoError(t, err)

	token, err := c.RequestToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)
}

func TestRequestTokenFailure(t *testing.T) {
	srv := newTestServer(t, map[string]http.HandlerFunc{
		"/api/Auth/RequestToken": func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]string{"code": "invalid_consumer_credentials", "message": "bad credentials"},
			})
		},
	})
	c, _ := NewClient(srv.URL, "key", "secret")

	_, err := c.RequestToken(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad credentials")
}

func TestSubmitOrder(t *testing.T) {
	srv := newTestServer(t, map[string]http.HandlerFunc{
		"/api/Auth/RequestToken": tokenHandler(t),
		"/api/Transactions/SubmitOrderRequest": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
			var req OrderRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "ORD-1-ABCDEF1", req.ID)
			assert.Equal(t, "ipn-123", req.NotificationID)
			json.NewEncoder(w).Encode(map[string]string{
				"order_tracking_id":  "track-1",
				"merchant_reference": req.ID,
				"redirect_url":       "https://pay.pesapal.test/iframe",
				"status":             "200",
			})
		},
	})
	c, _ := NewClient(srv.URL, "key", "secret")

	resp, err := c.SubmitOrder(context.Background(), OrderRequest{
		ID:             "ORD-1-ABCDEF1",
		Currency:       "KES",
		Amount:         500,
		Description:    "Purchase: Roots",
		CallbackURL:    "https://shop.test/callback",
		NotificationID: "ipn-123",
		BillingAddress: BillingAddress{EmailAddress: "a@b.com", FirstName: "Customer"},
	})
	require.NoError(t, err)
	assert.Equal(t, "track-1", resp.OrderTrackingID)
	assert.Equal(t, "https://pay.pesapal.test/iframe", resp.RedirectURL)
}

func TestSubmitOrderRejected(t *testing.T) {
	srv := newTestServer(t, map[string]http.HandlerFunc{
		"/api/Auth/RequestToken": tokenHandler(t),
		"/api/Transactions/SubmitOrderRequest": func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]string{"message": "notification id not found"},
			})
		},
	})
	c, _ := NewClient(srv.URL, "key", "secret")

	_, err := c.SubmitOrder(context.Background(), OrderRequest{ID: "ORD-1-X"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "notification id not found")
}

func TestGetTransactionStatus(t *testing.T) {
	srv := newTestServer(t, map[string]http.HandlerFunc{
		"/api/Auth/RequestToken": tokenHandler(t),
		"/api/Transactions/GetTransactionStatus": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "track-1", r.URL.Query().Get("orderTrackingId"))
			json.NewEncoder(w).Encode(map[string]any{
				"payment_method":             "MpesaKE",
				"amount":                     500.0,
				"confirmation_code":          "CONF-1",
				"payment_status_description": "Completed",
				"currency":                   "KES",
				"status_code":                1,
			})
		},
	})
	c, _ := NewClient(srv.URL, "key", "secret")

	status, err := c.GetTransactionStatus(context.Background(), "track-1")
	require.NoError(t, err)
	assert.Equal(t, "MpesaKE", status.PaymentMethod)
	assert.Equal(t, 1, status.StatusCode)
	// raw body is preserved for persistence
	assert.Contains(t, string(status.Raw), `"confirmation_code"`)
}

func TestRegisterIPN(t *testing.T) {
	srv := newTestServer(t, map[string]http.HandlerFunc{
		"/api/Auth/RequestToken": tokenHandler(t),
		"/api/URLSetup/RegisterIPN": func(w http.ResponseWriter, r *http.Request) {
			var req map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "GET", req["ipn_notification_type"])
			json.NewEncoder(w).Encode(map[string]string{
				"ipn_id": "ipn-777",
				"url":    req["url"],
				"status": "200",
			})
		},
	})
	c, _ := NewClient(srv.URL, "key", "secret")

	id, err := c.RegisterIPN(context.Background(), "https://api.shop.test/payments/ipn")
	require.NoError(t, err)
	assert.Equal(t, "ipn-777", id)
}

func TestMappedStatus(t *testing.T) {
	cases := []struct {
		name string
		in   TransactionStatus
		want string
	}{
		{"completed by description", TransactionStatus{PaymentStatusDescription: "Completed"}, StatusCompleted},
		{"completed by code", TransactionStatus{StatusCode: 1}, StatusCompleted},
		{"failed by description", TransactionStatus{PaymentStatusDescription: "Failed"}, StatusFailed},
		{"failed by code", TransactionStatus{StatusCode: 2}, StatusFailed},
		{"pending", TransactionStatus{PaymentStatusDescription: "Pending", StatusCode: 0}, StatusPending},
		{"unrecognized maps to pending", TransactionStatus{PaymentStatusDescription: "Reversed", StatusCode: 3}, StatusPending},
		{"empty maps to pending", TransactionStatus{}, StatusPending},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.in.MappedStatus())
		})
	}
}
