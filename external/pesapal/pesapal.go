package pesapal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client talks to the Pesapal API v3. Tokens are short-lived, so every
// high-level call requests a fresh one rather than caching.
type Client struct {
	baseURL        string
	consumerKey    string
	consumerSecret string
	client         *http.Client
}

func NewClient(baseURL, consumerKey, consumerSecret string) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("pesapal base url not set")
	}
	if consumerKey == "" || consumerSecret == "" {
		return nil, errors.New("pesapal consumer credentials not set")
	}

	return &Client{
		baseURL:        baseURL,
		consumerKey:    consumerKey,
		consumerSecret: consumerSecret,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}, nil
}

type apiError struct {
	Type    string `json:"error_type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *apiError) text() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	return e.Code
}

type tokenResponse struct {
	Token      string    `json:"token"`
	ExpiryDate string    `json:"expiryDate"`
	Status     string    `json:"status"`
	Message    string    `json:"message"`
	Error      *apiError `json:"error"`
}

// BillingAddress is the contact block Pesapal requires on order submission.
type BillingAddress struct {
	EmailAddress string `json:"email_address"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
}

// OrderRequest is the payload for SubmitOrderRequest. ID is the merchant
// reference; NotificationID is the registered IPN channel id.
type OrderRequest struct {
	ID             string         `json:"id"`
	Currency       string         `json:"currency"`
	Amount         float64        `json:"amount"`
	Description    string         `json:"description"`
	CallbackURL    string         `json:"callback_url"`
	NotificationID string         `json:"notification_id"`
	BillingAddress BillingAddress `json:"billing_address"`
}

type OrderResponse struct {
	OrderTrackingID   string    `json:"order_tracking_id"`
	MerchantReference string    `json:"merchant_reference"`
	RedirectURL       string    `json:"redirect_url"`
	Status            string    `json:"status"`
	Error             *apiError `json:"error"`
}

// TransactionStatus is the authoritative status payload from
// GetTransactionStatus. Raw holds the undecoded body for persistence.
type TransactionStatus struct {
	PaymentMethod            string    `json:"payment_method"`
	Amount                   float64   `json:"amount"`
	CreatedDate              string    `json:"created_date"`
	ConfirmationCode         string    `json:"confirmation_code"`
	PaymentStatusDescription string    `json:"payment_status_description"`
	Description              string    `json:"description"`
	Message                  string    `json:"message"`
	PaymentAccount           string    `json:"payment_account"`
	MerchantReference        string    `json:"merchant_reference"`
	Currency                 string    `json:"currency"`
	StatusCode               int       `json:"status_code"`
	Error                    *apiError `json:"error"`

	Raw json.RawMessage `json:"-"`
}

type registerIPNRequest struct {
	URL              string `json:"url"`
	NotificationType string `json:"ipn_notification_type"`
}

type registerIPNResponse struct {
	IPNID  string    `json:"ipn_id"`
	URL    string    `json:"url"`
	Status string    `json:"status"`
	Error  *apiError `json:"error"`
}

// RequestToken exchanges the consumer key/secret for a short-lived bearer token.
func (p *Client) RequestToken(ctx context.Context) (string, error) {
	body, _ := json.Marshal(map[string]string{
		"consumer_key":    p.consumerKey,
		"consumer_secret": p.consumerSecret,
	})

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		p.baseURL+"/api/Auth/RequestToken",
		bytes.NewBuffer(body),
	)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var out tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if out.Token == "" {
		if msg := out.Error.text(); msg != "" {
			return "", errors.New("pesapal auth failed: " + msg)
		}
		if out.Message != "" {
			return "", errors.New("pesapal auth failed: " + out.Message)
		}
		return "", errors.New("pesapal auth failed")
	}
	return out.Token, nil
}

// SubmitOrder submits an order request and returns the redirect URL and
// tracking id Pesapal assigned.
func (p *Client) SubmitOrder(ctx context.Context, order OrderRequest) (*OrderResponse, error) {
	token, err := p.RequestToken(ctx)
	if err != nil {
		return nil, err
	}

	body, _ := json.Marshal(order)
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		p.baseURL+"/api/Transactions/SubmitOrderRequest",
		bytes.NewBuffer(body),
	)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out OrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode order response: %w", err)
	}
	if out.Error != nil || out.RedirectURL == "" {
		if msg := out.Error.text(); msg != "" {
			return nil, errors.New("pesapal rejected order: " + msg)
		}
		return nil, errors.New("pesapal rejected order")
	}
	return &out, nil
}

// GetTransactionStatus queries the authoritative status for a tracking id.
func (p *Client) GetTransactionStatus(ctx context.Context, trackingID string) (*TransactionStatus, error) {
	token, err := p.RequestToken(ctx)
	if err != nil {
		return nil, err
	}

	u := p.baseURL + "/api/Transactions/GetTransactionStatus?orderTrackingId=" + url.QueryEscape(trackingID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var out TransactionStatus
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode status response: %w", err)
	}
	out.Raw = raw
	return &out, nil
}

// RegisterIPN registers the callback URL once and returns the channel id
// Pesapal will echo back on every notification.
func (p *Client) RegisterIPN(ctx context.Context, ipnURL string) (string, error) {
	token, err := p.RequestToken(ctx)
	if err != nil {
		return "", err
	}

	body, _ := json.Marshal(registerIPNRequest{
		URL:              ipnURL,
		NotificationType: "GET",
	})
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		p.baseURL+"/api/URLSetup/RegisterIPN",
		bytes.NewBuffer(body),
	)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var out registerIPNResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode ipn response: %w", err)
	}
	if out.Error != nil || out.IPNID == "" {
		if msg := out.Error.text(); msg != "" {
			return "", errors.New("pesapal ipn registration failed: " + msg)
		}
		return "", errors.New("pesapal ipn registration failed")
	}
	return out.IPNID, nil
}
