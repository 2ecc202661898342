package paymobControllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/shopspring/decimal"
)

// Client drives the three-call Paymob handshake: auth token, remote order,
// payment key. Each call feeds the next; there is no retry, a failure
// anywhere surfaces as a hard error.
type Client struct {
	BaseURL       string
	APIKey        string
	MerchantID    string
	IntegrationID string
	IframeID      string
	Currency      string
	HTTP          *http.Client
}

// NewClientFromEnv reads PAYMOB_API_KEY, PAYMOB_MERCHANT_ID,
// PAYMOB_INTEGRATION_ID, PAYMOB_IFRAME_ID and optionally PAYMOB_API_URL
// and PAYMOB_CURRENCY.
func NewClientFromEnv() (*Client, error) {
	c := &Client{
		BaseURL:       os.Getenv("PAYMOB_API_URL"),
		APIKey:        os.Getenv("PAYMOB_API_KEY"),
		MerchantID:    os.Getenv("PAYMOB_MERCHANT_ID"),
		IntegrationID: os.Getenv("PAYMOB_INTEGRATION_ID"),
		IframeID:      os.Getenv("PAYMOB_IFRAME_ID"),
		Currency:      os.Getenv("PAYMOB_CURRENCY"),
		// Gateway calls must never hang an inbound request.
		HTTP: &http.Client{Timeout: 10 * time.Second},
	}
	if c.BaseURL == "" {
		c.BaseURL = "https://accept.paymob.com"
	}
	if c.Currency == "" {
		c.Currency = "EGP"
	}
	if c.APIKey == "" || c.MerchantID == "" || c.IntegrationID == "" || c.IframeID == "" {
		return nil, fmt.Errorf("paymob configuration missing")
	}
	return c, nil
}

// amountCents converts a price in whole currency units to minor units.
// Decimal math avoids float drift on the x100.
func amountCents(amount float64) int64 {
	return decimal.NewFromFloat(amount).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

func (c *Client) postJSON(ctx context.Context, path string, payload interface{}, out interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach paymob: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("paymob API error (%d): %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse paymob response: %v", err)
	}
	return nil
}

// GetAuthToken exchanges the static API key for a short-lived auth token.
func (c *Client) GetAuthToken(ctx context.Context) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	err := c.postJSON(ctx, "/api/auth/tokens", map[string]interface{}{
		"api_key": c.APIKey,
	}, &out)
	if err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", fmt.Errorf("paymob returned empty auth token")
	}
	return out.Token, nil
}

// CreateRemoteOrder registers the order on the gateway side and returns
// Paymob's order id.
func (c *Client) CreateRemoteOrder(ctx context.Context, authToken string, amount float64) (int64, error) {
	var out struct {
		ID int64 `json:"id"`
	}
	err := c.postJSON(ctx, "/api/ecommerce/orders", map[string]interface{}{
		"auth_token":      authToken,
		"delivery_needed": "false",
		"merchant_id":     c.MerchantID,
		"amount_cents":    amountCents(amount),
		"currency":        c.Currency,
		"items":           []interface{}{},
	}, &out)
	if err != nil {
		return 0, err
	}
	if out.ID == 0 {
		return 0, fmt.Errorf("paymob returned empty order id")
	}
	return out.ID, nil
}

// GetPaymentKey exchanges the auth token and remote order id for a one-time
// payment key valid for one hour.
func (c *Client) GetPaymentKey(ctx context.Context, authToken string, orderID int64, amount float64) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	err := c.postJSON(ctx, "/api/acceptance/payment_keys", map[string]interface{}{
		"auth_token":   authToken,
		"expiration":   3600,
		"order_id":     orderID,
		"amount_cents": amountCents(amount),
		"billing_data": map[string]string{
			"apartment":       "NA",
			"email":           "test@example.com",
			"floor":           "NA",
			"first_name":      "Test",
			"street":          "NA",
			"building":        "NA",
			"phone_number":    "+201000000000",
			"shipping_method": "NA",
			"postal_code":     "NA",
			"city":            "Cairo",
			"country":         "EG",
			"last_name":       "Account",
			"state":           "Cairo",
		},
		"currency":       c.Currency,
		"integration_id": c.IntegrationID,
	}, &out)
	if err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", fmt.Errorf("paymob returned empty payment key")
	}
	return out.Token, nil
}

// PaymentURL assembles the hosted-checkout redirect for a payment key.
func (c *Client) PaymentURL(paymentKey string) string {
	return fmt.Sprintf("%s/api/acceptance/iframes/%s?payment_token=%s", c.BaseURL, c.IframeID, paymentKey)
}

// CreatePayment runs the full handshake for an amount and returns the
// redirect URL for the hosted payment page.
func (c *Client) CreatePayment(ctx context.Context, amount float64) (string, error) {
	authToken, err := c.GetAuthToken(ctx)
	if err != nil {
		return "", err
	}
	orderID, err := c.CreateRemoteOrder(ctx, authToken, amount)
	if err != nil {
		return "", err
	}
	paymentKey, err := c.GetPaymentKey(ctx, authToken, orderID, amount)
	if err != nil {
		return "", err
	}
	return c.PaymentURL(paymentKey), nil
}
