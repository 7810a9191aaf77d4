package payment

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.razorpay.com/v1"

// RazorpayClient talks to the Razorpay orders API and verifies checkout
// callbacks.
type RazorpayClient struct {
	keyID      string
	keySecret  string
	baseURL    string
	httpClient *http.Client
}

// NewRazorpayClient creates a gateway client with the given API credentials
func NewRazorpayClient(keyID, keySecret string) *RazorpayClient {
	return &RazorpayClient{
		keyID:     keyID,
		keySecret: keySecret,
		baseURL:   defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Order is the gateway's order object as returned by the orders API
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type createOrderRequest struct {
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	Receipt        string `json:"receipt,omitempty"`
	PaymentCapture int    `json:"payment_capture"`
}

// CreateOrder registers a payable order with the gateway. The amount is in
// currency units and converted to the smallest subunit (paise) on the wire.
func (c *RazorpayClient) CreateOrder(amount float64, currency, receipt string) (*Order, error) {
	if currency == "" {
		currency = "INR"
	}
	body, err := json.Marshal(createOrderRequest{
		Amount:         int64(amount * 100),
		Currency:       currency,
		Receipt:        receipt,
		PaymentCapture: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("error encoding order request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("error building order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error calling payment gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error struct {
				Description string `json:"description"`
			} `json:"error"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Error.Description != "" {
			return nil, fmt.Errorf("payment gateway rejected order: %s", apiErr.Error.Description)
		}
		return nil, fmt.Errorf("payment gateway returned status %d", resp.StatusCode)
	}

	var order Order
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("error decoding order response: %w", err)
	}
	return &order, nil
}

// VerifySignature checks the HMAC-SHA256 signature Razorpay attaches to a
// successful checkout: hex(hmac_sha256(order_id + "|" + payment_id, secret)).
// Comparison is constant-time.
func (c *RazorpayClient) VerifySignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(c.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
