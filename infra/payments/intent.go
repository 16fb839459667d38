// Package payments holds the payment-intent client and the boundary types
// of the two payment SDK integrations. The SDKs drive their own checkout
// UI; this package only models the request options and result callbacks the
// core consumes.
package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lumenshop/storefront/pkg/logger"
)

// IntentClient creates payment intents through the merchant backend
// endpoint and implements remote.PaymentIntents.
type IntentClient struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

// NewIntentClient creates a client for the payment-intent endpoint rooted
// at baseURL.
func NewIntentClient(baseURL string, timeout time.Duration, log *logger.Logger) (*IntentClient, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	if log == nil {
		log = logger.NewDefault("payments")
	}
	return &IntentClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}, nil
}

type intentRequest struct {
	Amount int `json:"amount"`
}

type intentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// Create requests a payment intent for an amount in currency subunits and
// returns the client secret.
func (c *IntentClient) Create(ctx context.Context, amount int) (string, error) {
	if amount <= 0 {
		return "", fmt.Errorf("amount must be positive")
	}
	body, err := json.Marshal(intentRequest{Amount: amount})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/create-payment-intent", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("create payment intent: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("create payment intent failed: %s", http.StatusText(resp.StatusCode))
	}

	var parsed intentResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if parsed.ClientSecret == "" {
		return "", fmt.Errorf("response missing client secret")
	}
	return parsed.ClientSecret, nil
}
