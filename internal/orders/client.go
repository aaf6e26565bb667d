package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"fabline/internal/config"
)

const userAgent = "Fabline-Go/0.1.0"

// Client fetches orders from the backend of record.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewClient builds an order backend client from configuration.
func NewClient(cfg *config.Config) *Client {
	timeout := time.Duration(cfg.Backend.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: cfg.Backend.BaseURL,
		token:   cfg.Backend.APIToken,
		client:  &http.Client{Timeout: timeout},
	}
}

// GetOrder fetches one order including its tracking ledger.
//
// Absence is not an error: a 404 or any other non-success response returns
// (nil, nil) so callers degrade to default derivation output. Only transport
// failures surface as errors, and callers are expected to degrade on those
// too.
func (c *Client) GetOrder(ctx context.Context, orderID string) (*Order, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}

	endpoint := fmt.Sprintf("%s/orders/%s", c.baseURL, url.PathEscape(orderID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build order request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch order %s: %w", orderID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, nil
	}

	var order Order
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		// Malformed payloads are treated like absent data.
		return nil, nil
	}
	if order.ID == "" {
		order.ID = orderID
	}
	return &order, nil
}
