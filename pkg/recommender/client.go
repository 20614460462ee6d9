package recommender

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to the external recommendation service
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a recommendation service client
func NewClient(config Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// MoneySaver fetches cheaper grocery alternatives for the given items
func (c *Client) MoneySaver(ctx context.Context, items []GroceryItem) (Recommendations, error) {
	return c.fetch(ctx, "/api/money-saver/recommendations", groceryRequest{Items: items})
}

// Healthy fetches healthier grocery alternatives for the given items
func (c *Client) Healthy(ctx context.Context, items []GroceryItem) (Recommendations, error) {
	return c.fetch(ctx, "/api/healthy/recommendations", groceryRequest{Items: items})
}

// RestaurantUpgrades fetches premium menu alternatives for the given items
func (c *Client) RestaurantUpgrades(ctx context.Context, items []UpgradeItem) (Recommendations, error) {
	return c.fetch(ctx, "/api/restaurant/upgrade-recommendations", upgradeRequest{Items: items})
}

func (c *Client) fetch(ctx context.Context, endpoint string, payload interface{}) (Recommendations, error) {
	body, err := c.doRequest(ctx, endpoint, payload)
	if err != nil {
		return nil, err
	}

	var resp recommendationResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recommendation response: %w", err)
	}
	if resp.Recommendations == nil {
		resp.Recommendations = Recommendations{}
	}

	return resp.Recommendations, nil
}

func (c *Client) doRequest(ctx context.Context, endpoint string, payload interface{}) ([]byte, error) {
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	url := c.config.BaseURL + endpoint

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d, body: %s", ErrServiceError, resp.StatusCode, string(body))
	}

	return body, nil
}
