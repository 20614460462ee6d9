package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

var (
	// ErrNetworkError indicates the service could not be reached
	ErrNetworkError = errors.New("damage detection service unreachable")
	// ErrEmptyAssessment indicates a 2xx response without an assessment
	ErrEmptyAssessment = errors.New("damage detection returned no assessment")
)

// ServiceError carries the error message returned by the detection service.
// The message is surfaced to the client as-is.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	return e.Message
}

// Config holds the damage-detection service connection settings
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client talks to the AI damage-detection service
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a damage-detection client
func NewClient(config Config) (*Client, error) {
	if config.BaseURL == "" {
		return nil, errors.New("invalid config: base URL is required")
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// DetectDamage submits a base64 photo and customer comment for assessment
func (c *Client) DetectDamage(ctx context.Context, imageBase64, comment string) (*DamageAssessment, error) {
	reqBody, err := json.Marshal(detectionRequest{Image: imageBase64, Comment: comment})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	url := c.config.BaseURL + "/api/complaint/damage-detection"

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

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp errorResponse
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
			return nil, &ServiceError{StatusCode: resp.StatusCode, Message: errResp.Error}
		}
		return nil, &ServiceError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("damage detection failed with status %d", resp.StatusCode),
		}
	}

	var detResp detectionResponse
	if err := json.Unmarshal(body, &detResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal detection response: %w", err)
	}
	if detResp.Assessment == nil {
		return nil, ErrEmptyAssessment
	}

	return detResp.Assessment, nil
}
