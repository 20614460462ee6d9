package recommender

import (
	"errors"
	"time"
)

// Config holds the recommendation service connection settings
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Validate checks the configuration
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("base URL is required")
	}
	return nil
}
