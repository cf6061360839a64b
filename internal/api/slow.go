package api

import "time"

// Slow-endpoint defaults. The month-close and schedule endpoints can take
// the backend tens of seconds; regular traffic never retries, these retry
// exactly once after a fixed delay and only on timeout.
const (
	slowTimeout    = 90 * time.Second
	slowRetryDelay = 5 * time.Second
)

// NewSlowClient creates a client tuned for the backend's slow endpoints.
func NewSlowClient(cfg Config) (*Client, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = slowTimeout
	}

	client, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}

	client.retryOnTimeout = true
	client.retryDelay = slowRetryDelay
	return client, nil
}
