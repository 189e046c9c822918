package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// WebhookEventCap bounds the retained webhook event log
	WebhookEventCap int

	// WebhookEventTTL expires the webhook event log when idle
	WebhookEventTTL time.Duration
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:             "redis://localhost:6379",
		PoolSize:        10,
		MinIdleConns:    2,
		WebhookEventCap: 1000,
		WebhookEventTTL: 7 * 24 * time.Hour,
	}
}
