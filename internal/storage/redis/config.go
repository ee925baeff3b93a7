package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// TTL settings for different entity types (0 = no expiry)
	GridTTL              time.Duration
	ScanResultTTL        time.Duration
	DefinitionTTL        time.Duration
	MissingDefinitionTTL time.Duration
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:                  "redis://localhost:6379",
		PoolSize:             10,
		MinIdleConns:         2,
		GridTTL:              7 * 24 * time.Hour,
		ScanResultTTL:        7 * 24 * time.Hour,
		DefinitionTTL:        30 * 24 * time.Hour,
		MissingDefinitionTTL: 24 * time.Hour,
	}
}
