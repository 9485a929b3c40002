package redis

import "time"

// DefaultChannel is the pub/sub channel events are published on
const DefaultChannel = "turkeybot:events"

// Config holds Redis connection and publishing settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Channel is the pub/sub channel name
	Channel string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// PublishTimeout bounds each PUBLISH call
	PublishTimeout time.Duration
}

// DefaultConfig returns sensible defaults for the event publisher
func DefaultConfig() Config {
	return Config{
		URL:            "redis://localhost:6379",
		Channel:        DefaultChannel,
		PoolSize:       4,
		MinIdleConns:   1,
		PublishTimeout: 2 * time.Second,
	}
}
