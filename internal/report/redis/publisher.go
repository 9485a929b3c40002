package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/turkeybot/internal/report"
)

// Publisher sends session events to a Redis pub/sub channel as JSON
type Publisher struct {
	client *redis.Client
	cfg    Config
	logger *slog.Logger
}

var _ report.Reporter = (*Publisher)(nil)

// New connects to Redis and verifies the connection
func New(cfg Config, logger *slog.Logger) (*Publisher, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return NewWithClient(client, cfg, logger), nil
}

// NewWithClient creates a Publisher with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config, logger *slog.Logger) *Publisher {
	if cfg.Channel == "" {
		cfg.Channel = DefaultChannel
	}
	return &Publisher{
		client: client,
		cfg:    cfg,
		logger: logger.With(slog.String("component", "redis_publisher")),
	}
}

// Channel returns the channel events are published on
func (p *Publisher) Channel() string {
	return p.cfg.Channel
}

// Report publishes the event. Failures are logged and swallowed.
func (p *Publisher) Report(ctx context.Context, event report.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("failed to encode event", slog.String("type", string(event.Type)), slog.Any("error", err))
		return
	}

	// A cancelled session still gets its final events out
	ctx = context.WithoutCancel(ctx)
	if p.cfg.PublishTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.PublishTimeout)
		defer cancel()
	}

	if err := p.client.Publish(ctx, p.cfg.Channel, data).Err(); err != nil {
		p.logger.Warn("failed to publish event",
			slog.String("type", string(event.Type)),
			slog.String("channel", p.cfg.Channel),
			slog.Any("error", err),
		)
	}
}

// Close closes the Redis connection
func (p *Publisher) Close() error {
	return p.client.Close()
}
