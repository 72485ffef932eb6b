// Package redis publishes decision records to a Redis pub/sub channel so
// external consumers (dashboards, recorders) can observe the dry-run feed.
// Pub/sub is ephemeral messaging: nothing is ever written to a key, so the
// service retains its stateless, no-persistence behavior.
package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/momentalabs/momenta/internal/domain"
)

// Config holds connection parameters for the Redis publisher.
type Config struct {
	Addr     string
	Password string
	DB       int
	Channel  string
}

// Publisher streams decision records over Redis pub/sub.
type Publisher struct {
	rdb     *redis.Client
	channel string
}

// NewPublisher connects to Redis, pings it to verify connectivity, and
// returns a Publisher for the configured channel.
func NewPublisher(ctx context.Context, cfg Config) (*Publisher, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}

	return &Publisher{rdb: rdb, channel: cfg.Channel}, nil
}

// Publish sends a decision record as JSON to the configured channel.
func (p *Publisher) Publish(ctx context.Context, d domain.Decision) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("redis: marshal decision %s: %w", d.ID, err)
	}
	if err := p.rdb.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("redis: publish %s: %w", p.channel, err)
	}
	return nil
}

// Close closes the Redis connection.
func (p *Publisher) Close() error {
	return p.rdb.Close()
}

// Compile-time interface check.
var _ domain.DecisionStream = (*Publisher)(nil)
