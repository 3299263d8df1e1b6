// Package cache connects to the Redis server that receives the analytics
// event stream.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultStream is the stream key used when none is configured.
const DefaultStream = "notes:events"

// Cache wraps a Redis client and the stream it appends to.
type Cache struct {
	Client *redis.Client
	Stream string
}

// ParseURL validates a Redis connection URL.
func ParseURL(url string) (*redis.Options, error) {
	if url == "" {
		return nil, fmt.Errorf("cache URL is empty")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid cache URL: %w", err)
	}
	return opts, nil
}

// Open connects to url and pings before returning.
func Open(ctx context.Context, url, stream string) (*Cache, error) {
	opts, err := ParseURL(url)
	if err != nil {
		return nil, err
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("pinging cache: %w", err)
	}

	if stream == "" {
		stream = DefaultStream
	}
	return &Cache{Client: client, Stream: stream}, nil
}

// Name identifies the dependency in readiness reports.
func (c *Cache) Name() string { return "redis" }

// Ping verifies the server answers.
func (c *Cache) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}

// Close shuts down the client.
func (c *Cache) Close() error {
	return c.Client.Close()
}
