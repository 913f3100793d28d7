package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/kinetic/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// StyleCache implements ports.StyleCache using Redis. Each element is a hash of
// property to value, so Store merges with HSET.
type StyleCache struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*StyleCache)

// WithTTL sets the expiration of an element's entry, refreshed on every Store.
func WithTTL(ttl time.Duration) Option {
	return func(c *StyleCache) {
		c.ttl = ttl
	}
}

// WithPrefix sets the key prefix for element entries.
func WithPrefix(prefix string) Option {
	return func(c *StyleCache) {
		c.prefix = prefix
	}
}

// New creates a new Redis style cache with options.
func New(address, password string, db int, opts ...Option) *StyleCache {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis style cache from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *StyleCache {
	cache := &StyleCache{
		client: client,
		prefix: "kinetic:styles:",
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache
}

func (c *StyleCache) key(elementID string) string {
	return c.prefix + elementID
}

// Store merges the styles into the element's hash.
func (c *StyleCache) Store(ctx context.Context, elementID string, styles domain.StyleMap) error {
	if len(styles) == 0 {
		return nil
	}

	values := make(map[string]any, len(styles))
	for k, v := range styles {
		values[k] = v
	}

	pipe := c.client.Pipeline()
	pipe.HSet(ctx, c.key(elementID), values)
	if c.ttl > 0 {
		pipe.Expire(ctx, c.key(elementID), c.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store styles in redis: %w", err)
	}
	return nil
}

// Load returns the element's cached styles. Missing keys yield an empty map.
func (c *StyleCache) Load(ctx context.Context, elementID string) (domain.StyleMap, error) {
	vals, err := c.client.HGetAll(ctx, c.key(elementID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load styles from redis: %w", err)
	}
	return domain.StyleMap(vals), nil
}

// Delete removes the element's entry.
func (c *StyleCache) Delete(ctx context.Context, elementID string) error {
	if err := c.client.Del(ctx, c.key(elementID)).Err(); err != nil {
		return fmt.Errorf("failed to delete styles from redis: %w", err)
	}
	return nil
}

// Close closes the redis client.
func (c *StyleCache) Close() error {
	return c.client.Close()
}
