package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ResultCache stores processed-order results in Redis as JSON.
type ResultCache struct {
	client *Client
}

// NewResultCache creates a cache over an existing client.
func NewResultCache(client *Client) *ResultCache {
	return &ResultCache{client: client}
}

// Set serializes value and writes it under key with the given TTL.
// Overwriting an existing key is the intended idempotent behavior.
func (c *ResultCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	if err := c.client.rdb.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cache key %s: %w", key, err)
	}
	return nil
}

// Get reads and deserializes a cached value into dest. Returns false when
// the key does not exist.
func (c *ResultCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := c.client.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get cache key %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}
