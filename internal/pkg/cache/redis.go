package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Redis is a Store backed by a redis server, suitable for multi-instance
// deployments where repositories on different nodes share cached reads.
type Redis struct {
	client *redis.Client
}

// NewRedis creates a redis-backed cache store.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

// GetOrSet returns the cached value for key, computing and storing it with
// the given ttl when the key is absent.
func (r *Redis) GetOrSet(ctx context.Context, key string, ttl time.Duration, dest interface{}, compute ComputeFn) error {
	data, err := r.client.Get(ctx, key).Bytes()
	if err == nil {
		return json.Unmarshal(data, dest)
	}
	if !errors.Is(err, redis.Nil) {
		return fmt.Errorf("failed to read cache key %s: %w", key, err)
	}

	data, err = fill(ctx, dest, compute)
	if err != nil {
		return err
	}

	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store cache key %s: %w", key, err)
	}

	return nil
}

// Delete removes a key from the store.
func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete cache key %s: %w", key, err)
	}
	return nil
}
