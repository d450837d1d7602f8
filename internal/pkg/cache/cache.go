package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// ComputeFn produces the value to cache on a miss.
type ComputeFn func(ctx context.Context) (interface{}, error)

// Store is the get-or-compute-and-store collaborator used by the
// repositories. Values are serialized as JSON so the redis and in-memory
// implementations behave identically; dest must be a pointer.
type Store interface {
	GetOrSet(ctx context.Context, key string, ttl time.Duration, dest interface{}, compute ComputeFn) error
	Delete(ctx context.Context, key string) error
}

// fill computes a value, serializes it and decodes it into dest, returning
// the serialized form for the store to persist.
func fill(ctx context.Context, dest interface{}, compute ComputeFn) ([]byte, error) {
	value, err := compute(ctx)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cache value: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}

	return data, nil
}
