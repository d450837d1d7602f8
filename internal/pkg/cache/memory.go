package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// entry is a cached value with its expiry deadline.
type entry struct {
	data      []byte
	expiresAt time.Time
}

// Memory is a process-local Store with TTL expiry. It backs deployments
// without redis and the test suite.
type Memory struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

// NewMemory creates an empty in-memory cache store.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// GetOrSet returns the cached value for key, computing and storing it when
// absent or expired. A non-positive ttl stores the value without expiry.
func (m *Memory) GetOrSet(ctx context.Context, key string, ttl time.Duration, dest interface{}, compute ComputeFn) error {
	m.mu.Lock()
	e, ok := m.entries[key]
	m.mu.Unlock()

	if ok && (e.expiresAt.IsZero() || m.now().Before(e.expiresAt)) {
		return json.Unmarshal(e.data, dest)
	}

	data, err := fill(ctx, dest, compute)
	if err != nil {
		return err
	}

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = m.now().Add(ttl)
	}

	m.mu.Lock()
	m.entries[key] = entry{data: data, expiresAt: expiresAt}
	m.mu.Unlock()

	return nil
}

// Delete removes a key from the store.
func (m *Memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}
