package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGetOrSetComputesOnce(t *testing.T) {
	store := NewMemory()

	calls := 0
	compute := func(ctx context.Context) (interface{}, error) {
		calls++
		return map[string]string{"k": "v"}, nil
	}

	var first, second map[string]string
	require.NoError(t, store.GetOrSet(context.Background(), "key", time.Minute, &first, compute))
	require.NoError(t, store.GetOrSet(context.Background(), "key", time.Minute, &second, compute))

	assert.Equal(t, 1, calls)
	assert.Equal(t, "v", second["k"])
}

func TestMemoryTTLExpiry(t *testing.T) {
	store := NewMemory()
	now := time.Now()
	store.now = func() time.Time { return now }

	calls := 0
	compute := func(ctx context.Context) (interface{}, error) {
		calls++
		return calls, nil
	}

	var out int
	require.NoError(t, store.GetOrSet(context.Background(), "key", time.Minute, &out, compute))
	assert.Equal(t, 1, out)

	// Still fresh just before the deadline.
	now = now.Add(59 * time.Second)
	require.NoError(t, store.GetOrSet(context.Background(), "key", time.Minute, &out, compute))
	assert.Equal(t, 1, out)

	// Expired after the deadline.
	now = now.Add(2 * time.Second)
	require.NoError(t, store.GetOrSet(context.Background(), "key", time.Minute, &out, compute))
	assert.Equal(t, 2, out)
}

func TestMemoryNonPositiveTTLNeverExpires(t *testing.T) {
	store := NewMemory()
	now := time.Now()
	store.now = func() time.Time { return now }

	calls := 0
	compute := func(ctx context.Context) (interface{}, error) {
		calls++
		return calls, nil
	}

	var out int
	require.NoError(t, store.GetOrSet(context.Background(), "key", 0, &out, compute))

	now = now.Add(1000 * time.Hour)
	require.NoError(t, store.GetOrSet(context.Background(), "key", 0, &out, compute))
	assert.Equal(t, 1, calls)
}

func TestMemoryDelete(t *testing.T) {
	store := NewMemory()

	calls := 0
	compute := func(ctx context.Context) (interface{}, error) {
		calls++
		return calls, nil
	}

	var out int
	require.NoError(t, store.GetOrSet(context.Background(), "key", time.Minute, &out, compute))
	require.NoError(t, store.Delete(context.Background(), "key"))
	require.NoError(t, store.GetOrSet(context.Background(), "key", time.Minute, &out, compute))

	assert.Equal(t, 2, calls)
}

func TestMemoryComputeErrorNotCached(t *testing.T) {
	store := NewMemory()

	boom := errors.New("boom")
	var out int
	err := store.GetOrSet(context.Background(), "key", time.Minute, &out, func(ctx context.Context) (interface{}, error) {
		return nil, boom
	})
	require.ErrorIs(t, err, boom)

	require.NoError(t, store.GetOrSet(context.Background(), "key", time.Minute, &out, func(ctx context.Context) (interface{}, error) {
		return 7, nil
	}))
	assert.Equal(t, 7, out)
}
