package cache

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	values map[string]int64
	err    error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: map[string]int64{}}
}

func (s *memoryStore) Get(ctx context.Context, key string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	v, ok := s.values[key]
	if !ok {
		return "", redis.Nil
	}
	return strconv.FormatInt(v, 10), nil
}

func (s *memoryStore) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	s.values[key]++
	return s.values[key], nil
}

func (s *memoryStore) Delete(ctx context.Context, key string) error {
	delete(s.values, key)
	return nil
}

func TestLoginLimiter(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	limiter := NewLoginLimiter(store, 3, time.Minute)

	locked, err := limiter.Locked(ctx, "jane@example.com")
	require.NoError(t, err)
	require.False(t, locked)

	for i := 0; i < 3; i++ {
		require.NoError(t, limiter.RecordFailure(ctx, "jane@example.com"))
	}

	locked, err = limiter.Locked(ctx, "jane@example.com")
	require.NoError(t, err)
	require.True(t, locked)

	locked, err = limiter.Locked(ctx, "bob@example.com")
	require.NoError(t, err)
	require.False(t, locked)

	require.NoError(t, limiter.Reset(ctx, "jane@example.com"))

	locked, err = limiter.Locked(ctx, "jane@example.com")
	require.NoError(t, err)
	require.False(t, locked)
}

func TestLoginLimiter_StoreError(t *testing.T) {
	store := newMemoryStore()
	store.err = errors.New("connection refused")

	_, err := NewLoginLimiter(store, 3, time.Minute).Locked(context.Background(), "jane@example.com")

	require.Error(t, err)
}

func TestLoginLimiter_Disabled(t *testing.T) {
	store := newMemoryStore()
	store.err = errors.New("never reached")

	locked, err := NewLoginLimiter(store, 0, time.Minute).Locked(context.Background(), "jane@example.com")

	require.NoError(t, err)
	require.False(t, locked)
}
