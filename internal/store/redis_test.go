package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wrapper.one/internal/models"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	st, err := NewRedisStore(&redis.Options{Addr: mr.Addr()}, "wrapper")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st, mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	st, mr := newTestRedisStore(t)
	ctx := context.Background()

	rec := &models.Record{
		ID:       "abc123",
		Value:    "s3cr3t",
		ExpireAt: time.Now().Unix() + 60,
	}
	require.NoError(t, st.Put(ctx, rec))
	assert.True(t, mr.Exists("wrapper:abc123"))

	got, err := st.Take(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", got.ID)
	assert.Equal(t, "s3cr3t", got.Value)
	assert.Equal(t, rec.ExpireAt, got.ExpireAt)

	// Taken means gone.
	assert.False(t, mr.Exists("wrapper:abc123"))
	_, err = st.Take(ctx, "abc123")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStoreUnknownID(t *testing.T) {
	st, _ := newTestRedisStore(t)

	_, err := st.Take(context.Background(), "nothere")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStoreExpiry(t *testing.T) {
	st, mr := newTestRedisStore(t)
	ctx := context.Background()

	rec := &models.Record{ID: "shortlived", Value: "v", ExpireAt: time.Now().Unix() + 30}
	require.NoError(t, st.Put(ctx, rec))

	mr.FastForward(31 * time.Second)

	_, err := st.Take(ctx, "shortlived")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStoreRejectsPastExpiry(t *testing.T) {
	st, _ := newTestRedisStore(t)

	rec := &models.Record{ID: "stale", Value: "v", ExpireAt: time.Now().Unix() - 10}
	err := st.Put(context.Background(), rec)
	assert.Error(t, err)
}

func TestRedisStoreConcurrentTake(t *testing.T) {
	st, _ := newTestRedisStore(t)
	ctx := context.Background()

	rec := &models.Record{ID: "contested", Value: "v", ExpireAt: time.Now().Unix() + 60}
	require.NoError(t, st.Put(ctx, rec))

	const callers = 8
	var wg sync.WaitGroup
	results := make(chan error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := st.Take(ctx, "contested")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var winners int
	for err := range results {
		switch {
		case err == nil:
			winners++
		case errors.Is(err, ErrNotFound):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, winners, "exactly one take must succeed")
}
