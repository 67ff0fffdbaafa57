package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/todo-api/internal/config"
)

func setupTestLimiter(t *testing.T, requests int, window time.Duration) (*RedisLimiter, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(func() { mr.Close() })

	cfg := config.RedisConnection{
		AddressRedis: mr.Addr(),
		DialTimeout:  time.Second,
		TimeoutRedis: time.Second,
	}

	l, err := NewRedisLimiter(context.Background(), cfg, config.RateLimit{Requests: requests, Window: window})
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })
	return l, mr
}

func TestRedisLimiter_Allow(t *testing.T) {
	l, mr := setupTestLimiter(t, 3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := l.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, ok, "request %d should pass", i+1)
	}

	ok, err := l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, ok)

	// другой ключ считается отдельно
	ok, err = l.Allow(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Equal(t, time.Minute, mr.TTL(keyPrefix+"10.0.0.1"))

	mr.FastForward(time.Minute + time.Second)
	ok, err = l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisLimiter_FirstHitSetsWindow(t *testing.T) {
	l, mr := setupTestLimiter(t, 3, time.Minute)

	ok, err := l.Allow(context.Background(), "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, time.Minute, mr.TTL(keyPrefix+"10.0.0.1"))
}

func TestRedisLimiter_KeyWithoutTTLRecovers(t *testing.T) {
	l, mr := setupTestLimiter(t, 3, time.Minute)
	key := keyPrefix + "10.0.0.1"
	require.NoError(t, mr.Set(key, "10"))
	require.Zero(t, mr.TTL(key))

	ok, err := l.Allow(context.Background(), "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, time.Minute, mr.TTL(key))

	mr.FastForward(time.Minute + time.Second)
	ok, err = l.Allow(context.Background(), "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisLimiter_ServerDown(t *testing.T) {
	l, mr := setupTestLimiter(t, 3, time.Minute)
	mr.Close()

	_, err := l.Allow(context.Background(), "10.0.0.1")
	assert.Error(t, err)
}

func TestNewRedisLimiter_Unreachable(t *testing.T) {
	cfg := config.RedisConnection{
		AddressRedis: "127.0.0.1:1",
		DialTimeout:  100 * time.Millisecond,
	}
	_, err := NewRedisLimiter(context.Background(), cfg, config.RateLimit{Requests: 1, Window: time.Second})
	assert.Error(t, err)
}

func TestLocalLimiter_Allow(t *testing.T) {
	l := NewLocalLimiter(2, time.Hour)
	ctx := context.Background()

	ok, _ := l.Allow(ctx, "a")
	assert.True(t, ok)
	ok, _ = l.Allow(ctx, "a")
	assert.True(t, ok)
	ok, _ = l.Allow(ctx, "a")
	assert.False(t, ok)

	ok, err := l.Allow(ctx, "b")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLocalLimiter_Evict(t *testing.T) {
	l := NewLocalLimiter(1, time.Millisecond)
	ctx := context.Background()

	_, _ = l.Allow(ctx, "a")
	time.Sleep(5 * time.Millisecond)
	_, _ = l.Allow(ctx, "b")

	l.mu.Lock()
	defer l.mu.Unlock()
	_, exists := l.buckets["a"]
	assert.False(t, exists)
	assert.Len(t, l.buckets, 1)
}
