package limiter

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thirusolai/gym-backend-h4fitness2/internal/conf"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestManager_PolicyLimits(t *testing.T) {
	mr, client := newRedis(t)
	m, err := NewManager(&conf.RateLimiterConfig{
		Default: conf.RateLimiterPolicy{Interval: "1h", Limit: 5},
		Policies: map[string]conf.RateLimiterPolicy{
			"payments": {Interval: "1h", Limit: 2},
		},
	}, client, "gym:test:")
	require.NoError(t, err)

	ctx := context.Background()
	payments := m.Get("payments")
	for i := 0; i < 2; i++ {
		ok, err := payments.Allow(ctx, "operator-1")
		require.NoError(t, err)
		assert.True(t, ok, "request %d", i)
	}
	ok, err := payments.Allow(ctx, "operator-1")
	require.NoError(t, err)
	assert.False(t, ok)

	// Buckets are per identifier and per policy.
	ok, err = payments.Allow(ctx, "operator-2")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = m.Get("unknown").Allow(ctx, "operator-1")
	require.NoError(t, err)
	assert.True(t, ok)

	assert.True(t, mr.Exists("gym:test:ratelimit:payments:operator-1"))
	assert.True(t, mr.Exists("gym:test:ratelimit:default:operator-1"))
}

func TestNewManager_InvalidPolicy(t *testing.T) {
	_, client := newRedis(t)

	_, err := NewManager(&conf.RateLimiterConfig{Default: conf.RateLimiterPolicy{Interval: "soon", Limit: 1}}, client, "")
	assert.Error(t, err)

	_, err = NewManager(&conf.RateLimiterConfig{Default: conf.RateLimiterPolicy{Interval: "1s", Limit: 0}}, client, "")
	assert.Error(t, err)

	_, err = NewManager(nil, client, "")
	assert.Error(t, err)
}

func TestAllow_RedisUnavailable(t *testing.T) {
	mr, client := newRedis(t)
	l := NewRedisRateLimiter(client, "", DefaultPolicy, 1, 1, 0)
	mr.Close()

	_, err := l.Allow(context.Background(), "x")
	assert.Error(t, err)
}

func TestAllow_SpendsTokens(t *testing.T) {
	mr, client := newRedis(t)
	// No refill, so every allowed request must come out of the bucket.
	l := NewRedisRateLimiter(client, "", DefaultPolicy, 0, 3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := l.Allow(ctx, "desk")
		require.NoError(t, err)
		assert.True(t, ok, "request %d", i)

		left, err := strconv.ParseFloat(mr.HGet("ratelimit:"+DefaultPolicy+":desk", "tokens"), 64)
		require.NoError(t, err)
		assert.InDelta(t, float64(2-i), left, 1e-9)
	}

	ok, err := l.Allow(ctx, "desk")
	require.NoError(t, err)
	assert.False(t, ok)
}
