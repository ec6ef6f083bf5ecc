package limiter

import (
	"context"
	"fmt"
	"time"

	"github.com/thirusolai/gym-backend-h4fitness2/internal/provider"

	"github.com/redis/go-redis/v9"
)

// tokenBucketScript refills the bucket for the elapsed time, then takes the
// requested tokens if enough are left. Returns 1 when allowed, 0 otherwise.
const tokenBucketScript = `
local key = KEYS[1]
local rate = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local now = tonumber(ARGV[3])
local requested = tonumber(ARGV[4])
local ttl = math.ceil(tonumber(ARGV[5]))

local tokens = tonumber(redis.call("HGET", key, "tokens"))
local last = tonumber(redis.call("HGET", key, "last_refill"))
if tokens == nil or last == nil then
	tokens = capacity
	last = now
else
	tokens = math.min(capacity, tokens + (now - last) * rate)
	last = now
end

if tokens < requested then
	return 0
end
tokens = tokens - requested
redis.call("HSET", key, "tokens", tokens, "last_refill", last)
redis.call("EXPIRE", key, ttl)
return 1
`

// RedisRateLimiter is a token bucket shared by every API instance through Redis.
type RedisRateLimiter struct {
	redisClient   redis.Scripter
	namespace     provider.RedisNamespace
	policy        string
	rate          float64 // tokens per second
	bucketSize    float64
	keyExpiration time.Duration
	script        *redis.Script
}

func NewRedisRateLimiter(redisClient redis.Scripter, ns provider.RedisNamespace, policy string, rate, size float64, expiration time.Duration) *RedisRateLimiter {
	return &RedisRateLimiter{
		redisClient:   redisClient,
		namespace:     ns,
		policy:        policy,
		rate:          rate,
		bucketSize:    size,
		keyExpiration: expiration,
		script:        redis.NewScript(tokenBucketScript),
	}
}

// Allow takes one token from identifier's bucket.
func (l *RedisRateLimiter) Allow(ctx context.Context, identifier string) (bool, error) {
	key := fmt.Sprintf("%sratelimit:%s:%s", l.namespace, l.policy, identifier)
	now := float64(time.Now().UnixNano()) / 1e9

	result, err := l.script.Run(ctx, l.redisClient, []string{key}, l.rate, l.bucketSize, now, 1.0, l.keyExpiration.Seconds()).Int64()
	if err != nil {
		return false, fmt.Errorf("failed to execute rate limit script: %w", err)
	}
	return result == 1, nil
}
