package limiter

import (
	"fmt"
	"time"

	"github.com/thirusolai/gym-backend-h4fitness2/internal/conf"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/provider"

	"github.com/redis/go-redis/v9"
)

const DefaultPolicy = "default"

// Manager holds one limiter per configured policy.
type Manager struct {
	limiters map[string]*RedisRateLimiter
}

// NewManager builds the default limiter and one per named policy.
func NewManager(cfg *conf.RateLimiterConfig, redisClient *redis.Client, ns provider.RedisNamespace) (*Manager, error) {
	if cfg == nil {
		return nil, fmt.Errorf("rate limiter config is nil")
	}

	build := func(name string, policy conf.RateLimiterPolicy) (*RedisRateLimiter, error) {
		if policy.Limit <= 0 {
			return nil, fmt.Errorf("policy limit must be positive")
		}
		interval, err := time.ParseDuration(policy.Interval)
		if err != nil {
			return nil, fmt.Errorf("invalid policy interval format: %w", err)
		}
		if interval <= 0 {
			return nil, fmt.Errorf("policy interval must be positive")
		}
		rate := float64(policy.Limit) / interval.Seconds()
		return NewRedisRateLimiter(redisClient, ns, name, rate, float64(policy.Limit), interval*2), nil
	}

	limiters := make(map[string]*RedisRateLimiter, len(cfg.Policies)+1)
	def, err := build(DefaultPolicy, cfg.Default)
	if err != nil {
		return nil, fmt.Errorf("failed to create default rate limiter: %w", err)
	}
	limiters[DefaultPolicy] = def

	for name, policy := range cfg.Policies {
		l, err := build(name, policy)
		if err != nil {
			return nil, fmt.Errorf("failed to create policy '%s': %w", name, err)
		}
		limiters[name] = l
	}

	return &Manager{limiters: limiters}, nil
}

// Get returns the named limiter, or the default one if name is not configured.
func (m *Manager) Get(name string) *RedisRateLimiter {
	if l, ok := m.limiters[name]; ok {
		return l
	}
	return m.limiters[DefaultPolicy]
}
