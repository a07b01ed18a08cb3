// Package ratelimit throttles per-key actions to one per window.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// Limiter reports whether the action identified by key may proceed now.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type memoryLimiter struct {
	mu       sync.Mutex
	window   time.Duration
	limiters *cache.Cache
	now      func() time.Time
}

// NewMemoryLimiter keeps one token bucket per key in process memory.
// Only correct for a single instance.
func NewMemoryLimiter(window time.Duration) Limiter {
	return newMemoryLimiter(window, time.Now)
}

func newMemoryLimiter(window time.Duration, now func() time.Time) *memoryLimiter {
	return &memoryLimiter{
		window:   window,
		limiters: cache.New(window, 2*window),
		now:      now,
	}
}

func (l *memoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var limiter *rate.Limiter
	if v, ok := l.limiters.Get(key); ok {
		limiter = v.(*rate.Limiter)
	} else {
		limiter = rate.NewLimiter(rate.Every(l.window), 1)
	}
	// Refresh the entry so an idle bucket is evicted one window after its last use.
	l.limiters.Set(key, limiter, l.window)

	return limiter.AllowN(l.now(), 1), nil
}

type redisLimiter struct {
	client *redis.Client
	prefix string
	window time.Duration
}

// NewRedisLimiter shares the window across every instance using the same Redis.
func NewRedisLimiter(client *redis.Client, prefix string, window time.Duration) Limiter {
	return &redisLimiter{client: client, prefix: prefix, window: window}
}

func (l *redisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	return l.client.SetNX(ctx, l.prefix+key, time.Now().Unix(), l.window).Result()
}
