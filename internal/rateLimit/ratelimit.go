// Package rateLimit throttles the booking and payment routes with a
// fixed-window counter in redis, keyed per user and per source IP.
package rateLimit

import (
	"context"
	"time"

	redisadapter "github.com/alhaqtravel/umrah-booking/internal/adapters/redis"
)

const keyPrefix = "rl:booking:"

type RateLimiter struct {
	redis *redisadapter.Cache
}

func NewRateLimiter(redis *redisadapter.Cache) *RateLimiter {
	return &RateLimiter{redis: redis}
}

// Allow counts the request against the window. A redis failure denies the
// request rather than waving it through.
func (rl *RateLimiter) Allow(ctx context.Context, key string, rate int, period time.Duration) bool {
	fullKey := keyPrefix + key

	pipe := rl.redis.Client().Pipeline()
	incr := pipe.Incr(ctx, fullKey)
	pipe.Expire(ctx, fullKey, period)

	_, err := pipe.Exec(ctx)
	if err != nil {
		return false
	}

	return incr.Val() <= int64(rate)
}
