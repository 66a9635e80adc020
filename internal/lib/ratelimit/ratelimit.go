// Package ratelimit counts failed attempts per key in Redis and refuses
// further attempts once a limit is reached inside a time window.
//
// The limiter fails open: when Redis is unreachable every attempt is
// allowed and the Redis error is returned for the caller to log.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "dashboard:login_failures:"

// Limiter tracks failures in fixed windows that start at the first
// failure for a key.
type Limiter struct {
	client redis.Cmdable
	max    int
	window time.Duration
}

// New creates a Limiter. A nil client disables limiting.
func New(client redis.Cmdable, maxFailures int, window time.Duration) *Limiter {
	return &Limiter{
		client: client,
		max:    maxFailures,
		window: window,
	}
}

func redisKey(key string) string {
	return keyPrefix + strings.ToLower(strings.TrimSpace(key))
}

// Allow reports whether another attempt for key is permitted and, if not,
// how long until the window resets.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	if l.client == nil || l.max <= 0 {
		return true, 0, nil
	}

	k := redisKey(key)

	count, err := l.client.Get(ctx, k).Int()
	if errors.Is(err, redis.Nil) {
		return true, 0, nil
	}
	if err != nil {
		return true, 0, fmt.Errorf("read failure count: %w", err)
	}

	if count < l.max {
		return true, 0, nil
	}

	ttl, err := l.client.TTL(ctx, k).Result()
	if err != nil {
		return false, l.window, fmt.Errorf("read failure window: %w", err)
	}
	if ttl < 0 {
		ttl = l.window
	}

	return false, ttl, nil
}

// RecordFailure increments the failure count for key. The first failure
// in a window starts the window's expiry.
func (l *Limiter) RecordFailure(ctx context.Context, key string) error {
	if l.client == nil || l.max <= 0 {
		return nil
	}

	k := redisKey(key)

	count, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return fmt.Errorf("increment failure count: %w", err)
	}

	if count == 1 {
		if err := l.client.Expire(ctx, k, l.window).Err(); err != nil {
			return fmt.Errorf("set failure window: %w", err)
		}
	}

	return nil
}

// Reset clears the failures recorded for key, typically after a
// successful attempt.
func (l *Limiter) Reset(ctx context.Context, key string) error {
	if l.client == nil {
		return nil
	}

	if err := l.client.Del(ctx, redisKey(key)).Err(); err != nil {
		return fmt.Errorf("reset failure count: %w", err)
	}
	return nil
}
