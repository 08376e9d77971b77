// Copyright (c) 2026 Ledgerline. All rights reserved.

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ledgerline/ledgerline/internal/platform/constants"
)

// # Login Throttle (Redis)

// RedisLoginThrottle implements [LoginThrottle] on top of Redis counters
// with native TTL expiry.
//
// # Key Shape
//
//	auth:login_attempts:<email>|<ip>
//
// The counter expires on its own after the window, so an abandoned attack
// leaves no state behind.
type RedisLoginThrottle struct {
	client *redis.Client
}

// NewLoginThrottle creates a Redis-backed failed-login counter.
func NewLoginThrottle(client *redis.Client) *RedisLoginThrottle {
	return &RedisLoginThrottle{client: client}
}

/*
Hit increments the failure counter for the key and returns the new count.

Description: Uses INCR for atomicity; the window TTL is attached when the
counter is first created so the window is measured from the first failure.

Parameters:
  - context: context.Context
  - key: string
  - window: time.Duration

Returns:
  - int64: Attempt count including this one
  - error: Redis failures
*/
func (throttle *RedisLoginThrottle) Hit(context context.Context, key string, window time.Duration) (int64, error) {
	redisKey := constants.RedisPrefixLoginAttempts + key

	count, err := throttle.client.Incr(context, redisKey).Result()
	if err != nil {
		return 0, fmt.Errorf("redis_login_throttle_incr_failed: %w", err)
	}

	// First failure in this window: start the expiry clock.
	if count == 1 {
		if err := throttle.client.Expire(context, redisKey, window).Err(); err != nil {
			return count, fmt.Errorf("redis_login_throttle_expire_failed: %w", err)
		}
	}

	return count, nil
}

/*
Clear forgets the failure counter after a successful login.

Parameters:
  - context: context.Context
  - key: string

Returns:
  - error: Redis failures
*/
func (throttle *RedisLoginThrottle) Clear(context context.Context, key string) error {
	redisKey := constants.RedisPrefixLoginAttempts + key

	if err := throttle.client.Del(context, redisKey).Err(); err != nil {
		return fmt.Errorf("redis_login_throttle_clear_failed: %w", err)
	}

	return nil
}
