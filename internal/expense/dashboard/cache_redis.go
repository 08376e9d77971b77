package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ledgerline/ledgerline/internal/platform/constants"
)

// cacheTTL bounds staleness for reads that race a write on another instance;
// writes on this instance invalidate eagerly.
const cacheTTL = 5 * time.Minute

// RedisCache implements [Cache] with JSON values under per-user, per-month
// keys:
//
//	dashboard:top_categories:<user_id>:<year>-<month>
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func cacheKey(userID int64, year int, month time.Month) string {
	return fmt.Sprintf("%s%d:%04d-%02d", constants.RedisPrefixTopCategories, userID, year, int(month))
}

func (cache *RedisCache) GetTopCategories(context context.Context, userID int64, year int, month time.Month) ([]CategoryTotal, bool, error) {
	payload, err := cache.client.Get(context, cacheKey(userID, year, month)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis_dashboard_get_failed: %w", err)
	}

	var totals []CategoryTotal
	if err := json.Unmarshal(payload, &totals); err != nil {
		// A corrupt entry is treated as a miss and will be overwritten.
		return nil, false, nil
	}

	return totals, true, nil
}

func (cache *RedisCache) SetTopCategories(context context.Context, userID int64, year int, month time.Month, totals []CategoryTotal) error {
	payload, err := json.Marshal(totals)
	if err != nil {
		return fmt.Errorf("redis_dashboard_marshal_failed: %w", err)
	}

	if err := cache.client.Set(context, cacheKey(userID, year, month), payload, cacheTTL).Err(); err != nil {
		return fmt.Errorf("redis_dashboard_set_failed: %w", err)
	}

	return nil
}

func (cache *RedisCache) InvalidateMonth(context context.Context, userID int64, year int, month time.Month) error {
	if err := cache.client.Del(context, cacheKey(userID, year, month)).Err(); err != nil {
		return fmt.Errorf("redis_dashboard_invalidate_failed: %w", err)
	}

	return nil
}
