package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"parking-reserve/internal/usecase/queries"

	"github.com/redis/go-redis/v9"
)

const slotListingPrefix = "slots:list:"

// SlotListingCache keeps serialized slot listing pages in Redis. Every
// error from Redis degrades to a direct database read, never a failure.
type SlotListingCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSlotListingCache(client *redis.Client, ttl time.Duration) *SlotListingCache {
	return &SlotListingCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *SlotListingCache) GetOrCompute(ctx context.Context, key string, compute func(ctx context.Context) (*queries.SlotListResult, error)) (*queries.SlotListResult, error) {
	fullKey := slotListingPrefix + key

	data, err := c.client.Get(ctx, fullKey).Bytes()
	if err == nil {
		var result queries.SlotListResult
		if unmarshalErr := json.Unmarshal(data, &result); unmarshalErr == nil {
			return &result, nil
		}
		slog.Warn("discarding unreadable cache entry", "key", fullKey)
	} else if !errors.Is(err, redis.Nil) {
		slog.Warn("slot listing cache read failed", "key", fullKey, "error", err.Error())
	}

	result, err := compute(ctx)
	if err != nil {
		return nil, err
	}

	if data, marshalErr := json.Marshal(result); marshalErr == nil {
		if setErr := c.client.Set(ctx, fullKey, data, c.ttl).Err(); setErr != nil {
			slog.Warn("slot listing cache write failed", "key", fullKey, "error", setErr.Error())
		}
	}

	return result, nil
}

// InvalidateAll drops every cached listing page. Called after any write
// that can change slot state, so a coarse wipe is acceptable.
func (c *SlotListingCache) InvalidateAll(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, slotListingPrefix+"*", 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}
