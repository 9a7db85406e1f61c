package infrastructure

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// LayoutCache caches rendered floor layouts in Redis. A nil client disables
// caching entirely; transport errors degrade to misses, never failures.
type LayoutCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewLayoutCache(client *redis.Client, ttl time.Duration) *LayoutCache {
	return &LayoutCache{client: client, ttl: ttl}
}

func (c *LayoutCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("layout cache get failed", slog.String("key", key), slog.Any("error", err))
		}
		return nil, false
	}
	return payload, true
}

func (c *LayoutCache) Set(ctx context.Context, key string, payload []byte) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		slog.Warn("layout cache set failed", slog.String("key", key), slog.Any("error", err))
	}
}

// InvalidateRestaurant drops every cached layout of the restaurant, any date.
func (c *LayoutCache) InvalidateRestaurant(ctx context.Context, restaurantID string) {
	if c == nil || c.client == nil {
		return
	}
	pattern := "layout:" + restaurantID + ":*"
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			slog.Warn("layout cache invalidate failed", slog.String("key", iter.Val()), slog.Any("error", err))
		}
	}
	if err := iter.Err(); err != nil {
		slog.Warn("layout cache scan failed", slog.String("pattern", pattern), slog.Any("error", err))
	}
}
