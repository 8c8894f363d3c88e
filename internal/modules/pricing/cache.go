// README: Redis cache for the merged price table.
package pricing

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const tableCacheKey = "pricing:table"

type Cache struct {
	redis *redis.Client
}

func NewCache(redis *redis.Client) *Cache {
	return &Cache{redis: redis}
}

// Get returns the cached table and whether the cache held one.
func (c *Cache) Get(ctx context.Context) (PriceTable, bool, error) {
	vals, err := c.redis.HGetAll(ctx, tableCacheKey).Result()
	if err != nil {
		return nil, false, err
	}
	return decodeTable(vals)
}

// decodeTable converts a cached hash back into a table. A missing key reads as an empty hash.
func decodeTable(vals map[string]string) (PriceTable, bool, error) {
	if len(vals) == 0 {
		return nil, false, nil
	}
	table := make(PriceTable, len(vals))
	for k, v := range vals {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, false, fmt.Errorf("cached price %s: %w", k, err)
		}
		table[k] = n
	}
	return table, true, nil
}

// Set replaces the cached table atomically and sets its expiry.
func (c *Cache) Set(ctx context.Context, table PriceTable, ttl time.Duration) error {
	if len(table) == 0 {
		return c.Invalidate(ctx)
	}
	fields := make(map[string]interface{}, len(table))
	for k, v := range table {
		fields[k] = v
	}
	pipe := c.redis.TxPipeline()
	pipe.Del(ctx, tableCacheKey)
	pipe.HSet(ctx, tableCacheKey, fields)
	if ttl > 0 {
		pipe.Expire(ctx, tableCacheKey, ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (c *Cache) Invalidate(ctx context.Context) error {
	return c.redis.Del(ctx, tableCacheKey).Err()
}
