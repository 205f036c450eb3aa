package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheGenerationKey = "reports:generation"

// Cache keeps computed reports in Redis for a short TTL. Keys carry a
// generation counter; invalidation bumps the counter instead of scanning for
// keys, so stale entries just age out.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache builds a report cache. A nil client disables caching: every
// lookup misses and writes are no-ops.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) enabled() bool {
	return c != nil && c.client != nil
}

func (c *Cache) key(ctx context.Context, rng Range, today string) (string, error) {
	gen, err := c.client.Get(ctx, cacheGenerationKey).Int64()
	if err != nil && err != redis.Nil {
		return "", err
	}
	return fmt.Sprintf("reports:%d:%s:%s", gen, rng, today), nil
}

// Get returns a cached report, or nil on miss or any cache error.
func (c *Cache) Get(ctx context.Context, rng Range, today string) *RangedReport {
	if !c.enabled() {
		return nil
	}
	key, err := c.key(ctx, rng, today)
	if err != nil {
		return nil
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}
	var report RangedReport
	if err := json.Unmarshal(raw, &report); err != nil {
		return nil
	}
	return &report
}

// Set stores a computed report. Failures are swallowed: the cache is an
// optimization, not a source of truth.
func (c *Cache) Set(ctx context.Context, rng Range, today string, report *RangedReport) {
	if !c.enabled() || report == nil {
		return
	}
	key, err := c.key(ctx, rng, today)
	if err != nil {
		return
	}
	raw, err := json.Marshal(report)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, key, raw, c.ttl).Err()
}

// Invalidate makes all cached reports unreachable by bumping the
// generation. Called after appointment status writes.
func (c *Cache) Invalidate(ctx context.Context) error {
	if !c.enabled() {
		return nil
	}
	if err := c.client.Incr(ctx, cacheGenerationKey).Err(); err != nil {
		return fmt.Errorf("reports: cache invalidation failed: %w", err)
	}
	return nil
}
