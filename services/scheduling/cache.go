package scheduling

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// SlotCache memoizes slot scans in Redis. Each provider/date pair carries a
// version counter; invalidation bumps the counter, which orphans every
// cached duration for that snapshot instead of scanning for keys.
type SlotCache struct {
	Client *redis.Client
	TTL    time.Duration
}

// NewSlotCache returns a cache with a short default TTL; entries are also
// dropped eagerly via Invalidate whenever a booking changes status.
func NewSlotCache(client *redis.Client) *SlotCache {
	return &SlotCache{Client: client, TTL: 2 * time.Minute}
}

func (c *SlotCache) version(ctx context.Context, providerID, date string) int64 {
	v, err := c.Client.Get(ctx, fmt.Sprintf("slotver:%s:%s", providerID, date)).Int64()
	if err != nil {
		return 0
	}
	return v
}

func (c *SlotCache) key(ctx context.Context, providerID, date string, duration int) string {
	return fmt.Sprintf("slots:%s:%s:%d:v%d", providerID, date, duration, c.version(ctx, providerID, date))
}

// Get returns the memoized hours and whether the key was present.
func (c *SlotCache) Get(ctx context.Context, providerID, date string, duration int) ([]int, bool) {
	raw, err := c.Client.Get(ctx, c.key(ctx, providerID, date, duration)).Result()
	if err != nil {
		return nil, false
	}
	var hours []int
	if err := json.Unmarshal([]byte(raw), &hours); err != nil {
		return nil, false
	}
	return hours, true
}

// Set memoizes a scan result under the current snapshot version.
func (c *SlotCache) Set(ctx context.Context, providerID, date string, duration int, hours []int) error {
	raw, err := json.Marshal(hours)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, c.key(ctx, providerID, date, duration), raw, c.TTL).Err()
}

// Invalidate bumps the provider/date version counter.
func (c *SlotCache) Invalidate(ctx context.Context, providerID, date string) error {
	key := fmt.Sprintf("slotver:%s:%s", providerID, date)
	if err := c.Client.Incr(ctx, key).Err(); err != nil {
		return err
	}
	// Version counters outlive the entries they orphan by a wide margin.
	return c.Client.Expire(ctx, key, 24*time.Hour).Err()
}
