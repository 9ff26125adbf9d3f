package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"perfume-shop-api/internal/dto"

	"github.com/redis/go-redis/v9"
)

const (
	// One entry per user holding their newest orders; readers slice it down
	// to the requested limit.
	keyRecentOrders = "recent_orders:%d"

	ttlRecentOrders = 5 * time.Minute
)

// RecentOrdersCache is a best-effort read-through cache for the recent-orders
// summary. A nil *RecentOrdersCache (or a nil redis client) disables caching;
// every method is safe to call either way, and redis failures are swallowed
// so the read path can fall through to the database.
type RecentOrdersCache struct {
	rdb *redis.Client
}

func NewRecentOrdersCache(rdb *redis.Client) *RecentOrdersCache {
	if rdb == nil {
		return nil
	}
	return &RecentOrdersCache{rdb: rdb}
}

func (c *RecentOrdersCache) Get(ctx context.Context, userID uint) ([]dto.RecentOrder, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, fmt.Sprintf(keyRecentOrders, userID)).Result()
	if err != nil {
		return nil, false
	}

	var orders []dto.RecentOrder
	if err := json.Unmarshal([]byte(raw), &orders); err != nil {
		return nil, false
	}

	return orders, true
}

func (c *RecentOrdersCache) Set(ctx context.Context, userID uint, orders []dto.RecentOrder) {
	if c == nil || c.rdb == nil {
		return
	}

	raw, err := json.Marshal(orders)
	if err != nil {
		return
	}

	_ = c.rdb.Set(ctx, fmt.Sprintf(keyRecentOrders, userID), raw, ttlRecentOrders).Err()
}

func (c *RecentOrdersCache) Invalidate(ctx context.Context, userID uint) {
	if c == nil || c.rdb == nil {
		return
	}

	_ = c.rdb.Del(ctx, fmt.Sprintf(keyRecentOrders, userID)).Err()
}
