package cache

import (
	"context"
	"encoding/json"
	"time"

	"Gin_postgres_redis_equipment_tracker/stock"

	"github.com/redis/go-redis/v9"
)

const snapshotKey = "stock:snapshot"

// StockCache holds the derived-stock snapshot on a short TTL so list pages
// don't recompute against the store on every request. Writers must call
// Invalidate after committing so the next read reflects their own write
// immediately instead of waiting out the TTL.
type StockCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStockCache(rdb *redis.Client, ttl time.Duration) *StockCache {
	return &StockCache{rdb: rdb, ttl: ttl}
}

func (c *StockCache) Get(ctx context.Context) (*stock.Snapshot, bool) {
	b, err := c.rdb.Get(ctx, snapshotKey).Bytes()
	if err != nil {
		return nil, false
	}
	var snap stock.Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return nil, false
	}
	return &snap, true
}

func (c *StockCache) Set(ctx context.Context, snap *stock.Snapshot) {
	b, err := json.Marshal(snap)
	if err != nil {
		return
	}
	// 缓存失败不阻塞请求
	_ = c.rdb.Set(ctx, snapshotKey, b, c.ttl).Err()
}

func (c *StockCache) Invalidate(ctx context.Context) {
	_ = c.rdb.Del(ctx, snapshotKey).Err()
}
