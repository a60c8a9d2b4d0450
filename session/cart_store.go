package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"Gin_postgres_redis_equipment_tracker/cart"

	"github.com/redis/go-redis/v9"
)

// CartStore keeps each session's cart in Redis. The key TTL doubles as the
// cart expiry: an abandoned cart simply vanishes when the key lapses, and
// every mutation refreshes the clock.
type CartStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCartStore(rdb *redis.Client, ttl time.Duration) *CartStore {
	return &CartStore{rdb: rdb, ttl: ttl}
}

func cartKey(sid string) string { return fmt.Sprintf("cart:sess:%s", sid) }

// Get loads the session's cart. A missing key is an empty cart.
func (s *CartStore) Get(ctx context.Context, sid string) (cart.Cart, error) {
	b, err := s.rdb.Get(ctx, cartKey(sid)).Bytes()
	if errors.Is(err, redis.Nil) {
		return cart.Cart{}, nil
	}
	if err != nil {
		return nil, err
	}
	var c cart.Cart
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	if c == nil {
		c = cart.Cart{}
	}
	return c, nil
}

func (s *CartStore) Save(ctx context.Context, sid string, c cart.Cart) error {
	b, _ := json.Marshal(c)
	return s.rdb.Set(ctx, cartKey(sid), b, s.ttl).Err()
}

func (s *CartStore) Clear(ctx context.Context, sid string) error {
	return s.rdb.Del(ctx, cartKey(sid)).Err()
}
