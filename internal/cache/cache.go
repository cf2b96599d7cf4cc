package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
)

func NewClient(cfg *config.Config) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   0,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("failed to connect redis: %v", err)
	}

	return rdb
}

// WaitCache keeps wait estimates warm between reads. Estimates tolerate
// staleness, so a short TTL is enough; nothing else is cached.
type WaitCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewWaitCache(rdb *redis.Client) *WaitCache {
	return &WaitCache{
		rdb: rdb,
		ttl: 30 * time.Second,
	}
}

func waitKey(barberID uint) string {
	return fmt.Sprintf("wait:barber:%d", barberID)
}

func (c *WaitCache) Get(ctx context.Context, barberID uint) (*domain.WaitEstimate, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, waitKey(barberID)).Bytes()
	if err != nil {
		return nil, false
	}

	var est domain.WaitEstimate
	if err := json.Unmarshal(raw, &est); err != nil {
		return nil, false
	}
	return &est, true
}

func (c *WaitCache) Set(ctx context.Context, barberID uint, est *domain.WaitEstimate) {
	if c == nil || c.rdb == nil || est == nil {
		return
	}

	raw, err := json.Marshal(est)
	if err != nil {
		return
	}

	if err := c.rdb.Set(ctx, waitKey(barberID), raw, c.ttl).Err(); err != nil {
		log.Println("wait cache set error:", err)
	}
}

// Invalidate drops the barber's cached estimate after a queue mutation.
func (c *WaitCache) Invalidate(ctx context.Context, barberID uint) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, waitKey(barberID)).Err(); err != nil {
		log.Println("wait cache del error:", err)
	}
}
