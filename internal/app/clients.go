package app

import (
	"context"
	"fmt"
	"strings"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/storefront-backend/internal/clients/redis"
	"github.com/yungbote/storefront-backend/internal/platform/logger"
)

type Clients struct {
	Redis        *goredis.Client
	ProductCache redis.ProductCache
	CartEvents   redis.CartEventBus
}

// wireClients connects to redis when REDIS_ADDR is set. Without it the
// product cache and cart events are disabled.
func wireClients(ctx context.Context, log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")
	if strings.TrimSpace(cfg.RedisAddr) == "" {
		log.Info("REDIS_ADDR not set; product cache and cart events disabled")
		return Clients{}, nil
	}

	rdb, err := redis.NewClient(ctx, cfg.RedisAddr)
	if err != nil {
		return Clients{}, fmt.Errorf("init redis: %w", err)
	}
	cache, err := redis.NewProductCache(log, rdb, cfg.ProductCacheTTL)
	if err != nil {
		_ = rdb.Close()
		return Clients{}, fmt.Errorf("init product cache: %w", err)
	}
	bus, err := redis.NewCartEventBus(log, rdb, "")
	if err != nil {
		_ = rdb.Close()
		return Clients{}, fmt.Errorf("init cart event bus: %w", err)
	}
	return Clients{Redis: rdb, ProductCache: cache, CartEvents: bus}, nil
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
}
