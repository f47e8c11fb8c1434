package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/storefront-backend/internal/domain/catalog"
	"github.com/yungbote/storefront-backend/internal/platform/logger"
)

const defaultProductKeyPrefix = "storefront:product:"

// ProductCache stores product records by id. A miss is (nil, nil).
type ProductCache interface {
	Get(ctx context.Context, id string) (*catalog.Product, error)
	Set(ctx context.Context, p *catalog.Product) error
	Invalidate(ctx context.Context, ids ...string) error
}

type productCache struct {
	log    *logger.Logger
	rdb    goredis.Cmdable
	ttl    time.Duration
	prefix string
}

func NewProductCache(log *logger.Logger, rdb goredis.Cmdable, ttl time.Duration) (ProductCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if rdb == nil {
		return nil, fmt.Errorf("redis client required")
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &productCache{
		log:    log.With("service", "RedisProductCache"),
		rdb:    rdb,
		ttl:    ttl,
		prefix: defaultProductKeyPrefix,
	}, nil
}

func (c *productCache) key(id string) string {
	return c.prefix + strings.TrimSpace(id)
}

func (c *productCache) Get(ctx context.Context, id string) (*catalog.Product, error) {
	raw, err := c.rdb.Get(ctx, c.key(id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var p catalog.Product
	if err := json.Unmarshal(raw, &p); err != nil {
		// Treat undecodable entries as misses and drop them.
		c.log.Warn("bad cached product payload", "product_id", id, "error", err)
		_ = c.rdb.Del(ctx, c.key(id)).Err()
		return nil, nil
	}
	return &p, nil
}

func (c *productCache) Set(ctx context.Context, p *catalog.Product) error {
	if p == nil || strings.TrimSpace(p.ID) == "" {
		return nil
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.key(p.ID), raw, c.ttl).Err()
}

func (c *productCache) Invalidate(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, c.key(id))
	}
	return c.rdb.Del(ctx, keys...).Err()
}
