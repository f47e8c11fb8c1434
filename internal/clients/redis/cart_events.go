package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/storefront-backend/internal/platform/logger"
)

const defaultCartChannel = "storefront:cart"

// CartEvent is published after a cart write succeeds.
type CartEvent struct {
	Type      string    `json:"type"`
	UserID    string    `json:"user_id"`
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	At        time.Time `json:"at"`
}

type CartEventBus interface {
	Publish(ctx context.Context, ev CartEvent) error
	StartForwarder(ctx context.Context, onEvent func(ev CartEvent)) error
}

type cartEventBus struct {
	log     *logger.Logger
	rdb     *goredis.Client
	channel string
}

func NewCartEventBus(log *logger.Logger, rdb *goredis.Client, channel string) (CartEventBus, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if rdb == nil {
		return nil, fmt.Errorf("redis client required")
	}
	channel = strings.TrimSpace(channel)
	if channel == "" {
		channel = defaultCartChannel
	}
	return &cartEventBus{
		log:     log.With("service", "RedisCartEventBus"),
		rdb:     rdb,
		channel: channel,
	}, nil
}

func (b *cartEventBus) Publish(ctx context.Context, ev CartEvent) error {
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	raw, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, b.channel, raw).Err()
}

func (b *cartEventBus) StartForwarder(ctx context.Context, onEvent func(ev CartEvent)) error {
	if onEvent == nil {
		return fmt.Errorf("onEvent callback required")
	}

	sub := b.rdb.Subscribe(ctx, b.channel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("redis subscribe: %w", err)
	}

	go func() {
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				_ = sub.Close()
				return
			case m, ok := <-ch:
				if !ok || m == nil {
					_ = sub.Close()
					return
				}
				var ev CartEvent
				if err := json.Unmarshal([]byte(m.Payload), &ev); err != nil {
					b.log.Warn("bad redis cart payload", "error", err)
					continue
				}
				onEvent(ev)
			}
		}
	}()
	return nil
}
