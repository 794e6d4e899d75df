// Package cache holds the redis-backed read cache for current-price lookups.
// When no redis address is configured the cache degrades to a no-op and every
// lookup goes to the store.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	redis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/capstore/capstore/internal/config"
	pricedomain "github.com/capstore/capstore/internal/price/domain"
)

const (
	keyCurrentPrice   = "price:current:%d"
	defaultCurrentTTL = 5 * time.Minute
	cacheGetTimeout   = 200 * time.Millisecond
	cacheWriteTimeout = 500 * time.Millisecond
)

type PriceCache struct {
	client *redis.Client
	log    *zap.Logger
	ttl    time.Duration
}

// NewPriceCache builds the current-price cache. A nil client (redis not
// configured) is valid; every method becomes a pass-through.
func NewPriceCache(cfg config.Config, log *zap.Logger) pricedomain.Cache {
	addr := strings.TrimSpace(cfg.RedisAddr)
	if addr == "" {
		return &PriceCache{log: log.Named("price.cache")}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: strings.TrimSpace(cfg.RedisPassword),
		DB:       cfg.RedisDB,
	})
	return &PriceCache{
		client: client,
		log:    log.Named("price.cache"),
		ttl:    defaultCurrentTTL,
	}
}

func (c *PriceCache) GetCurrent(ctx context.Context, productID int64) (*pricedomain.Response, bool) {
	if c.client == nil {
		return nil, false
	}

	ctx, cancel := context.WithTimeout(ctx, cacheGetTimeout)
	defer cancel()

	raw, err := c.client.Get(ctx, currentKey(productID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("cache get failed", zap.Error(err))
		}
		return nil, false
	}

	var resp pricedomain.Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		c.log.Warn("cache entry corrupt", zap.Error(err))
		return nil, false
	}
	return &resp, true
}

func (c *PriceCache) SetCurrent(ctx context.Context, productID int64, resp *pricedomain.Response) {
	if c.client == nil || resp == nil {
		return
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, cacheWriteTimeout)
	defer cancel()

	if err := c.client.Set(ctx, currentKey(productID), raw, c.ttl).Err(); err != nil {
		c.log.Warn("cache set failed", zap.Error(err))
	}
}

func (c *PriceCache) Invalidate(ctx context.Context, productID int64) {
	if c.client == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, cacheWriteTimeout)
	defer cancel()

	if err := c.client.Del(ctx, currentKey(productID)).Err(); err != nil {
		c.log.Warn("cache invalidate failed", zap.Error(err))
	}
}

func currentKey(productID int64) string {
	return fmt.Sprintf(keyCurrentPrice, productID)
}
