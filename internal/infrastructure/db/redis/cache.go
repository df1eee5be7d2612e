package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/oakmart/storefront-api/internal/core/domain"
)

const (
	productListKey = "products:list"
	productListTTL = time.Minute
)

// ProductCache is a read-through cache for the public catalog listing.
// A cache failure is never fatal: lookups fall back to the store and the
// error is logged at debug level.
type ProductCache struct {
	client *redis.Client
	log    zerolog.Logger
}

// NewProductCache creates a ProductCache wrapping the given Redis client.
func NewProductCache(client *redis.Client, log zerolog.Logger) *ProductCache {
	return &ProductCache{client: client, log: log}
}

// GetList returns the cached catalog listing, if present.
func (c *ProductCache) GetList(ctx context.Context) ([]domain.Product, bool) {
	raw, err := c.client.Get(ctx, productListKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Debug().Err(err).Msg("product cache read failed")
		}
		return nil, false
	}

	var products []domain.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		c.log.Debug().Err(err).Msg("product cache entry corrupt, dropping")
		c.client.Del(ctx, productListKey)
		return nil, false
	}
	return products, true
}

// SetList stores the catalog listing with a short TTL.
func (c *ProductCache) SetList(ctx context.Context, products []domain.Product) {
	raw, err := json.Marshal(products)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, productListKey, raw, productListTTL).Err(); err != nil {
		c.log.Debug().Err(err).Msg("product cache write failed")
	}
}

// Invalidate drops the cached listing after a catalog mutation.
func (c *ProductCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, productListKey).Err(); err != nil {
		c.log.Debug().Err(err).Msg("product cache invalidation failed")
	}
}
