package storefront

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/geocoder89/mocktail/internal/domain/ingredient"
	"github.com/geocoder89/mocktail/internal/domain/instagram"
	"github.com/geocoder89/mocktail/internal/domain/product"
	"github.com/geocoder89/mocktail/internal/domain/testimonial"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "storefront:"

// CachedCatalog keeps storefront reads in Redis for ttl. Any Redis error
// falls through to the wrapped catalog, so a cache outage only costs latency.
type CachedCatalog struct {
	next Catalog
	rdb  *redis.Client
	ttl  time.Duration
	log  *slog.Logger
}

func NewCachedCatalog(next Catalog, rdb *redis.Client, ttl time.Duration, log *slog.Logger) *CachedCatalog {
	if ttl <= 0 {
		ttl = time.Minute
	}
	if log == nil {
		log = slog.Default()
	}

	return &CachedCatalog{next: next, rdb: rdb, ttl: ttl, log: log}
}

func (c *CachedCatalog) Products(ctx context.Context) ([]product.Product, error) {
	return cached(ctx, c, "products", c.next.Products)
}

func (c *CachedCatalog) ProductBySlug(ctx context.Context, slug string) (product.Product, error) {
	return cached(ctx, c, "product:"+slug, func(ctx context.Context) (product.Product, error) {
		return c.next.ProductBySlug(ctx, slug)
	})
}

func (c *CachedCatalog) Ingredients(ctx context.Context) ([]ingredient.Ingredient, error) {
	return cached(ctx, c, "ingredients", c.next.Ingredients)
}

func (c *CachedCatalog) Testimonials(ctx context.Context) ([]testimonial.Testimonial, error) {
	return cached(ctx, c, "testimonials", c.next.Testimonials)
}

func (c *CachedCatalog) InstagramPosts(ctx context.Context) ([]instagram.Post, error) {
	return cached(ctx, c, "instagram", c.next.InstagramPosts)
}

func (c *CachedCatalog) Settings(ctx context.Context) (map[string]string, error) {
	return cached(ctx, c, "settings", c.next.Settings)
}

// Invalidate drops every cached storefront key. Errors are logged only; the
// entries still expire after ttl.
func (c *CachedCatalog) Invalidate(ctx context.Context) {
	iter := c.rdb.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.log.WarnContext(ctx, "storefront cache scan failed", "err", err)
		return
	}
	if len(keys) == 0 {
		return
	}

	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.log.WarnContext(ctx, "storefront cache invalidate failed", "err", err)
	}
}

func cached[T any](ctx context.Context, c *CachedCatalog, name string, load func(context.Context) (T, error)) (T, error) {
	key := keyPrefix + name

	raw, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var v T
		if jerr := json.Unmarshal(raw, &v); jerr == nil {
			return v, nil
		}
		c.log.WarnContext(ctx, "storefront cache entry unreadable", "key", key)
	case !errors.Is(err, redis.Nil):
		c.log.WarnContext(ctx, "storefront cache read failed", "key", key, "err", err)
	}

	v, err := load(ctx)
	if err != nil {
		return v, err
	}

	if b, jerr := json.Marshal(v); jerr == nil {
		if serr := c.rdb.Set(ctx, key, b, c.ttl).Err(); serr != nil {
			c.log.WarnContext(ctx, "storefront cache write failed", "key", key, "err", serr)
		}
	}

	return v, nil
}
