package storefront

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/geocoder89/mocktail/internal/domain/ingredient"
	"github.com/geocoder89/mocktail/internal/domain/instagram"
	"github.com/geocoder89/mocktail/internal/domain/product"
	"github.com/geocoder89/mocktail/internal/domain/testimonial"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingCatalog struct {
	productCalls int
	products     []product.Product
}

func (c *countingCatalog) Products(context.Context) ([]product.Product, error) {
	c.productCalls++
	return c.products, nil
}

func (c *countingCatalog) ProductBySlug(_ context.Context, slug string) (product.Product, error) {
	for _, p := range c.products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return product.Product{}, product.ErrNotFound
}

func (c *countingCatalog) Ingredients(context.Context) ([]ingredient.Ingredient, error) {
	return nil, nil
}

func (c *countingCatalog) Testimonials(context.Context) ([]testimonial.Testimonial, error) {
	return nil, nil
}

func (c *countingCatalog) InstagramPosts(context.Context) ([]instagram.Post, error) {
	return nil, nil
}

func (c *countingCatalog) Settings(context.Context) (map[string]string, error) {
	return map[string]string{"hero_title": "Zero proof"}, nil
}

func setup(t *testing.T) (*miniredis.Miniredis, *CachedCatalog, *countingCatalog) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	inner := &countingCatalog{products: []product.Product{
		{ID: "p1", Name: "Virgin Mojito", Slug: "virgin-mojito", Price: decimal.RequireFromString("6.5")},
	}}
	log := slog.New(slog.NewJSONHandler(io.Discard, nil))

	return mr, NewCachedCatalog(inner, rdb, time.Minute, log), inner
}

func TestCachedCatalog_CacheAside(t *testing.T) {
	mr, c, inner := setup(t)
	ctx := context.Background()

	first, err := c.Products(ctx)
	require.NoError(t, err)
	second, err := c.Products(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, inner.productCalls)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].Slug, second[0].Slug)
	assert.True(t, second[0].Price.Equal(decimal.RequireFromString("6.5")))
	assert.True(t, mr.Exists("storefront:products"))
}

func TestCachedCatalog_Invalidate(t *testing.T) {
	mr, c, inner := setup(t)
	ctx := context.Background()

	_, err := c.Products(ctx)
	require.NoError(t, err)
	_, err = c.Settings(ctx)
	require.NoError(t, err)

	c.Invalidate(ctx)

	assert.False(t, mr.Exists("storefront:products"))
	assert.False(t, mr.Exists("storefront:settings"))

	_, err = c.Products(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.productCalls)
}

func TestCachedCatalog_TTL(t *testing.T) {
	mr, c, inner := setup(t)
	ctx := context.Background()

	_, err := c.Products(ctx)
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = c.Products(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.productCalls)
}

func TestCachedCatalog_RedisDownFallsThrough(t *testing.T) {
	mr, c, inner := setup(t)
	mr.Close()

	got, err := c.Products(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, 1, inner.productCalls)
}

func TestCachedCatalog_NotFoundIsNotCached(t *testing.T) {
	mr, c, _ := setup(t)

	_, err := c.ProductBySlug(context.Background(), "nope")
	assert.ErrorIs(t, err, product.ErrNotFound)
	assert.False(t, mr.Exists("storefront:product:nope"))
}
