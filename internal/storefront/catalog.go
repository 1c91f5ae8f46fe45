package storefront

import (
	"context"
	"fmt"

	"github.com/geocoder89/mocktail/internal/domain/ingredient"
	"github.com/geocoder89/mocktail/internal/domain/instagram"
	"github.com/geocoder89/mocktail/internal/domain/product"
	"github.com/geocoder89/mocktail/internal/domain/settings"
	"github.com/geocoder89/mocktail/internal/domain/testimonial"
)

// Catalog is the public, read-only view of the site content.
type Catalog interface {
	Products(ctx context.Context) ([]product.Product, error)
	ProductBySlug(ctx context.Context, slug string) (product.Product, error)
	Ingredients(ctx context.Context) ([]ingredient.Ingredient, error)
	Testimonials(ctx context.Context) ([]testimonial.Testimonial, error)
	InstagramPosts(ctx context.Context) ([]instagram.Post, error)
	Settings(ctx context.Context) (map[string]string, error)
}

type ProductReader interface {
	List(ctx context.Context) ([]product.Product, error)
	GetBySlug(ctx context.Context, slug string) (product.Product, error)
}

type IngredientReader interface {
	List(ctx context.Context) ([]ingredient.Ingredient, error)
}

type TestimonialReader interface {
	ListPublished(ctx context.Context) ([]testimonial.Testimonial, error)
}

type InstagramReader interface {
	List(ctx context.Context) ([]instagram.Post, error)
}

type SettingsReader interface {
	All(ctx context.Context) ([]settings.Setting, error)
}

// DBCatalog reads straight from the repositories.
type DBCatalog struct {
	products     ProductReader
	ingredients  IngredientReader
	testimonials TestimonialReader
	instagram    InstagramReader
	settings     SettingsReader
}

func NewDBCatalog(p ProductReader, i IngredientReader, t TestimonialReader, ig InstagramReader, s SettingsReader) *DBCatalog {
	return &DBCatalog{products: p, ingredients: i, testimonials: t, instagram: ig, settings: s}
}

func (c *DBCatalog) Products(ctx context.Context) ([]product.Product, error) {
	return c.products.List(ctx)
}

func (c *DBCatalog) ProductBySlug(ctx context.Context, slug string) (product.Product, error) {
	return c.products.GetBySlug(ctx, slug)
}

func (c *DBCatalog) Ingredients(ctx context.Context) ([]ingredient.Ingredient, error) {
	return c.ingredients.List(ctx)
}

// Testimonials only returns published ones.
func (c *DBCatalog) Testimonials(ctx context.Context) ([]testimonial.Testimonial, error) {
	return c.testimonials.ListPublished(ctx)
}

func (c *DBCatalog) InstagramPosts(ctx context.Context) ([]instagram.Post, error) {
	return c.instagram.List(ctx)
}

func (c *DBCatalog) Settings(ctx context.Context) (map[string]string, error) {
	rows, err := c.settings.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	out := make(map[string]string, len(rows))
	for _, s := range rows {
		out[s.Key] = s.Value
	}

	return out, nil
}
