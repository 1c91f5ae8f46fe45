package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/geocoder89/mocktail/internal/domain/ingredient"
	"github.com/geocoder89/mocktail/internal/domain/instagram"
	"github.com/geocoder89/mocktail/internal/domain/product"
	"github.com/geocoder89/mocktail/internal/domain/testimonial"
	"github.com/geocoder89/mocktail/internal/featureflags"
	"github.com/geocoder89/mocktail/internal/http/handlers"
	"github.com/gin-gonic/gin"
)

type fakeCatalog struct {
	products []product.Product
	posts    []instagram.Post
	err      error
}

func (f *fakeCatalog) Products(context.Context) ([]product.Product, error) {
	return f.products, f.err
}

func (f *fakeCatalog) ProductBySlug(_ context.Context, slug string) (product.Product, error) {
	if f.err != nil {
		return product.Product{}, f.err
	}
	for _, p := range f.products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return product.Product{}, product.ErrNotFound
}

func (f *fakeCatalog) Ingredients(context.Context) ([]ingredient.Ingredient, error) {
	return nil, f.err
}

func (f *fakeCatalog) Testimonials(context.Context) ([]testimonial.Testimonial, error) {
	return nil, f.err
}

func (f *fakeCatalog) InstagramPosts(context.Context) ([]instagram.Post, error) {
	return f.posts, f.err
}

func (f *fakeCatalog) Settings(context.Context) (map[string]string, error) {
	return map[string]string{"hero_title": "Shaken, not stirred"}, f.err
}

type fakeFlags featureflags.Flags

func (f fakeFlags) Flags() (featureflags.Flags, error) { return featureflags.Flags(f), nil }
func (f fakeFlags) Enabled(name string) bool           { return f[name] }

func storefrontRouter(c *fakeCatalog, flags handlers.FeatureFlags) *gin.Engine {
	h := handlers.NewStorefrontHandler(c, flags, nil)

	r := gin.New()
	r.GET("/api/storefront/products", h.Products)
	r.GET("/api/storefront/products/:slug", h.ProductBySlug)
	r.GET("/api/storefront/instagram", h.Instagram)
	r.GET("/api/storefront/settings", h.Settings)
	r.GET("/api/features", h.Features)
	return r
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestStorefront_ProductBySlug(t *testing.T) {
	r := storefrontRouter(&fakeCatalog{products: []product.Product{{ID: "p1", Slug: "virgin-mojito"}}}, nil)

	if w := get(r, "/api/storefront/products/virgin-mojito"); w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if w := get(r, "/api/storefront/products/nope"); w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestStorefront_CatalogErrorIs500(t *testing.T) {
	r := storefrontRouter(&fakeCatalog{err: errors.New("db down")}, nil)

	w := get(r, "/api/storefront/products")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "db down") {
		t.Fatal("storage detail leaked to the client")
	}
}

func TestStorefront_InstagramHonoursFlag(t *testing.T) {
	c := &fakeCatalog{posts: []instagram.Post{{ID: "ig1", URL: "https://www.instagram.com/p/abc/"}}}

	off := storefrontRouter(c, fakeFlags{handlers.FlagInstagramFeed: false})
	if w := get(off, "/api/storefront/instagram"); !strings.Contains(w.Body.String(), `"items":[]`) {
		t.Fatalf("expected empty feed, body=%s", w.Body.String())
	}

	on := storefrontRouter(c, fakeFlags{handlers.FlagInstagramFeed: true})
	if w := get(on, "/api/storefront/instagram"); !strings.Contains(w.Body.String(), "ig1") {
		t.Fatalf("expected the post, body=%s", w.Body.String())
	}
}

func TestStorefront_Features(t *testing.T) {
	r := storefrontRouter(&fakeCatalog{}, fakeFlags{"storefront_cart": true})

	w := get(r, "/api/features")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"storefront_cart":true`) {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
}
