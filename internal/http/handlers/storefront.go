package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/geocoder89/mocktail/internal/domain/product"
	"github.com/geocoder89/mocktail/internal/featureflags"
	"github.com/geocoder89/mocktail/internal/storefront"
	"github.com/gin-gonic/gin"
)

const FlagInstagramFeed = "instagram_feed"

type FeatureFlags interface {
	Flags() (featureflags.Flags, error)
	Enabled(name string) bool
}

// StorefrontHandler is the public, unauthenticated read side of the site.
type StorefrontHandler struct {
	catalog storefront.Catalog
	flags   FeatureFlags
	log     *slog.Logger
}

func NewStorefrontHandler(catalog storefront.Catalog, flags FeatureFlags, log *slog.Logger) *StorefrontHandler {
	if log == nil {
		log = slog.Default()
	}

	return &StorefrontHandler{catalog: catalog, flags: flags, log: log}
}

func (h *StorefrontHandler) Products(ctx *gin.Context) {
	items, err := h.catalog.Products(ctx.Request.Context())
	h.respondList(ctx, "products", items, err)
}

func (h *StorefrontHandler) ProductBySlug(ctx *gin.Context) {
	p, err := h.catalog.ProductBySlug(ctx.Request.Context(), ctx.Param("slug"))
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			RespondNotFound(ctx, "Product not found")
			return
		}

		h.log.ErrorContext(ctx.Request.Context(), "storefront.product_failed", "slug", ctx.Param("slug"), "err", err)
		RespondInternal(ctx, "Could not load product")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"item": p})
}

func (h *StorefrontHandler) Ingredients(ctx *gin.Context) {
	items, err := h.catalog.Ingredients(ctx.Request.Context())
	h.respondList(ctx, "ingredients", items, err)
}

func (h *StorefrontHandler) Testimonials(ctx *gin.Context) {
	items, err := h.catalog.Testimonials(ctx.Request.Context())
	h.respondList(ctx, "testimonials", items, err)
}

func (h *StorefrontHandler) Instagram(ctx *gin.Context) {
	if h.flags != nil && !h.flags.Enabled(FlagInstagramFeed) {
		ctx.JSON(http.StatusOK, gin.H{"items": []any{}})
		return
	}

	items, err := h.catalog.InstagramPosts(ctx.Request.Context())
	h.respondList(ctx, "instagram", items, err)
}

func (h *StorefrontHandler) Settings(ctx *gin.Context) {
	values, err := h.catalog.Settings(ctx.Request.Context())
	if err != nil {
		h.log.ErrorContext(ctx.Request.Context(), "storefront.settings_failed", "err", err)
		RespondInternal(ctx, "Could not load settings")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"settings": values})
}

func (h *StorefrontHandler) Features(ctx *gin.Context) {
	if h.flags == nil {
		ctx.JSON(http.StatusOK, gin.H{"flags": featureflags.Defaults()})
		return
	}

	flags, err := h.flags.Flags()
	if err != nil {
		h.log.ErrorContext(ctx.Request.Context(), "storefront.flags_failed", "err", err)
		RespondInternal(ctx, "Could not load feature flags")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"flags": flags})
}

func (h *StorefrontHandler) respondList(ctx *gin.Context, name string, items any, err error) {
	if err != nil {
		h.log.ErrorContext(ctx.Request.Context(), "storefront.list_failed", "entity", name, "err", err)
		RespondInternal(ctx, "Could not load "+name)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"items": items})
}
