package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/geocoder89/mocktail/internal/domain/ingredient"
	"github.com/geocoder89/mocktail/internal/domain/instagram"
	"github.com/geocoder89/mocktail/internal/domain/product"
	"github.com/geocoder89/mocktail/internal/domain/testimonial"
	"github.com/geocoder89/mocktail/internal/http/handlers"
	"github.com/geocoder89/mocktail/internal/http/middlewares"
	"github.com/geocoder89/mocktail/internal/observability"
	"github.com/geocoder89/mocktail/internal/storefront"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const maxBodyBytes = 1 << 20

// Readers back the dashboard pages.
type Readers struct {
	Products     handlers.EntityReader[product.Product]
	Ingredients  handlers.EntityReader[ingredient.Ingredient]
	Testimonials handlers.EntityReader[testimonial.Testimonial]
	Instagram    handlers.EntityReader[instagram.Post]
	Settings     handlers.SettingsLister
}

type Deps struct {
	Log            *slog.Logger
	Env            string
	ServiceName    string
	AllowedOrigins []string

	Ping     func(ctx context.Context) error
	Draining func() bool
	Prom     *observability.Prom
	Gatherer prometheus.Gatherer

	Sessions middlewares.SessionVerifier
	Auth     *handlers.AuthHandler

	Products     handlers.ContentActions[product.Input, product.Product]
	Ingredients  handlers.ContentActions[ingredient.Input, ingredient.Ingredient]
	Testimonials handlers.ContentActions[testimonial.Input, testimonial.Testimonial]
	Instagram    handlers.ContentActions[instagram.Input, instagram.Post]
	Settings     handlers.SettingsUpdater
	Users        handlers.UserActions

	Readers Readers
	Catalog storefront.Catalog
	Flags   handlers.FeatureFlags

	// LoginLimit caps sign-in attempts per client IP per minute; 0 disables it.
	LoginLimit int
	// AdminLimit caps admin API calls per user (or IP) per minute; 0 disables it.
	AdminLimit int
}

func NewRouter(d Deps) *gin.Engine {
	if d.Env != "dev" && d.Env != "test" {
		gin.SetMode(gin.ReleaseMode)
	}
	if d.Log == nil {
		d.Log = slog.Default()
	}
	if d.ServiceName == "" {
		d.ServiceName = "mocktail"
	}

	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(otelgin.Middleware(d.ServiceName))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(d.AllowedOrigins))
	if d.Prom != nil {
		r.Use(d.Prom.GinHandleMiddleware())
	}
	r.Use(middlewares.SessionLoader(d.Sessions))
	r.Use(middlewares.RequestLogger())
	r.Use(middlewares.RouteGuard(middlewares.GuardConfig{}))

	// health
	h := handlers.NewHealthHandler(d.Ping, d.Draining)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	if d.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	// pages
	r.GET("/login", handlers.LoginPage(d.Auth.Providers))

	dash := r.Group("/dashboard")
	{
		dash.GET("", handlers.DashboardPage)
		pages(dash, "products", handlers.NewEntityPages("products", d.Readers.Products, product.ErrNotFound, d.Log))
		pages(dash, "ingredients", handlers.NewEntityPages("ingredients", d.Readers.Ingredients, ingredient.ErrNotFound, d.Log))
		pages(dash, "testimonials", handlers.NewEntityPages("testimonials", d.Readers.Testimonials, testimonial.ErrNotFound, d.Log))
		pages(dash, "instagram", handlers.NewEntityPages("instagram posts", d.Readers.Instagram, instagram.ErrNotFound, d.Log))
		dash.GET("/settings", handlers.SettingsPage(d.Readers.Settings, d.Log))
		dash.GET("/users", handlers.UsersPage(d.Users))
	}

	api := r.Group("/api")
	api.Use(middlewares.MaxBodyBytes(maxBodyBytes))

	// auth
	authAPI := api.Group("/auth")
	{
		login := []gin.HandlerFunc{middlewares.RequireJSON()}
		if d.LoginLimit > 0 {
			limiter := middlewares.NewRateLimiter(d.LoginLimit, time.Minute)
			login = append(login, limiter.Limit(middlewares.KeyByIP))
		}
		login = append(login, d.Auth.Login)

		authAPI.POST("/login", login...)
		authAPI.POST("/logout", d.Auth.Logout)
		authAPI.GET("/session", middlewares.RequireSession(), d.Auth.Session)
		authAPI.GET("/google", d.Auth.GoogleStart)
		authAPI.GET("/google/callback", d.Auth.GoogleCallback)
	}

	// admin mutations authorize inside the actions, so no session middleware here
	admin := api.Group("/admin")
	if d.AdminLimit > 0 {
		admin.Use(middlewares.NewRateLimiter(d.AdminLimit, time.Minute).Limit(middlewares.KeyByUserOrIP))
	}
	{
		content(admin, "products", handlers.NewContentHandler(d.Products))
		content(admin, "ingredients", handlers.NewContentHandler(d.Ingredients))
		content(admin, "testimonials", handlers.NewContentHandler(d.Testimonials))
		content(admin, "instagram", handlers.NewContentHandler(d.Instagram))

		admin.PUT("/settings/:key", handlers.NewSettingsHandler(d.Settings).Put)

		users := handlers.NewUsersHandler(d.Users)
		admin.GET("/users", users.List)
		admin.POST("/users", users.Create)
		admin.PUT("/users/:id", users.Update)
		admin.DELETE("/users/:id", users.Delete)
	}

	// storefront
	sf := handlers.NewStorefrontHandler(d.Catalog, d.Flags, d.Log)
	shop := api.Group("/storefront")
	{
		shop.GET("/products", sf.Products)
		shop.GET("/products/:slug", sf.ProductBySlug)
		shop.GET("/ingredients", sf.Ingredients)
		shop.GET("/testimonials", sf.Testimonials)
		shop.GET("/instagram", sf.Instagram)
		shop.GET("/settings", sf.Settings)
	}
	api.GET("/features", sf.Features)

	return r
}

func pages[T any](g *gin.RouterGroup, name string, p *handlers.EntityPages[T]) {
	g.GET("/"+name, p.List)
	g.GET("/"+name+"/:id", p.Show)
}

func content[In, Out any](g *gin.RouterGroup, name string, h *handlers.ContentHandler[In, Out]) {
	g.POST("/"+name, h.Create)
	g.PUT("/"+name+"/:id", h.Update)
	g.DELETE("/"+name+"/:id", h.Delete)
}
