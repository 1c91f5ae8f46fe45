package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/geocoder89/mocktail/internal/actions"
	"github.com/geocoder89/mocktail/internal/auth"
	"github.com/geocoder89/mocktail/internal/config"
	"github.com/geocoder89/mocktail/internal/db"
	"github.com/geocoder89/mocktail/internal/featureflags"
	httpx "github.com/geocoder89/mocktail/internal/http"
	"github.com/geocoder89/mocktail/internal/http/handlers"
	"github.com/geocoder89/mocktail/internal/observability"
	"github.com/geocoder89/mocktail/internal/redisclient"
	"github.com/geocoder89/mocktail/internal/repo/postgres"
	"github.com/geocoder89/mocktail/internal/storefront"
	"github.com/geocoder89/mocktail/internal/uploads"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const serviceName = "mocktail"

func main() {
	// Load the config set up
	cfg := config.Load()

	// start up the observability logger
	log := observability.NewLogger(cfg.Env)
	slog.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid config", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := observability.InitTracer(ctx, serviceName, cfg.OTLPEndpoint)
	if err != nil {
		log.Warn("tracing disabled", "err", err)
		shutdownTracer = func(context.Context) error { return nil }
	}

	pool, err := db.NewPool(ctx, cfg.DBURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := db.ApplyMigrations(ctx, cfg.DBURL); err != nil {
		log.Error("migrations failed", "err", err)
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	prom := observability.NewProm(reg)

	// wire up repositories
	usersRepo := postgres.NewUsersRepo(pool, prom)
	accountsRepo := postgres.NewAccountsRepo(pool, prom)
	productsRepo := postgres.NewProductsRepo(pool, prom)
	ingredientsRepo := postgres.NewIngredientsRepo(pool, prom)
	testimonialsRepo := postgres.NewTestimonialsRepo(pool, prom)
	instagramRepo := postgres.NewInstagramRepo(pool, prom)
	settingsRepo := postgres.NewSettingsRepo(pool, prom)

	if err := settingsRepo.EnsureTable(ctx); err != nil {
		log.Error("settings bootstrap failed", "err", err)
		os.Exit(1)
	}

	if err := db.EnsureSuperAdmin(ctx, usersRepo, cfg, log); err != nil {
		log.Error("superadmin seed failed", "err", err)
		os.Exit(1)
	}

	var catalog storefront.Catalog = storefront.NewDBCatalog(productsRepo, ingredientsRepo, testimonialsRepo, instagramRepo, settingsRepo)
	deps := actions.Deps{Log: log, Uploads: uploads.NopDeleter{}, Metrics: prom}

	if cfg.RedisAddr != "" {
		rdb := redisclient.New(redisclient.Config{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		defer rdb.Close()

		if err := rdb.Ping(ctx); err != nil {
			log.Warn("redis unreachable, storefront cache will fall through", "err", err)
		}

		cached := storefront.NewCachedCatalog(catalog, rdb.Raw(), cfg.StorefrontCacheTTL, log)
		catalog = cached
		deps.Catalog = cached
	}

	if cfg.UploadsEnabled() {
		s3, err := uploads.NewS3Deleter(ctx, uploads.S3Config{
			Bucket:    cfg.UploadBucket,
			Endpoint:  cfg.UploadEndpoint,
			Region:    cfg.UploadRegion,
			AccessKey: cfg.UploadAccessKey,
			SecretKey: cfg.UploadSecretKey,
			PathStyle: cfg.UploadPathStyle,
		})
		if err != nil {
			log.Error("upload storage init failed", "err", err)
			os.Exit(1)
		}

		deps.Uploads = uploads.NewProtectedDeleter(s3, uploads.ProtectedConfig{
			Timeout:          5 * time.Second,
			FailureThreshold: 5,
			Cooldown:         30 * time.Second,
			HalfOpenMaxCalls: 1,
		})
	}

	tokens := auth.NewManager(cfg.AuthSecret, cfg.SessionTTL)
	issuer := auth.NewIssuer(usersRepo, accountsRepo, log, prom)

	var google handlers.OAuthProvider
	if cfg.GoogleEnabled() {
		google = auth.NewGoogleProvider(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL)
	}

	var draining atomic.Bool

	router := httpx.NewRouter(httpx.Deps{
		Log:            log,
		Env:            cfg.Env,
		ServiceName:    serviceName,
		AllowedOrigins: cfg.AllowedOrigins,
		Ping:     pool.Ping,
		Draining: draining.Load,
		Prom:     prom,
		Gatherer: reg,

		Sessions: tokens,
		Auth:     handlers.NewAuthHandler(issuer, tokens, google, cfg.SecureCookies(), log),

		Products:     actions.NewProducts(productsRepo, deps),
		Ingredients:  actions.NewIngredients(ingredientsRepo, deps),
		Testimonials: actions.NewTestimonials(testimonialsRepo, deps),
		Instagram:    actions.NewInstagramPosts(instagramRepo, deps),
		Settings:     actions.NewSettings(settingsRepo, deps),
		Users:        actions.NewUsers(usersRepo, deps),

		Readers: httpx.Readers{
			Products:     productsRepo,
			Ingredients:  ingredientsRepo,
			Testimonials: testimonialsRepo,
			Instagram:    instagramRepo,
			Settings:     settingsRepo,
		},
		Catalog: catalog,
		Flags:   featureflags.New(cfg.FeaturesFile, nil),

		LoginLimit: 10,
		AdminLimit: 120,
	})

	// server set up
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.Port, "env", cfg.Env, "google", cfg.GoogleEnabled())
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	<-ctx.Done()
	log.Info("server shutting down")
	draining.Store(true)

	shutdownCtx, cancel := config.WithTimeout(10 * time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "err", err)
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		log.Warn("tracer shutdown failed", "err", err)
	}

	log.Info("shutdown complete")
}
