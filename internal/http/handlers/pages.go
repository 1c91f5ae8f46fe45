package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/geocoder89/mocktail/internal/domain/settings"
	"github.com/geocoder89/mocktail/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

// LoginPage serves the data the login screen renders from.
func LoginPage(providers func() []string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"providers":   providers(),
			"callbackUrl": safeCallback(ctx.Query("callbackUrl")),
			"error":       ctx.Query("error"),
		})
	}
}

// Dashboard pages sit behind the route guard, so a session is always present.
func DashboardPage(ctx *gin.Context) {
	s, _ := middlewares.SessionFromContext(ctx)

	ctx.JSON(http.StatusOK, gin.H{"user": s})
}

type EntityReader[T any] interface {
	List(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id string) (T, error)
}

// EntityPages lists and shows one kind of catalog entity on the dashboard.
type EntityPages[T any] struct {
	name     string
	reader   EntityReader[T]
	notFound error
	log      *slog.Logger
}

func NewEntityPages[T any](name string, reader EntityReader[T], notFound error, log *slog.Logger) *EntityPages[T] {
	if log == nil {
		log = slog.Default()
	}

	return &EntityPages[T]{name: name, reader: reader, notFound: notFound, log: log}
}

func (p *EntityPages[T]) List(ctx *gin.Context) {
	items, err := p.reader.List(ctx.Request.Context())
	if err != nil {
		p.log.ErrorContext(ctx.Request.Context(), "page.list_failed", "entity", p.name, "err", err)
		RespondInternal(ctx, "Could not load "+p.name)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

func (p *EntityPages[T]) Show(ctx *gin.Context) {
	item, err := p.reader.GetByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, p.notFound) {
			RespondNotFound(ctx, p.notFound.Error())
			return
		}

		p.log.ErrorContext(ctx.Request.Context(), "page.get_failed", "entity", p.name, "err", err)
		RespondInternal(ctx, "Could not load "+p.name)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"item": item})
}

type SettingsLister interface {
	All(ctx context.Context) ([]settings.Setting, error)
}

func SettingsPage(store SettingsLister, log *slog.Logger) gin.HandlerFunc {
	if log == nil {
		log = slog.Default()
	}

	return func(ctx *gin.Context) {
		items, err := store.All(ctx.Request.Context())
		if err != nil {
			log.ErrorContext(ctx.Request.Context(), "page.settings_failed", "err", err)
			RespondInternal(ctx, "Could not load settings")
			return
		}

		ctx.JSON(http.StatusOK, gin.H{"items": items})
	}
}

// UsersPage goes through the users action so only SUPERADMIN sees the list.
func UsersPage(users UserActions) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		RespondResult(ctx, http.StatusOK, users.List(ctx.Request.Context()))
	}
}
