package handlers

import (
	"context"
	"net/http"

	"github.com/geocoder89/mocktail/internal/actions"
	"github.com/geocoder89/mocktail/internal/domain/ingredient"
	"github.com/geocoder89/mocktail/internal/domain/instagram"
	"github.com/geocoder89/mocktail/internal/domain/product"
	"github.com/geocoder89/mocktail/internal/domain/role"
	"github.com/geocoder89/mocktail/internal/domain/settings"
	"github.com/geocoder89/mocktail/internal/domain/testimonial"
	"github.com/geocoder89/mocktail/internal/domain/user"
	"github.com/gin-gonic/gin"
)

// ContentActions is the mutation surface shared by every catalog entity.
type ContentActions[In, Out any] interface {
	Create(ctx context.Context, in In) actions.Result[Out]
	Update(ctx context.Context, id string, in In) actions.Result[Out]
	Delete(ctx context.Context, id string) actions.Result[bool]
}

// ContentHandler exposes one entity's actions over JSON.
type ContentHandler[In, Out any] struct {
	actions ContentActions[In, Out]
}

func NewContentHandler[In, Out any](a ContentActions[In, Out]) *ContentHandler[In, Out] {
	return &ContentHandler[In, Out]{actions: a}
}

func (h *ContentHandler[In, Out]) Create(ctx *gin.Context) {
	var in In
	if !bindForAction(ctx, &in, role.CanEdit) {
		return
	}

	RespondResult(ctx, http.StatusCreated, h.actions.Create(ctx.Request.Context(), in))
}

func (h *ContentHandler[In, Out]) Update(ctx *gin.Context) {
	var in In
	if !bindForAction(ctx, &in, role.CanEdit) {
		return
	}

	RespondResult(ctx, http.StatusOK, h.actions.Update(ctx.Request.Context(), ctx.Param("id"), in))
}

func (h *ContentHandler[In, Out]) Delete(ctx *gin.Context) {
	RespondResult(ctx, http.StatusOK, h.actions.Delete(ctx.Request.Context(), ctx.Param("id")))
}

type (
	ProductsHandler     = ContentHandler[product.Input, product.Product]
	IngredientsHandler  = ContentHandler[ingredient.Input, ingredient.Ingredient]
	TestimonialsHandler = ContentHandler[testimonial.Input, testimonial.Testimonial]
	InstagramHandler    = ContentHandler[instagram.Input, instagram.Post]
)

type SettingsUpdater interface {
	Update(ctx context.Context, in settings.Input) actions.Result[settings.Setting]
}

type SettingsHandler struct {
	actions SettingsUpdater
}

func NewSettingsHandler(a SettingsUpdater) *SettingsHandler {
	return &SettingsHandler{actions: a}
}

type settingValue struct {
	Value string `json:"value"`
}

// Put writes one setting; the key comes from the path.
func (h *SettingsHandler) Put(ctx *gin.Context) {
	var body settingValue
	if !bindForAction(ctx, &body, role.CanDelete) {
		return
	}

	in := settings.Input{Key: ctx.Param("key"), Value: body.Value}

	RespondResult(ctx, http.StatusOK, h.actions.Update(ctx.Request.Context(), in))
}

type UserActions interface {
	List(ctx context.Context) actions.Result[[]user.User]
	Create(ctx context.Context, req user.CreateUserRequest) actions.Result[user.User]
	Update(ctx context.Context, id string, req user.UpdateUserRequest) actions.Result[user.User]
	Delete(ctx context.Context, id string) actions.Result[bool]
}

type UsersHandler struct {
	actions UserActions
}

func NewUsersHandler(a UserActions) *UsersHandler {
	return &UsersHandler{actions: a}
}

func (h *UsersHandler) List(ctx *gin.Context) {
	RespondResult(ctx, http.StatusOK, h.actions.List(ctx.Request.Context()))
}

func (h *UsersHandler) Create(ctx *gin.Context) {
	var req user.CreateUserRequest
	if !bindForAction(ctx, &req, role.CanManageUsers) {
		return
	}

	RespondResult(ctx, http.StatusCreated, h.actions.Create(ctx.Request.Context(), req))
}

func (h *UsersHandler) Update(ctx *gin.Context) {
	var req user.UpdateUserRequest
	if !bindForAction(ctx, &req, role.CanManageUsers) {
		return
	}

	RespondResult(ctx, http.StatusOK, h.actions.Update(ctx.Request.Context(), ctx.Param("id"), req))
}

func (h *UsersHandler) Delete(ctx *gin.Context) {
	RespondResult(ctx, http.StatusOK, h.actions.Delete(ctx.Request.Context(), ctx.Param("id")))
}
