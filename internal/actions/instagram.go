package actions

import (
	"context"
	"errors"

	"github.com/geocoder89/mocktail/internal/domain/instagram"
	"github.com/geocoder89/mocktail/internal/domain/role"
)

const (
	msgPostNotFound = "Instagram post not found"
	msgPostTaken    = "This Instagram post is already listed"
)

type InstagramStore interface {
	GetByID(ctx context.Context, id string) (instagram.Post, error)
	Create(ctx context.Context, p instagram.Post) (instagram.Post, error)
	Update(ctx context.Context, p instagram.Post) (instagram.Post, error)
	Delete(ctx context.Context, id string) (instagram.Post, error)
}

type InstagramPosts struct {
	store InstagramStore
	deps  Deps
}

func NewInstagramPosts(store InstagramStore, deps Deps) *InstagramPosts {
	return &InstagramPosts{store: store, deps: deps}
}

func (a *InstagramPosts) Create(ctx context.Context, in instagram.Input) Result[instagram.Post] {
	const action = "instagram.create"

	if _, ok := authorize(ctx, role.CanEdit); !ok {
		return finish(a.deps, action, Unauthorized[instagram.Post]())
	}
	if msg := Validate(in); msg != "" {
		return finish(a.deps, action, Invalid[instagram.Post](msg))
	}

	normalized, err := instagram.NormalizeURL(in.URL)
	if err != nil {
		return finish(a.deps, action, Invalid[instagram.Post](instagram.ErrInvalidURL.Error()))
	}

	created, err := a.store.Create(ctx, instagram.NewFromInput(in, normalized))
	if err != nil {
		if errors.Is(err, instagram.ErrDuplicate) {
			return finish(a.deps, action, Conflict[instagram.Post](msgPostTaken))
		}
		return finish(a.deps, action, storeFailure[instagram.Post](ctx, a.deps, action, err))
	}

	a.deps.invalidate(ctx)

	return finish(a.deps, action, OK(created))
}

func (a *InstagramPosts) Update(ctx context.Context, id string, in instagram.Input) Result[instagram.Post] {
	const action = "instagram.update"

	if _, ok := authorize(ctx, role.CanEdit); !ok {
		return finish(a.deps, action, Unauthorized[instagram.Post]())
	}
	if msg := Validate(in); msg != "" {
		return finish(a.deps, action, Invalid[instagram.Post](msg))
	}

	normalized, err := instagram.NormalizeURL(in.URL)
	if err != nil {
		return finish(a.deps, action, Invalid[instagram.Post](instagram.ErrInvalidURL.Error()))
	}

	existing, err := a.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, instagram.ErrNotFound) {
			return finish(a.deps, action, NotFound[instagram.Post](msgPostNotFound))
		}
		return finish(a.deps, action, storeFailure[instagram.Post](ctx, a.deps, action, err))
	}

	next := existing
	next.URL = normalized
	next.Caption = in.Caption
	next.SortOrder = in.SortOrder

	updated, err := a.store.Update(ctx, next)
	if err != nil {
		switch {
		case errors.Is(err, instagram.ErrNotFound):
			return finish(a.deps, action, NotFound[instagram.Post](msgPostNotFound))
		case errors.Is(err, instagram.ErrDuplicate):
			return finish(a.deps, action, Conflict[instagram.Post](msgPostTaken))
		}
		return finish(a.deps, action, storeFailure[instagram.Post](ctx, a.deps, action, err))
	}

	a.deps.invalidate(ctx)

	return finish(a.deps, action, OK(updated))
}

func (a *InstagramPosts) Delete(ctx context.Context, id string) Result[bool] {
	const action = "instagram.delete"

	if _, ok := authorize(ctx, role.CanDelete); !ok {
		return finish(a.deps, action, Unauthorized[bool]())
	}

	if _, err := a.store.Delete(ctx, id); err != nil {
		if errors.Is(err, instagram.ErrNotFound) {
			return finish(a.deps, action, NotFound[bool](msgPostNotFound))
		}
		return finish(a.deps, action, storeFailure[bool](ctx, a.deps, action, err))
	}

	a.deps.invalidate(ctx)

	return finish(a.deps, action, OK(true))
}
