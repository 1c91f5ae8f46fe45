package actions

import (
	"context"
	"errors"
	"strings"

	"github.com/geocoder89/mocktail/internal/domain/ingredient"
	"github.com/geocoder89/mocktail/internal/domain/role"
)

const (
	msgIngredientNotFound = "Ingredient not found"
	msgIngredientTaken    = "Ingredient with this name already exists"
)

type IngredientStore interface {
	GetByID(ctx context.Context, id string) (ingredient.Ingredient, error)
	Create(ctx context.Context, in ingredient.Ingredient) (ingredient.Ingredient, error)
	Update(ctx context.Context, in ingredient.Ingredient) (ingredient.Ingredient, error)
	Delete(ctx context.Context, id string) (ingredient.Ingredient, error)
}

type Ingredients struct {
	store IngredientStore
	deps  Deps
}

func NewIngredients(store IngredientStore, deps Deps) *Ingredients {
	return &Ingredients{store: store, deps: deps}
}

func (a *Ingredients) Create(ctx context.Context, in ingredient.Input) Result[ingredient.Ingredient] {
	const action = "ingredients.create"

	if _, ok := authorize(ctx, role.CanEdit); !ok {
		return finish(a.deps, action, Unauthorized[ingredient.Ingredient]())
	}

	in.Name = strings.TrimSpace(in.Name)
	if msg := Validate(in); msg != "" {
		return finish(a.deps, action, Invalid[ingredient.Ingredient](msg))
	}

	created, err := a.store.Create(ctx, ingredient.NewFromInput(in))
	if err != nil {
		if errors.Is(err, ingredient.ErrNameTaken) {
			return finish(a.deps, action, Conflict[ingredient.Ingredient](msgIngredientTaken))
		}
		return finish(a.deps, action, storeFailure[ingredient.Ingredient](ctx, a.deps, action, err))
	}

	a.deps.invalidate(ctx)

	return finish(a.deps, action, OK(created))
}

func (a *Ingredients) Update(ctx context.Context, id string, in ingredient.Input) Result[ingredient.Ingredient] {
	const action = "ingredients.update"

	if _, ok := authorize(ctx, role.CanEdit); !ok {
		return finish(a.deps, action, Unauthorized[ingredient.Ingredient]())
	}

	in.Name = strings.TrimSpace(in.Name)
	if msg := Validate(in); msg != "" {
		return finish(a.deps, action, Invalid[ingredient.Ingredient](msg))
	}

	existing, err := a.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ingredient.ErrNotFound) {
			return finish(a.deps, action, NotFound[ingredient.Ingredient](msgIngredientNotFound))
		}
		return finish(a.deps, action, storeFailure[ingredient.Ingredient](ctx, a.deps, action, err))
	}

	next := existing
	next.Name = in.Name
	next.Description = in.Description
	next.ImageURL = in.ImageURL
	next.ImageKey = in.ImageKey

	updated, err := a.store.Update(ctx, next)
	if err != nil {
		switch {
		case errors.Is(err, ingredient.ErrNotFound):
			return finish(a.deps, action, NotFound[ingredient.Ingredient](msgIngredientNotFound))
		case errors.Is(err, ingredient.ErrNameTaken):
			return finish(a.deps, action, Conflict[ingredient.Ingredient](msgIngredientTaken))
		}
		return finish(a.deps, action, storeFailure[ingredient.Ingredient](ctx, a.deps, action, err))
	}

	a.deps.replacedUpload(ctx, existing.ImageKey, updated.ImageKey)
	a.deps.invalidate(ctx)

	return finish(a.deps, action, OK(updated))
}

func (a *Ingredients) Delete(ctx context.Context, id string) Result[bool] {
	const action = "ingredients.delete"

	if _, ok := authorize(ctx, role.CanDelete); !ok {
		return finish(a.deps, action, Unauthorized[bool]())
	}

	deleted, err := a.store.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, ingredient.ErrNotFound) {
			return finish(a.deps, action, NotFound[bool](msgIngredientNotFound))
		}
		return finish(a.deps, action, storeFailure[bool](ctx, a.deps, action, err))
	}

	a.deps.deleteUpload(ctx, deleted.ImageKey)
	a.deps.invalidate(ctx)

	return finish(a.deps, action, OK(true))
}
