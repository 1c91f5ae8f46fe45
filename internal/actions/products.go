package actions

import (
	"context"
	"errors"
	"strings"

	"github.com/geocoder89/mocktail/internal/domain/product"
	"github.com/geocoder89/mocktail/internal/domain/role"
)

const (
	msgProductNotFound = "Product not found"
	msgSlugTaken       = "Product with this slug already exists"
	msgBadPrice        = "price must be a non-negative amount"
)

type ProductStore interface {
	GetByID(ctx context.Context, id string) (product.Product, error)
	Create(ctx context.Context, p product.Product) (product.Product, error)
	Update(ctx context.Context, p product.Product) (product.Product, error)
	Delete(ctx context.Context, id string) (product.Product, error)
}

type Products struct {
	store ProductStore
	deps  Deps
}

func NewProducts(store ProductStore, deps Deps) *Products {
	return &Products{store: store, deps: deps}
}

func (a *Products) Create(ctx context.Context, in product.Input) Result[product.Product] {
	const action = "products.create"

	if _, ok := authorize(ctx, role.CanEdit); !ok {
		return finish(a.deps, action, Unauthorized[product.Product]())
	}

	in.Name = strings.TrimSpace(in.Name)
	if msg := Validate(in); msg != "" {
		return finish(a.deps, action, Invalid[product.Product](msg))
	}

	price, err := in.ParsePrice()
	if err != nil {
		return finish(a.deps, action, Invalid[product.Product](msgBadPrice))
	}

	created, err := a.store.Create(ctx, product.NewFromInput(in, price))
	if err != nil {
		if errors.Is(err, product.ErrSlugTaken) {
			return finish(a.deps, action, Conflict[product.Product](msgSlugTaken))
		}
		return finish(a.deps, action, storeFailure[product.Product](ctx, a.deps, action, err))
	}

	a.deps.invalidate(ctx)

	return finish(a.deps, action, OK(created))
}

func (a *Products) Update(ctx context.Context, id string, in product.Input) Result[product.Product] {
	const action = "products.update"

	if _, ok := authorize(ctx, role.CanEdit); !ok {
		return finish(a.deps, action, Unauthorized[product.Product]())
	}

	in.Name = strings.TrimSpace(in.Name)
	if msg := Validate(in); msg != "" {
		return finish(a.deps, action, Invalid[product.Product](msg))
	}

	price, err := in.ParsePrice()
	if err != nil {
		return finish(a.deps, action, Invalid[product.Product](msgBadPrice))
	}

	existing, err := a.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			return finish(a.deps, action, NotFound[product.Product](msgProductNotFound))
		}
		return finish(a.deps, action, storeFailure[product.Product](ctx, a.deps, action, err))
	}

	next := existing
	next.Name = in.Name
	next.Slug = product.SlugFor(in)
	next.Description = in.Description
	next.Price = price
	next.ImageURL = in.ImageURL
	next.ImageKey = in.ImageKey
	next.Featured = in.Featured
	next.SortOrder = in.SortOrder

	updated, err := a.store.Update(ctx, next)
	if err != nil {
		switch {
		case errors.Is(err, product.ErrNotFound):
			return finish(a.deps, action, NotFound[product.Product](msgProductNotFound))
		case errors.Is(err, product.ErrSlugTaken):
			return finish(a.deps, action, Conflict[product.Product](msgSlugTaken))
		}
		return finish(a.deps, action, storeFailure[product.Product](ctx, a.deps, action, err))
	}

	a.deps.replacedUpload(ctx, existing.ImageKey, updated.ImageKey)
	a.deps.invalidate(ctx)

	return finish(a.deps, action, OK(updated))
}

func (a *Products) Delete(ctx context.Context, id string) Result[bool] {
	const action = "products.delete"

	if _, ok := authorize(ctx, role.CanDelete); !ok {
		return finish(a.deps, action, Unauthorized[bool]())
	}

	deleted, err := a.store.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			return finish(a.deps, action, NotFound[bool](msgProductNotFound))
		}
		return finish(a.deps, action, storeFailure[bool](ctx, a.deps, action, err))
	}

	a.deps.deleteUpload(ctx, deleted.ImageKey)
	a.deps.invalidate(ctx)

	return finish(a.deps, action, OK(true))
}
