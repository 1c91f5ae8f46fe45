package actions

import (
	"context"
	"errors"

	"github.com/geocoder89/mocktail/internal/domain/role"
	"github.com/geocoder89/mocktail/internal/domain/testimonial"
)

const msgTestimonialNotFound = "Testimonial not found"

type TestimonialStore interface {
	GetByID(ctx context.Context, id string) (testimonial.Testimonial, error)
	Create(ctx context.Context, t testimonial.Testimonial) (testimonial.Testimonial, error)
	Update(ctx context.Context, t testimonial.Testimonial) (testimonial.Testimonial, error)
	Delete(ctx context.Context, id string) (testimonial.Testimonial, error)
}

type Testimonials struct {
	store TestimonialStore
	deps  Deps
}

func NewTestimonials(store TestimonialStore, deps Deps) *Testimonials {
	return &Testimonials{store: store, deps: deps}
}

func (a *Testimonials) Create(ctx context.Context, in testimonial.Input) Result[testimonial.Testimonial] {
	const action = "testimonials.create"

	if _, ok := authorize(ctx, role.CanEdit); !ok {
		return finish(a.deps, action, Unauthorized[testimonial.Testimonial]())
	}
	if msg := Validate(in); msg != "" {
		return finish(a.deps, action, Invalid[testimonial.Testimonial](msg))
	}

	created, err := a.store.Create(ctx, testimonial.NewFromInput(in))
	if err != nil {
		return finish(a.deps, action, storeFailure[testimonial.Testimonial](ctx, a.deps, action, err))
	}

	a.deps.invalidate(ctx)

	return finish(a.deps, action, OK(created))
}

func (a *Testimonials) Update(ctx context.Context, id string, in testimonial.Input) Result[testimonial.Testimonial] {
	const action = "testimonials.update"

	if _, ok := authorize(ctx, role.CanEdit); !ok {
		return finish(a.deps, action, Unauthorized[testimonial.Testimonial]())
	}
	if msg := Validate(in); msg != "" {
		return finish(a.deps, action, Invalid[testimonial.Testimonial](msg))
	}

	existing, err := a.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, testimonial.ErrNotFound) {
			return finish(a.deps, action, NotFound[testimonial.Testimonial](msgTestimonialNotFound))
		}
		return finish(a.deps, action, storeFailure[testimonial.Testimonial](ctx, a.deps, action, err))
	}

	next := existing
	next.Author = in.Author
	next.Quote = in.Quote
	next.Rating = in.Rating
	next.ImageURL = in.ImageURL
	next.ImageKey = in.ImageKey
	next.Published = in.Published

	updated, err := a.store.Update(ctx, next)
	if err != nil {
		if errors.Is(err, testimonial.ErrNotFound) {
			return finish(a.deps, action, NotFound[testimonial.Testimonial](msgTestimonialNotFound))
		}
		return finish(a.deps, action, storeFailure[testimonial.Testimonial](ctx, a.deps, action, err))
	}

	a.deps.replacedUpload(ctx, existing.ImageKey, updated.ImageKey)
	a.deps.invalidate(ctx)

	return finish(a.deps, action, OK(updated))
}

func (a *Testimonials) Delete(ctx context.Context, id string) Result[bool] {
	const action = "testimonials.delete"

	if _, ok := authorize(ctx, role.CanDelete); !ok {
		return finish(a.deps, action, Unauthorized[bool]())
	}

	deleted, err := a.store.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, testimonial.ErrNotFound) {
			return finish(a.deps, action, NotFound[bool](msgTestimonialNotFound))
		}
		return finish(a.deps, action, storeFailure[bool](ctx, a.deps, action, err))
	}

	a.deps.deleteUpload(ctx, deleted.ImageKey)
	a.deps.invalidate(ctx)

	return finish(a.deps, action, OK(true))
}
