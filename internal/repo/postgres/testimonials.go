package postgres

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/geocoder89/mocktail/internal/domain/testimonial"
	"github.com/geocoder89/mocktail/internal/observability"
)

var testimonialColumns = []string{
	"id", "author", "quote", "rating", "image_url", "image_key", "published", "created_at", "updated_at",
}

type TestimonialsRepo struct {
	db   DB
	prom *observability.Prom
}

func NewTestimonialsRepo(db DB, prom *observability.Prom) *TestimonialsRepo {
	return &TestimonialsRepo{db: db, prom: prom}
}

func (r *TestimonialsRepo) List(ctx context.Context) ([]testimonial.Testimonial, error) {
	q := psql.Select(testimonialColumns...).From("testimonials").OrderBy("created_at DESC")

	return selectAll[testimonial.Testimonial](ctx, r.db, r.prom, "testimonials.list", q)
}

func (r *TestimonialsRepo) ListPublished(ctx context.Context) ([]testimonial.Testimonial, error) {
	q := psql.Select(testimonialColumns...).From("testimonials").
		Where(squirrel.Eq{"published": true}).
		OrderBy("created_at DESC")

	return selectAll[testimonial.Testimonial](ctx, r.db, r.prom, "testimonials.list_published", q)
}

func (r *TestimonialsRepo) GetByID(ctx context.Context, id string) (testimonial.Testimonial, error) {
	q := psql.Select(testimonialColumns...).From("testimonials").Where(squirrel.Eq{"id": id})

	return getOne[testimonial.Testimonial](ctx, r.db, r.prom, "testimonials.get_by_id", q, testimonial.ErrNotFound, nil)
}

func (r *TestimonialsRepo) Create(ctx context.Context, t testimonial.Testimonial) (testimonial.Testimonial, error) {
	q := psql.Insert("testimonials").
		Columns(testimonialColumns...).
		Values(t.ID, t.Author, t.Quote, t.Rating, t.ImageURL, t.ImageKey, t.Published, t.CreatedAt, t.UpdatedAt).
		Suffix(returning(testimonialColumns))

	return getOne[testimonial.Testimonial](ctx, r.db, r.prom, "testimonials.create", q, nil, nil)
}

func (r *TestimonialsRepo) Update(ctx context.Context, t testimonial.Testimonial) (testimonial.Testimonial, error) {
	q := psql.Update("testimonials").
		Set("author", t.Author).
		Set("quote", t.Quote).
		Set("rating", t.Rating).
		Set("image_url", t.ImageURL).
		Set("image_key", t.ImageKey).
		Set("published", t.Published).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": t.ID}).
		Suffix(returning(testimonialColumns))

	return getOne[testimonial.Testimonial](ctx, r.db, r.prom, "testimonials.update", q, testimonial.ErrNotFound, nil)
}

func (r *TestimonialsRepo) Delete(ctx context.Context, id string) (testimonial.Testimonial, error) {
	q := psql.Delete("testimonials").Where(squirrel.Eq{"id": id}).Suffix(returning(testimonialColumns))

	return getOne[testimonial.Testimonial](ctx, r.db, r.prom, "testimonials.delete", q, testimonial.ErrNotFound, nil)
}
