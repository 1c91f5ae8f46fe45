package postgres

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/geocoder89/mocktail/internal/domain/instagram"
	"github.com/geocoder89/mocktail/internal/observability"
)

var instagramColumns = []string{"id", "url", "caption", "sort_order", "created_at", "updated_at"}

type InstagramRepo struct {
	db   DB
	prom *observability.Prom
}

func NewInstagramRepo(db DB, prom *observability.Prom) *InstagramRepo {
	return &InstagramRepo{db: db, prom: prom}
}

func (r *InstagramRepo) List(ctx context.Context) ([]instagram.Post, error) {
	q := psql.Select(instagramColumns...).From("instagram_posts").OrderBy("sort_order ASC", "created_at DESC")

	return selectAll[instagram.Post](ctx, r.db, r.prom, "instagram.list", q)
}

func (r *InstagramRepo) GetByID(ctx context.Context, id string) (instagram.Post, error) {
	q := psql.Select(instagramColumns...).From("instagram_posts").Where(squirrel.Eq{"id": id})

	return getOne[instagram.Post](ctx, r.db, r.prom, "instagram.get_by_id", q, instagram.ErrNotFound, nil)
}

func (r *InstagramRepo) Create(ctx context.Context, p instagram.Post) (instagram.Post, error) {
	q := psql.Insert("instagram_posts").
		Columns(instagramColumns...).
		Values(p.ID, p.URL, p.Caption, p.SortOrder, p.CreatedAt, p.UpdatedAt).
		Suffix(returning(instagramColumns))

	return getOne[instagram.Post](ctx, r.db, r.prom, "instagram.create", q, nil, instagram.ErrDuplicate)
}

func (r *InstagramRepo) Update(ctx context.Context, p instagram.Post) (instagram.Post, error) {
	q := psql.Update("instagram_posts").
		Set("url", p.URL).
		Set("caption", p.Caption).
		Set("sort_order", p.SortOrder).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": p.ID}).
		Suffix(returning(instagramColumns))

	return getOne[instagram.Post](ctx, r.db, r.prom, "instagram.update", q, instagram.ErrNotFound, instagram.ErrDuplicate)
}

func (r *InstagramRepo) Delete(ctx context.Context, id string) (instagram.Post, error) {
	q := psql.Delete("instagram_posts").Where(squirrel.Eq{"id": id}).Suffix(returning(instagramColumns))

	return getOne[instagram.Post](ctx, r.db, r.prom, "instagram.delete", q, instagram.ErrNotFound, nil)
}
