package postgres

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/geocoder89/mocktail/internal/domain/product"
	"github.com/geocoder89/mocktail/internal/observability"
)

var productColumns = []string{
	"id", "name", "slug", "description", "price", "image_url", "image_key",
	"featured", "sort_order", "created_at", "updated_at",
}

type ProductsRepo struct {
	db   DB
	prom *observability.Prom
}

func NewProductsRepo(db DB, prom *observability.Prom) *ProductsRepo {
	return &ProductsRepo{db: db, prom: prom}
}

func (r *ProductsRepo) List(ctx context.Context) ([]product.Product, error) {
	q := psql.Select(productColumns...).From("products").OrderBy("sort_order ASC", "created_at DESC")

	return selectAll[product.Product](ctx, r.db, r.prom, "products.list", q)
}

func (r *ProductsRepo) GetByID(ctx context.Context, id string) (product.Product, error) {
	q := psql.Select(productColumns...).From("products").Where(squirrel.Eq{"id": id})

	return getOne[product.Product](ctx, r.db, r.prom, "products.get_by_id", q, product.ErrNotFound, nil)
}

func (r *ProductsRepo) GetBySlug(ctx context.Context, slug string) (product.Product, error) {
	q := psql.Select(productColumns...).From("products").Where(squirrel.Eq{"slug": slug})

	return getOne[product.Product](ctx, r.db, r.prom, "products.get_by_slug", q, product.ErrNotFound, nil)
}

func (r *ProductsRepo) Create(ctx context.Context, p product.Product) (product.Product, error) {
	q := psql.Insert("products").
		Columns(productColumns...).
		Values(p.ID, p.Name, p.Slug, p.Description, p.Price, p.ImageURL, p.ImageKey,
			p.Featured, p.SortOrder, p.CreatedAt, p.UpdatedAt).
		Suffix(returning(productColumns))

	return getOne[product.Product](ctx, r.db, r.prom, "products.create", q, nil, product.ErrSlugTaken)
}

func (r *ProductsRepo) Update(ctx context.Context, p product.Product) (product.Product, error) {
	q := psql.Update("products").
		Set("name", p.Name).
		Set("slug", p.Slug).
		Set("description", p.Description).
		Set("price", p.Price).
		Set("image_url", p.ImageURL).
		Set("image_key", p.ImageKey).
		Set("featured", p.Featured).
		Set("sort_order", p.SortOrder).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": p.ID}).
		Suffix(returning(productColumns))

	return getOne[product.Product](ctx, r.db, r.prom, "products.update", q, product.ErrNotFound, product.ErrSlugTaken)
}

// Delete removes the product and returns the removed row so callers can
// clean up its image.
func (r *ProductsRepo) Delete(ctx context.Context, id string) (product.Product, error) {
	q := psql.Delete("products").Where(squirrel.Eq{"id": id}).Suffix(returning(productColumns))

	return getOne[product.Product](ctx, r.db, r.prom, "products.delete", q, product.ErrNotFound, nil)
}
