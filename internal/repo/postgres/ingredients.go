package postgres

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/geocoder89/mocktail/internal/domain/ingredient"
	"github.com/geocoder89/mocktail/internal/observability"
)

var ingredientColumns = []string{"id", "name", "description", "image_url", "image_key", "created_at", "updated_at"}

type IngredientsRepo struct {
	db   DB
	prom *observability.Prom
}

func NewIngredientsRepo(db DB, prom *observability.Prom) *IngredientsRepo {
	return &IngredientsRepo{db: db, prom: prom}
}

func (r *IngredientsRepo) List(ctx context.Context) ([]ingredient.Ingredient, error) {
	q := psql.Select(ingredientColumns...).From("ingredients").OrderBy("name ASC")

	return selectAll[ingredient.Ingredient](ctx, r.db, r.prom, "ingredients.list", q)
}

func (r *IngredientsRepo) GetByID(ctx context.Context, id string) (ingredient.Ingredient, error) {
	q := psql.Select(ingredientColumns...).From("ingredients").Where(squirrel.Eq{"id": id})

	return getOne[ingredient.Ingredient](ctx, r.db, r.prom, "ingredients.get_by_id", q, ingredient.ErrNotFound, nil)
}

func (r *IngredientsRepo) Create(ctx context.Context, in ingredient.Ingredient) (ingredient.Ingredient, error) {
	q := psql.Insert("ingredients").
		Columns(ingredientColumns...).
		Values(in.ID, in.Name, in.Description, in.ImageURL, in.ImageKey, in.CreatedAt, in.UpdatedAt).
		Suffix(returning(ingredientColumns))

	return getOne[ingredient.Ingredient](ctx, r.db, r.prom, "ingredients.create", q, nil, ingredient.ErrNameTaken)
}

func (r *IngredientsRepo) Update(ctx context.Context, in ingredient.Ingredient) (ingredient.Ingredient, error) {
	q := psql.Update("ingredients").
		Set("name", in.Name).
		Set("description", in.Description).
		Set("image_url", in.ImageURL).
		Set("image_key", in.ImageKey).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": in.ID}).
		Suffix(returning(ingredientColumns))

	return getOne[ingredient.Ingredient](ctx, r.db, r.prom, "ingredients.update", q, ingredient.ErrNotFound, ingredient.ErrNameTaken)
}

func (r *IngredientsRepo) Delete(ctx context.Context, id string) (ingredient.Ingredient, error) {
	q := psql.Delete("ingredients").Where(squirrel.Eq{"id": id}).Suffix(returning(ingredientColumns))

	return getOne[ingredient.Ingredient](ctx, r.db, r.prom, "ingredients.delete", q, ingredient.ErrNotFound, nil)
}
