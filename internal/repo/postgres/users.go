package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/geocoder89/mocktail/internal/domain/role"
	"github.com/geocoder89/mocktail/internal/domain/user"
	"github.com/geocoder89/mocktail/internal/observability"
	"github.com/georgysavva/scany/v2/pgxscan"
)

var userColumns = []string{"id", "email", "name", "password_hash", "role", "image", "created_at", "updated_at"}

type UsersRepo struct {
	db   DB
	prom *observability.Prom
}

func NewUsersRepo(db DB, prom *observability.Prom) *UsersRepo {
	return &UsersRepo{db: db, prom: prom}
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return r.getBy(ctx, "users.get_by_email", squirrel.Expr("lower(email) = lower(?)", strings.TrimSpace(email)))
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	return r.getBy(ctx, "users.get_by_id", squirrel.Eq{"id": id})
}

func (r *UsersRepo) getBy(ctx context.Context, op string, where squirrel.Sqlizer) (user.User, error) {
	query, args, err := psql.Select(userColumns...).From("users").Where(where).ToSql()
	if err != nil {
		return user.User{}, fmt.Errorf("building select query: %w", err)
	}

	var u user.User
	err = r.prom.ObserveDB(op, func() error {
		return pgxscan.Get(ctx, r.db, &u, query, args...)
	})
	if err != nil {
		if pgxscan.NotFound(err) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, fmt.Errorf("scanning user: %w", err)
	}

	return u, nil
}

// RoleByEmail reads only the stored role, for callers that must not trust
// a role carried on an older token or profile.
func (r *UsersRepo) RoleByEmail(ctx context.Context, email string) (role.Role, error) {
	query, args, err := psql.Select("role").From("users").
		Where(squirrel.Expr("lower(email) = lower(?)", strings.TrimSpace(email))).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("building select query: %w", err)
	}

	var rl role.Role
	err = r.prom.ObserveDB("users.role_by_email", func() error {
		return pgxscan.Get(ctx, r.db, &rl, query, args...)
	})
	if err != nil {
		if pgxscan.NotFound(err) {
			return "", user.ErrNotFound
		}
		return "", fmt.Errorf("scanning role: %w", err)
	}

	return rl, nil
}

func (r *UsersRepo) List(ctx context.Context) ([]user.User, error) {
	query, args, err := psql.Select(userColumns...).From("users").OrderBy("created_at ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("building select query: %w", err)
	}

	users := []user.User{}
	err = r.prom.ObserveDB("users.list", func() error {
		return pgxscan.Select(ctx, r.db, &users, query, args...)
	})
	if err != nil {
		return nil, fmt.Errorf("scanning users: %w", err)
	}

	return users, nil
}

func (r *UsersRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	query, args, err := psql.Insert("users").
		Columns(userColumns...).
		Values(u.ID, strings.ToLower(u.Email), u.Name, u.PasswordHash, u.Role, u.Image, u.CreatedAt, u.UpdatedAt).
		ToSql()
	if err != nil {
		return user.User{}, fmt.Errorf("building insert query: %w", err)
	}

	err = r.prom.ObserveDB("users.create", func() error {
		_, err := r.db.Exec(ctx, query, args...)
		return err
	})
	if err != nil {
		if IsUniqueViolation(err) {
			return user.User{}, user.ErrEmailTaken
		}
		return user.User{}, fmt.Errorf("inserting user: %w", err)
	}

	u.Email = strings.ToLower(u.Email)
	return u, nil
}

// Update writes email, name and role. The password hash is only replaced
// when u carries one.
func (r *UsersRepo) Update(ctx context.Context, u user.User) (user.User, error) {
	u.UpdatedAt = time.Now().UTC()
	u.Email = strings.ToLower(u.Email)

	q := psql.Update("users").
		Set("email", u.Email).
		Set("name", u.Name).
		Set("role", u.Role).
		Set("updated_at", u.UpdatedAt).
		Where(squirrel.Eq{"id": u.ID}).
		Suffix("RETURNING " + strings.Join(userColumns, ", "))

	if u.HasPassword() {
		q = q.Set("password_hash", u.PasswordHash)
	}

	query, args, err := q.ToSql()
	if err != nil {
		return user.User{}, fmt.Errorf("building update query: %w", err)
	}

	var out user.User
	err = r.prom.ObserveDB("users.update", func() error {
		return pgxscan.Get(ctx, r.db, &out, query, args...)
	})
	if err != nil {
		switch {
		case pgxscan.NotFound(err):
			return user.User{}, user.ErrNotFound
		case IsUniqueViolation(err):
			return user.User{}, user.ErrEmailTaken
		}
		return user.User{}, fmt.Errorf("updating user: %w", err)
	}

	return out, nil
}

func (r *UsersRepo) Delete(ctx context.Context, id string) error {
	query, args, err := psql.Delete("users").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("building delete query: %w", err)
	}

	var affected int64
	err = r.prom.ObserveDB("users.delete", func() error {
		tag, err := r.db.Exec(ctx, query, args...)
		affected = tag.RowsAffected()
		return err
	})
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	if affected == 0 {
		return user.ErrNotFound
	}

	return nil
}
