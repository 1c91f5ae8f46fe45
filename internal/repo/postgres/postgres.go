package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of *pgxpool.Pool the repos need. pgxmock satisfies it too.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

type observer interface {
	ObserveDB(op string, fn func() error) error
}

// getOne runs q and scans a single row into T. Missing rows map to notFound
// and unique violations to conflict when it is set.
func getOne[T any](ctx context.Context, db DB, obs observer, op string, q squirrel.Sqlizer, notFound, conflict error) (T, error) {
	var out T

	query, args, err := q.ToSql()
	if err != nil {
		return out, fmt.Errorf("%s: building query: %w", op, err)
	}

	err = obs.ObserveDB(op, func() error {
		return pgxscan.Get(ctx, db, &out, query, args...)
	})
	if err != nil {
		switch {
		case pgxscan.NotFound(err) && notFound != nil:
			return out, notFound
		case conflict != nil && IsUniqueViolation(err):
			return out, conflict
		}
		return out, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

func selectAll[T any](ctx context.Context, db DB, obs observer, op string, q squirrel.Sqlizer) ([]T, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: building query: %w", op, err)
	}

	out := []T{}
	err = obs.ObserveDB(op, func() error {
		return pgxscan.Select(ctx, db, &out, query, args...)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

func returning(cols []string) string {
	return "RETURNING " + strings.Join(cols, ", ")
}
