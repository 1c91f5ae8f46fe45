package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/geocoder89/mocktail/internal/domain/settings"
	"github.com/geocoder89/mocktail/internal/observability"
)

var settingColumns = []string{"key", "value", "updated_at"}

type SettingsRepo struct {
	db   DB
	prom *observability.Prom
}

func NewSettingsRepo(db DB, prom *observability.Prom) *SettingsRepo {
	return &SettingsRepo{db: db, prom: prom}
}

// EnsureTable creates the settings table when it is missing. It is safe to
// call on every boot, including against databases older than the
// migrations.
func (r *SettingsRepo) EnsureTable(ctx context.Context) error {
	const ddl = `CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL DEFAULT '',
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`

	err := r.prom.ObserveDB("settings.ensure_table", func() error {
		_, err := r.db.Exec(ctx, ddl)
		return err
	})
	if err != nil {
		return fmt.Errorf("ensure settings table: %w", err)
	}

	return nil
}

func (r *SettingsRepo) All(ctx context.Context) ([]settings.Setting, error) {
	q := psql.Select(settingColumns...).From("settings").OrderBy("key ASC")

	return selectAll[settings.Setting](ctx, r.db, r.prom, "settings.all", q)
}

func (r *SettingsRepo) Get(ctx context.Context, key string) (settings.Setting, error) {
	q := psql.Select(settingColumns...).From("settings").Where(squirrel.Eq{"key": key})

	return getOne[settings.Setting](ctx, r.db, r.prom, "settings.get", q, settings.ErrNotFound, nil)
}

func (r *SettingsRepo) Upsert(ctx context.Context, key, value string) (settings.Setting, error) {
	q := psql.Insert("settings").
		Columns(settingColumns...).
		Values(key, value, time.Now().UTC()).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at " +
			returning(settingColumns))

	return getOne[settings.Setting](ctx, r.db, r.prom, "settings.upsert", q, nil, nil)
}
