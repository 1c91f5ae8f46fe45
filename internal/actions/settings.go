package actions

import (
	"context"

	"github.com/geocoder89/mocktail/internal/domain/role"
	"github.com/geocoder89/mocktail/internal/domain/settings"
)

type SettingsStore interface {
	Upsert(ctx context.Context, key, value string) (settings.Setting, error)
}

type Settings struct {
	store SettingsStore
	deps  Deps
}

func NewSettings(store SettingsStore, deps Deps) *Settings {
	return &Settings{store: store, deps: deps}
}

// Update writes one site setting. Settings shape the whole storefront, so
// they take the same roles as deletes.
func (a *Settings) Update(ctx context.Context, in settings.Input) Result[settings.Setting] {
	const action = "settings.update"

	allowed := func(r role.Role) bool { return role.Has(role.DeleterRoles(), r) }
	if _, ok := authorize(ctx, allowed); !ok {
		return finish(a.deps, action, Unauthorized[settings.Setting]())
	}
	if msg := Validate(in); msg != "" {
		return finish(a.deps, action, Invalid[settings.Setting](msg))
	}

	s, err := a.store.Upsert(ctx, in.Key, in.Value)
	if err != nil {
		return finish(a.deps, action, storeFailure[settings.Setting](ctx, a.deps, action, err))
	}

	a.deps.invalidate(ctx)

	return finish(a.deps, action, OK(s))
}
