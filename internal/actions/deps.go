package actions

import (
	"context"
	"log/slog"

	"github.com/geocoder89/mocktail/internal/actorctx"
	"github.com/geocoder89/mocktail/internal/auth"
	"github.com/geocoder89/mocktail/internal/domain/role"
	"github.com/geocoder89/mocktail/internal/uploads"
)

// CatalogInvalidator drops cached storefront reads after a content change.
type CatalogInvalidator interface {
	Invalidate(ctx context.Context)
}

type Recorder interface {
	RecordAction(action, code string)
}

// Deps are the collaborators shared by every action service. Zero values are
// usable: no upload cleanup, no cache, no metrics, default logger.
type Deps struct {
	Log     *slog.Logger
	Uploads uploads.Deleter
	Catalog CatalogInvalidator
	Metrics Recorder
}

func (d Deps) logger() *slog.Logger {
	if d.Log == nil {
		return slog.Default()
	}
	return d.Log
}

// Authorized reports whether the request carries a session whose role passes
// allowed. Handlers use it to answer 401 before looking at a body they could
// not decode.
func Authorized(ctx context.Context, allowed func(role.Role) bool) bool {
	_, ok := authorize(ctx, allowed)
	return ok
}

func authorize(ctx context.Context, allowed func(role.Role) bool) (auth.Session, bool) {
	s, ok := actorctx.SessionFrom(ctx)
	if !ok {
		return auth.Session{}, false
	}
	if !allowed(s.Role) {
		return s, false
	}
	return s, true
}

// session resolves the actor without a role check, for guards that must run
// before the role predicate.
func (d Deps) session(ctx context.Context) (auth.Session, bool) {
	return actorctx.SessionFrom(ctx)
}

func (d Deps) deleteUpload(ctx context.Context, key *string) {
	if key == nil {
		return
	}
	uploads.BestEffort(ctx, d.Uploads, *key, d.logger())
}

// replacedUpload deletes the previous object when an update points the
// entity at a different key.
func (d Deps) replacedUpload(ctx context.Context, before, after *string) {
	if before == nil || *before == "" {
		return
	}
	if after != nil && *after == *before {
		return
	}
	d.deleteUpload(ctx, before)
}

func (d Deps) invalidate(ctx context.Context) {
	if d.Catalog != nil {
		d.Catalog.Invalidate(ctx)
	}
}

// storeFailure logs the underlying error and hides it from the caller.
func storeFailure[T any](ctx context.Context, d Deps, action string, err error) Result[T] {
	d.logger().ErrorContext(ctx, "action failed",
		"action", action,
		"err", err,
	)
	return Failure[T]()
}

func finish[T any](d Deps, action string, r Result[T]) Result[T] {
	if d.Metrics != nil {
		d.Metrics.RecordAction(action, string(r.Code))
	}
	return r
}
