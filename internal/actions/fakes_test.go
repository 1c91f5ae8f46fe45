package actions

import (
	"bytes"
	"context"
	"log/slog"

	"github.com/geocoder89/mocktail/internal/actorctx"
	"github.com/geocoder89/mocktail/internal/auth"
	"github.com/geocoder89/mocktail/internal/domain/role"
)

func as(userID string, r role.Role) context.Context {
	return actorctx.WithSession(context.Background(), auth.Session{UserID: userID, Email: userID + "@mocktail.test", Role: r})
}

type fakeUploads struct {
	keys []string
}

func (f *fakeUploads) DeleteByKey(_ context.Context, key string) error {
	f.keys = append(f.keys, key)
	return nil
}

type fakeCatalog struct {
	invalidations int
}

func (f *fakeCatalog) Invalidate(context.Context) { f.invalidations++ }

type fakeRecorder struct {
	codes map[string]string
}

func (f *fakeRecorder) RecordAction(action, code string) {
	if f.codes == nil {
		f.codes = map[string]string{}
	}
	f.codes[action] = code
}

type testDeps struct {
	Deps
	logs    *bytes.Buffer
	uploads *fakeUploads
	catalog *fakeCatalog
	metrics *fakeRecorder
}

func newTestDeps() testDeps {
	var buf bytes.Buffer
	up := &fakeUploads{}
	cat := &fakeCatalog{}
	rec := &fakeRecorder{}

	return testDeps{
		Deps: Deps{
			Log:     slog.New(slog.NewJSONHandler(&buf, nil)),
			Uploads: up,
			Catalog: cat,
			Metrics: rec,
		},
		logs:    &buf,
		uploads: up,
		catalog: cat,
		metrics: rec,
	}
}

func strPtr(s string) *string { return &s }
