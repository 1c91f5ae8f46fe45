package actorctx

import (
	"context"

	"github.com/geocoder89/mocktail/internal/auth"
)

type ctxKey string

const keySession ctxKey = "session"

func WithSession(ctx context.Context, s auth.Session) context.Context {
	return context.WithValue(ctx, keySession, s)
}

// SessionFrom returns the signed-in session, if any.
func SessionFrom(ctx context.Context) (auth.Session, bool) {
	v, ok := ctx.Value(keySession).(auth.Session)

	return v, ok && v.UserID != ""
}
