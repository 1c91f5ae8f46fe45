package uploads

import (
	"context"
	"log/slog"
	"strings"
)

// Deleter removes a previously uploaded object by its storage key.
type Deleter interface {
	DeleteByKey(ctx context.Context, key string) error
}

// NopDeleter is used when no upload bucket is configured.
type NopDeleter struct{}

func (NopDeleter) DeleteByKey(context.Context, string) error { return nil }

// BestEffort deletes key and only logs a failure. The caller's mutation has
// already succeeded, so a stale object must never turn it into an error.
func BestEffort(ctx context.Context, d Deleter, key string, log *slog.Logger) {
	key = strings.TrimSpace(key)
	if d == nil || key == "" {
		return
	}

	if err := d.DeleteByKey(ctx, key); err != nil {
		if log == nil {
			log = slog.Default()
		}
		log.WarnContext(ctx, "upload delete failed",
			"key", key,
			"err", err,
		)
	}
}
