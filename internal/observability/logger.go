package observability

import (
	"log/slog"
	"os"
)

// NewLogger builds the JSON logger used across the service. Records carry
// trace and span ids whenever the context holds an active span.
func NewLogger(env string) *slog.Logger {
	level := slog.LevelInfo

	if env == "dev" {
		level = slog.LevelDebug
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})

	return slog.New(NewTraceHandler(handler))
}
