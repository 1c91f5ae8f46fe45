package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/geocoder89/mocktail/internal/actorctx"
	"github.com/geocoder89/mocktail/internal/auth"
	"github.com/geocoder89/mocktail/internal/domain/role"
	"go.opentelemetry.io/otel/trace"
)

func logLine(t *testing.T, ctx context.Context) map[string]any {
	t.Helper()

	var buf bytes.Buffer
	log := slog.New(NewTraceHandler(slog.NewJSONHandler(&buf, nil)))
	log.InfoContext(ctx, "hello")

	out := map[string]any{}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v (%s)", err, buf.String())
	}
	return out
}

func TestTraceHandler_AddsSpanAndActor(t *testing.T) {
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{1, 2, 3},
		SpanID:     trace.SpanID{4, 5, 6},
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)
	ctx = actorctx.WithSession(ctx, auth.Session{UserID: "u1", Role: role.Admin})

	line := logLine(t, ctx)

	if line["trace_id"] != sc.TraceID().String() || line["span_id"] != sc.SpanID().String() {
		t.Fatalf("missing span ids: %v", line)
	}
	if line["user_id"] != "u1" || line["role"] != "ADMIN" {
		t.Fatalf("missing actor: %v", line)
	}
}

func TestTraceHandler_PlainContext(t *testing.T) {
	line := logLine(t, context.Background())

	for _, k := range []string{"trace_id", "span_id", "user_id"} {
		if _, ok := line[k]; ok {
			t.Fatalf("unexpected %s in %v", k, line)
		}
	}
}
