package observability

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestClassifyDBErr(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{err: &pgconn.PgError{Code: "23505"}, want: "unique_violation"},
		{err: &pgconn.PgError{Code: "42P01"}, want: "pg_42P01"},
		{err: errors.New("context deadline exceeded"), want: "timeout"},
		{err: errors.New("connection refused"), want: "connection"},
		{err: errors.New("boom"), want: "unknown"},
	}

	for _, tt := range tests {
		if got := classifyDBErr(tt.err); got != tt.want {
			t.Fatalf("classifyDBErr(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestObserveDB_CountsErrors(t *testing.T) {
	p := NewProm(prometheus.NewRegistry())

	_ = p.ObserveDB("users.create", func() error { return &pgconn.PgError{Code: "23505"} })
	_ = p.ObserveDB("users.create", func() error { return nil })

	if got := testutil.ToFloat64(p.DbErrorsTotal.WithLabelValues("users.create", "unique_violation")); got != 1 {
		t.Fatalf("got %v unique violations, want 1", got)
	}
}

func TestObserveDB_NilProm(t *testing.T) {
	var p *Prom
	called := false

	if err := p.ObserveDB("noop", func() error { called = true; return nil }); err != nil || !called {
		t.Fatalf("nil Prom should just run fn")
	}
}
