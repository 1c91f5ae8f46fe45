package config

import (
	"testing"
	"time"
)

func TestLoad_GoogleEnabledNeedsBothCredentials(t *testing.T) {
	t.Setenv("GOOGLE_CLIENT_ID", "client")
	t.Setenv("GOOGLE_CLIENT_SECRET", "")

	if Load().GoogleEnabled() {
		t.Fatalf("google should be disabled without a secret")
	}

	t.Setenv("GOOGLE_CLIENT_SECRET", "secret")
	if !Load().GoogleEnabled() {
		t.Fatalf("google should be enabled with id and secret")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_HOST", "db")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, ,https://b.example")

	cfg := Load()

	if cfg.DBURL != "postgres://mocktail:mocktail@db:5432/mocktail?sslmode=disable" {
		t.Fatalf("unexpected DBURL %q", cfg.DBURL)
	}
	if cfg.SessionTTL != 2*time.Hour {
		t.Fatalf("unexpected SessionTTL %v", cfg.SessionTTL)
	}
	if len(cfg.AllowedOrigins) != 2 {
		t.Fatalf("unexpected origins %v", cfg.AllowedOrigins)
	}
}

func TestValidate_ShortSecret(t *testing.T) {
	if err := (Config{AuthSecret: "short"}).Validate(); err == nil {
		t.Fatalf("expected error for short secret")
	}
}

func TestValidate_HalfConfiguredIntegrations(t *testing.T) {
	secret := "0123456789abcdef0123456789abcdef"

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "minimal", cfg: Config{AuthSecret: secret}},
		{name: "google_complete", cfg: Config{AuthSecret: secret, GoogleClientID: "id", GoogleClientSecret: "s", GoogleRedirectURL: "http://localhost/cb"}},
		{name: "google_without_secret", cfg: Config{AuthSecret: secret, GoogleClientID: "id"}, wantErr: true},
		{name: "google_without_redirect", cfg: Config{AuthSecret: secret, GoogleClientID: "id", GoogleClientSecret: "s"}, wantErr: true},
		{name: "uploads_default_credentials", cfg: Config{AuthSecret: secret, UploadBucket: "media"}},
		{name: "uploads_without_secret_key", cfg: Config{AuthSecret: secret, UploadBucket: "media", UploadAccessKey: "ak"}, wantErr: true},
		{name: "admin_without_password", cfg: Config{AuthSecret: secret, AdminEmail: "owner@mocktail.test"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr && err == nil {
				t.Fatalf("expected an error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
