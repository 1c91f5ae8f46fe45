package db

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/geocoder89/mocktail/internal/config"
	"github.com/geocoder89/mocktail/internal/domain/role"
	"github.com/geocoder89/mocktail/internal/domain/user"
	"github.com/geocoder89/mocktail/internal/security"
	"github.com/google/uuid"
)

type UserStore interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
	Create(ctx context.Context, u user.User) (user.User, error)
}

// EnsureSuperAdmin creates the configured owner account on first boot so
// there is always someone able to manage users. Existing rows are left alone.
func EnsureSuperAdmin(ctx context.Context, users UserStore, cfg config.Config, log *slog.Logger) error {
	email := strings.TrimSpace(cfg.AdminEmail)
	if email == "" || cfg.AdminPassword == "" {
		return nil
	}

	_, err := users.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, user.ErrNotFound) {
		return err
	}

	hash, err := security.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}

	now := time.Now().UTC()

	u := user.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         nilIfBlank(cfg.AdminName),
		PasswordHash: &hash,
		Role:         role.SuperAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := users.Create(ctx, u); err != nil {
		// a concurrent boot may have seeded first
		if errors.Is(err, user.ErrEmailTaken) {
			return nil
		}
		return err
	}

	log.InfoContext(ctx, "seeded superadmin", "email", u.Email)

	return nil
}

func nilIfBlank(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
