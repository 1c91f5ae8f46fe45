package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/geocoder89/mocktail/internal/domain/role"
	"github.com/geocoder89/mocktail/internal/domain/user"
	"github.com/geocoder89/mocktail/internal/security"
	"github.com/google/uuid"
)

var (
	// ErrInvalidCredentials covers unknown email, OAuth-only account and wrong
	// password alike so the caller cannot tell which one failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotOnboarded       = errors.New("user must be onboarded by a SUPERADMIN before signing in")
	ErrSignInFailed       = errors.New("sign-in failed")
)

type UserLookup interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
	RoleByEmail(ctx context.Context, email string) (role.Role, error)
}

type AccountLinker interface {
	Upsert(ctx context.Context, acc user.Account) error
}

// SignInRecorder counts sign-in outcomes. Prom implements it.
type SignInRecorder interface {
	RecordSignIn(method, result string)
}

// dummyHash is compared against when no stored hash exists, so every failed
// credential check costs one bcrypt compare.
var dummyHash = sync.OnceValue(func() string {
	h, err := security.HashPassword("mocktail-dummy-password")
	if err != nil {
		panic(err)
	}
	return h
})

type Issuer struct {
	users    UserLookup
	accounts AccountLinker
	log      *slog.Logger
	rec      SignInRecorder
	compare  func(hash, plain string) error
}

func NewIssuer(users UserLookup, accounts AccountLinker, log *slog.Logger, rec SignInRecorder) *Issuer {
	if log == nil {
		log = slog.Default()
	}
	return &Issuer{users: users, accounts: accounts, log: log, rec: rec, compare: security.CheckPassword}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// AuthorizeCredentials checks an email and password against the stored hash.
func (i *Issuer) AuthorizeCredentials(ctx context.Context, email, password string) (Identity, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		i.record("credentials", "rejected")
		return Identity{}, ErrInvalidCredentials
	}

	u, err := i.users.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, user.ErrNotFound) {
			i.log.ErrorContext(ctx, "auth.credentials.lookup_failed", "err", err)
		}
		_ = i.compare(dummyHash(), password)
		i.record("credentials", "rejected")
		return Identity{}, ErrInvalidCredentials
	}

	if !u.HasPassword() {
		_ = i.compare(dummyHash(), password)
		i.record("credentials", "rejected")
		return Identity{}, ErrInvalidCredentials
	}

	if err := i.compare(*u.PasswordHash, password); err != nil {
		i.record("credentials", "rejected")
		return Identity{}, ErrInvalidCredentials
	}

	i.record("credentials", "ok")

	return Identity{
		UserID: u.ID,
		Email:  u.Email,
		Name:   u.DisplayName(),
		Role:   u.Role,
	}, nil
}

// SignInOAuth admits a provider identity only for an email that already
// belongs to a user, links the provider account to that user and returns the
// identity to mint. OAuth never creates users.
func (i *Issuer) SignInOAuth(ctx context.Context, p OAuthProfile) (Identity, error) {
	email := NormalizeEmail(p.Email)
	if email == "" || !p.EmailVerified {
		i.log.WarnContext(ctx, "auth.oauth.unverified_email", "provider", p.Provider)
		i.record(p.Provider, "denied")
		return Identity{}, ErrNotOnboarded
	}

	u, err := i.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			i.log.WarnContext(ctx, "auth.oauth.not_onboarded",
				"provider", p.Provider,
				"email", email,
				"hint", "ask a SUPERADMIN to create the user first",
			)
			i.record(p.Provider, "denied")
			return Identity{}, ErrNotOnboarded
		}
		i.log.ErrorContext(ctx, "auth.oauth.lookup_failed", "provider", p.Provider, "err", err)
		i.record(p.Provider, "error")
		return Identity{}, ErrSignInFailed
	}

	if err := i.accounts.Upsert(ctx, accountFromProfile(u.ID, p)); err != nil {
		// linking is best effort, an existing link is fine
		i.log.ErrorContext(ctx, "auth.oauth.link_failed",
			"provider", p.Provider,
			"user_id", u.ID,
			"err", err,
		)
	}

	name := u.DisplayName()
	if name == "" {
		name = p.Name
	}

	i.record(p.Provider, "ok")

	return Identity{
		UserID: u.ID,
		Email:  u.Email,
		Name:   name,
		Role:   i.oauthRole(ctx, u.Email),
	}, nil
}

// oauthRole re-reads the role by email instead of trusting anything the
// provider sent. A failed lookup falls back to the least privileged role.
func (i *Issuer) oauthRole(ctx context.Context, email string) role.Role {
	r, err := i.users.RoleByEmail(ctx, email)
	if err != nil || !r.Valid() {
		i.log.WarnContext(ctx, "auth.oauth.role_fallback", "email", email, "err", err)
		return role.Editor
	}
	return r
}

func (i *Issuer) record(method, result string) {
	if i.rec != nil {
		i.rec.RecordSignIn(method, result)
	}
}

func accountFromProfile(userID string, p OAuthProfile) user.Account {
	acc := user.Account{
		ID:                uuid.NewString(),
		UserID:            userID,
		Type:              "oauth",
		Provider:          p.Provider,
		ProviderAccountID: p.ProviderAccountID,
		AccessToken:       optional(p.AccessToken),
		RefreshToken:      optional(p.RefreshToken),
		TokenType:         optional(p.TokenType),
		Scope:             optional(p.Scope),
		IDToken:           optional(p.IDToken),
	}
	if p.ExpiresAt > 0 {
		t := time.Unix(p.ExpiresAt, 0).UTC()
		acc.ExpiresAt = &t
	}
	return acc
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
