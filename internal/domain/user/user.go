package user

import (
	"errors"
	"time"

	"github.com/geocoder89/mocktail/internal/domain/role"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("user with this email already exists")
)

type User struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	Name         *string   `json:"name,omitempty" db:"name"`
	PasswordHash *string   `json:"-" db:"password_hash"` // nil for OAuth-only accounts
	Role         role.Role `json:"role" db:"role"`
	Image        *string   `json:"image,omitempty" db:"image"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

func (u User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

func (u User) DisplayName() string {
	if u.Name != nil {
		return *u.Name
	}
	return ""
}

// Account links a third-party login to an existing user.
// (Provider, ProviderAccountID) is unique.
type Account struct {
	ID                string     `json:"id" db:"id"`
	UserID            string     `json:"userId" db:"user_id"`
	Type              string     `json:"type" db:"type"`
	Provider          string     `json:"provider" db:"provider"`
	ProviderAccountID string     `json:"providerAccountId" db:"provider_account_id"`
	AccessToken       *string    `json:"-" db:"access_token"`
	RefreshToken      *string    `json:"-" db:"refresh_token"`
	ExpiresAt         *time.Time `json:"-" db:"expires_at"`
	TokenType         *string    `json:"-" db:"token_type"`
	Scope             *string    `json:"-" db:"scope"`
	IDToken           *string    `json:"-" db:"id_token"`
}

type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"omitempty,max=120"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"required,oneof=SUPERADMIN ADMIN EDITOR"`
}

// UpdateUserRequest replaces the editable fields. An empty password keeps the current hash.
type UpdateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"omitempty,max=120"`
	Password string `json:"password" validate:"omitempty,min=8,max=72"`
	Role     string `json:"role" validate:"required,oneof=SUPERADMIN ADMIN EDITOR"`
}
