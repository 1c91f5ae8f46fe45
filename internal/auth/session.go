package auth

import "github.com/geocoder89/mocktail/internal/domain/role"

// Identity is a verified user as produced by a sign-in method.
type Identity struct {
	UserID string
	Email  string
	Name   string
	Role   role.Role
}

// Session is what every request after sign-in sees.
type Session struct {
	UserID string    `json:"id"`
	Email  string    `json:"email"`
	Name   string    `json:"name,omitempty"`
	Role   role.Role `json:"role"`
}

// OAuthProfile is a third-party identity already verified by the provider.
type OAuthProfile struct {
	Provider          string
	ProviderAccountID string
	Email             string
	EmailVerified     bool
	Name              string
	Image             string

	AccessToken  string
	RefreshToken string
	TokenType    string
	Scope        string
	IDToken      string
	ExpiresAt    int64 // unix seconds, 0 if unknown
}
