package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	ProviderGoogle        = "google"
	googleUserInfoURL     = "https://openidconnect.googleapis.com/v1/userinfo"
	googleExchangeTimeout = 10 * time.Second
)

var ErrOAuthExchange = errors.New("oauth exchange failed")

type googleUserInfo struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// GoogleProvider runs the authorization code flow against Google.
type GoogleProvider struct {
	oauth       *oauth2.Config
	http        *resty.Client
	userInfoURL string
}

type GoogleOption func(*GoogleProvider)

// WithGoogleEndpoints points the provider at different auth, token and
// userinfo URLs (used by tests).
func WithGoogleEndpoints(authURL, tokenURL, userInfoURL string) GoogleOption {
	return func(g *GoogleProvider) {
		g.oauth.Endpoint = oauth2.Endpoint{AuthURL: authURL, TokenURL: tokenURL}
		g.userInfoURL = userInfoURL
	}
}

func NewGoogleProvider(clientID, clientSecret, redirectURL string, opts ...GoogleOption) *GoogleProvider {
	g := &GoogleProvider{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		http: resty.New().
			SetTimeout(googleExchangeTimeout).
			SetHeader("Accept", "application/json").
			SetRetryCount(2).
			SetRetryWaitTime(100 * time.Millisecond),
		userInfoURL: googleUserInfoURL,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

func (g *GoogleProvider) Name() string {
	return ProviderGoogle
}

func (g *GoogleProvider) AuthCodeURL(state string) string {
	return g.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange trades an authorization code for tokens and reads the profile.
func (g *GoogleProvider) Exchange(ctx context.Context, code string) (OAuthProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, googleExchangeTimeout)
	defer cancel()

	tok, err := g.oauth.Exchange(ctx, code)
	if err != nil {
		return OAuthProfile{}, fmt.Errorf("%w: %v", ErrOAuthExchange, err)
	}

	var info googleUserInfo
	resp, err := g.http.R().
		SetContext(ctx).
		SetAuthToken(tok.AccessToken).
		SetResult(&info).
		Get(g.userInfoURL)
	if err != nil {
		return OAuthProfile{}, fmt.Errorf("%w: userinfo: %v", ErrOAuthExchange, err)
	}
	if resp.IsError() {
		return OAuthProfile{}, fmt.Errorf("%w: userinfo status %d", ErrOAuthExchange, resp.StatusCode())
	}
	if info.Sub == "" {
		return OAuthProfile{}, fmt.Errorf("%w: userinfo without subject", ErrOAuthExchange)
	}

	p := OAuthProfile{
		Provider:          ProviderGoogle,
		ProviderAccountID: info.Sub,
		Email:             info.Email,
		EmailVerified:     info.EmailVerified,
		Name:              info.Name,
		Image:             info.Picture,
		AccessToken:       tok.AccessToken,
		RefreshToken:      tok.RefreshToken,
		TokenType:         tok.TokenType,
	}
	if idToken, ok := tok.Extra("id_token").(string); ok {
		p.IDToken = idToken
	}
	if scope, ok := tok.Extra("scope").(string); ok {
		p.Scope = scope
	}
	if !tok.Expiry.IsZero() {
		p.ExpiresAt = tok.Expiry.Unix()
	}

	return p, nil
}
