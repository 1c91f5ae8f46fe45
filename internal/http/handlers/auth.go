package handlers

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/geocoder89/mocktail/internal/auth"
	"github.com/geocoder89/mocktail/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

const (
	oauthStateCookie = "oauth_state"
	oauthStateTTL    = 10 * time.Minute
	accessDenied     = "AccessDenied"
)

type SignInAuthority interface {
	AuthorizeCredentials(ctx context.Context, email, password string) (auth.Identity, error)
	SignInOAuth(ctx context.Context, p auth.OAuthProfile) (auth.Identity, error)
}

type SessionMinter interface {
	Mint(id auth.Identity) (string, time.Time, error)
}

type OAuthProvider interface {
	Name() string
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (auth.OAuthProfile, error)
}

type AuthHandler struct {
	issuer       SignInAuthority
	tokens       SessionMinter
	google       OAuthProvider // nil when not configured
	secureCookie bool
	log          *slog.Logger
}

func NewAuthHandler(issuer SignInAuthority, tokens SessionMinter, google OAuthProvider, secureCookie bool, log *slog.Logger) *AuthHandler {
	if log == nil {
		log = slog.Default()
	}

	return &AuthHandler{
		issuer:       issuer,
		tokens:       tokens,
		google:       google,
		secureCookie: secureCookie,
		log:          log,
	}
}

// Providers lists the sign-in methods offered on the login page.
func (h *AuthHandler) Providers() []string {
	out := []string{"credentials"}
	if h.google != nil {
		out = append(out, h.google.Name())
	}
	return out
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req LoginRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	id, err := h.issuer.AuthorizeCredentials(cctx, req.Email, req.Password)
	if err != nil {
		RespondUnauthorized(ctx, "invalid_credentials", "Email or password is incorrect.")
		return
	}

	session, ok := h.startSession(ctx, id)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, session)
}

func (h *AuthHandler) Logout(ctx *gin.Context) {
	h.clearCookie(ctx, middlewares.SessionCookie, "/")
	ctx.Status(http.StatusNoContent)
}

func (h *AuthHandler) Session(ctx *gin.Context) {
	s, ok := middlewares.SessionFromContext(ctx)
	if !ok {
		RespondUnauthorized(ctx, "unauthorized", "Unauthorized")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": s})
}

func (h *AuthHandler) GoogleStart(ctx *gin.Context) {
	if h.google == nil {
		RespondNotFound(ctx, "Google sign-in is not enabled")
		return
	}

	state, err := randomState()
	if err != nil {
		h.log.ErrorContext(ctx.Request.Context(), "auth.oauth.state_failed", "err", err)
		RespondInternal(ctx, "Could not start sign-in")
		return
	}

	// the callback target rides along with the state so it survives the round trip
	value := state + "|" + safeCallback(ctx.Query("callbackUrl"))

	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(oauthStateCookie, value, int(oauthStateTTL.Seconds()), "/api/auth", "", h.secureCookie, true)

	ctx.Redirect(http.StatusFound, h.google.AuthCodeURL(state))
}

// GoogleCallback finishes the OAuth dance. Every failure lands on the same
// AccessDenied login error; the reason is only logged.
func (h *AuthHandler) GoogleCallback(ctx *gin.Context) {
	rctx := ctx.Request.Context()

	if h.google == nil {
		RespondNotFound(ctx, "Google sign-in is not enabled")
		return
	}

	cookie, _ := ctx.Cookie(oauthStateCookie)
	h.clearCookie(ctx, oauthStateCookie, "/api/auth")

	state, callback, _ := strings.Cut(cookie, "|")
	if state == "" || ctx.Query("state") != state {
		h.log.WarnContext(rctx, "auth.oauth.state_mismatch", "provider", h.google.Name())
		h.deny(ctx)
		return
	}

	if e := ctx.Query("error"); e != "" {
		h.log.InfoContext(rctx, "auth.oauth.provider_error", "provider", h.google.Name(), "error", e)
		h.deny(ctx)
		return
	}

	cctx, cancel := context.WithTimeout(rctx, 10*time.Second)
	defer cancel()

	profile, err := h.google.Exchange(cctx, ctx.Query("code"))
	if err != nil {
		h.log.WarnContext(rctx, "auth.oauth.exchange_failed", "provider", h.google.Name(), "err", err)
		h.deny(ctx)
		return
	}

	id, err := h.issuer.SignInOAuth(cctx, profile)
	if err != nil {
		if !errors.Is(err, auth.ErrNotOnboarded) {
			h.log.ErrorContext(rctx, "auth.oauth.sign_in_failed", "provider", h.google.Name(), "err", err)
		}
		h.deny(ctx)
		return
	}

	if _, ok := h.startSession(ctx, id); !ok {
		return
	}

	ctx.Redirect(http.StatusFound, safeCallback(callback))
}

func (h *AuthHandler) startSession(ctx *gin.Context, id auth.Identity) (gin.H, bool) {
	token, expiresAt, err := h.tokens.Mint(id)
	if err != nil {
		h.log.ErrorContext(ctx.Request.Context(), "auth.session.mint_failed", "user_id", id.UserID, "err", err)
		RespondInternal(ctx, "Could not create session")
		return nil, false
	}

	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(middlewares.SessionCookie, token, int(time.Until(expiresAt).Seconds()), "/", "", h.secureCookie, true)

	return gin.H{
		"user": auth.Session{
			UserID: id.UserID,
			Email:  id.Email,
			Name:   id.Name,
			Role:   id.Role,
		},
		"expires": expiresAt.UTC(),
	}, true
}

func (h *AuthHandler) deny(ctx *gin.Context) {
	ctx.Redirect(http.StatusFound, "/login?error="+accessDenied)
}

func (h *AuthHandler) clearCookie(ctx *gin.Context, name, path string) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(name, "", -1, path, "", h.secureCookie, true)
}

// safeCallback keeps post-login redirects on this site.
func safeCallback(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.Contains(raw, `\`) {
		return "/dashboard"
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host != "" || u.Scheme != "" {
		return "/dashboard"
	}

	return raw
}

func randomState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
