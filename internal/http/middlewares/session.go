package middlewares

import (
	"net/http"
	"strings"

	"github.com/geocoder89/mocktail/internal/actorctx"
	"github.com/geocoder89/mocktail/internal/auth"
	"github.com/gin-gonic/gin"
)

const SessionCookie = "session_token"

// SessionVerifier keeps this package independent of the token format so tests
// can fake it.
type SessionVerifier interface {
	VerifySession(token string) (auth.Session, error)
}

// SessionLoader resolves the session from the session cookie or a bearer
// token. A bad or expired token is treated like no token at all.
func SessionLoader(v SessionVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := verifyFirst(v, tokensFrom(c))
		if !ok {
			c.Next()
			return
		}

		c.Set(CtxSession, s)
		c.Request = c.Request.WithContext(actorctx.WithSession(c.Request.Context(), s))

		c.Next()
	}
}

// RequireSession rejects API calls that need an identity.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := SessionFromContext(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":    "unauthorized",
					"message": "Unauthorized",
				},
			})
			return
		}
		c.Next()
	}
}

func SessionFromContext(c *gin.Context) (auth.Session, bool) {
	v, ok := c.Get(CtxSession)
	if !ok {
		return auth.Session{}, false
	}
	s, ok := v.(auth.Session)
	return s, ok && s.UserID != ""
}

// tokensFrom lists the cookie token before the bearer token.
func tokensFrom(c *gin.Context) []string {
	var out []string
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		out = append(out, cookie)
	}

	h := c.GetHeader("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		if tok := strings.TrimSpace(strings.TrimPrefix(h, "Bearer ")); tok != "" {
			out = append(out, tok)
		}
	}

	return out
}

func verifyFirst(v SessionVerifier, tokens []string) (auth.Session, bool) {
	for _, raw := range tokens {
		if s, err := v.VerifySession(raw); err == nil {
			return s, true
		}
	}
	return auth.Session{}, false
}
