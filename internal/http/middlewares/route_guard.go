package middlewares

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

type GuardConfig struct {
	LoginPath string   // default "/login"
	HomePath  string   // default "/dashboard"
	Protected []string // default ["/dashboard"]
	APIPrefix string   // default "/api"
}

func (cfg GuardConfig) withDefaults() GuardConfig {
	if cfg.LoginPath == "" {
		cfg.LoginPath = "/login"
	}
	if cfg.HomePath == "" {
		cfg.HomePath = "/dashboard"
	}
	if len(cfg.Protected) == 0 {
		cfg.Protected = []string{"/dashboard"}
	}
	if cfg.APIPrefix == "" {
		cfg.APIPrefix = "/api"
	}
	return cfg
}

// RouteGuard only checks that a session exists. Role checks happen where
// data changes. It must run after SessionLoader.
//
//   - protected page, no session: redirect to login with callbackUrl
//   - login page, with session: redirect to the dashboard
//   - API routes and everything else: pass through
func RouteGuard(cfg GuardConfig) gin.HandlerFunc {
	cfg = cfg.withDefaults()

	return func(c *gin.Context) {
		path := c.Request.URL.Path

		if hasPathPrefix(path, cfg.APIPrefix) {
			c.Next()
			return
		}

		_, authed := SessionFromContext(c)

		if !authed && isProtected(path, cfg.Protected) {
			target := cfg.LoginPath + "?callbackUrl=" + url.QueryEscape(path)
			c.Redirect(http.StatusFound, target)
			c.Abort()
			return
		}

		if authed && path == cfg.LoginPath {
			c.Redirect(http.StatusFound, cfg.HomePath)
			c.Abort()
			return
		}

		c.Next()
	}
}

func isProtected(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if hasPathPrefix(path, p) {
			return true
		}
	}
	return false
}

// hasPathPrefix matches whole segments, so /dashboards is not under /dashboard.
func hasPathPrefix(path, prefix string) bool {
	if path == prefix {
		return true
	}
	return strings.HasPrefix(path, strings.TrimSuffix(prefix, "/")+"/")
}
