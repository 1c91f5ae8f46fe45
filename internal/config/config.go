package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env   string
	Port  int
	DBURL string

	AuthSecret string
	SessionTTL time.Duration

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	RedisAddr          string
	RedisPassword      string
	RedisDB            int
	StorefrontCacheTTL time.Duration

	UploadBucket    string
	UploadEndpoint  string
	UploadRegion    string
	UploadAccessKey string
	UploadSecretKey string
	UploadPathStyle bool

	FeaturesFile string

	AdminEmail    string
	AdminPassword string
	AdminName     string

	OTLPEndpoint   string
	AllowedOrigins []string
}

func Load() Config {
	// a missing .env is fine, real deployments set the environment directly
	_ = godotenv.Load()

	return Config{
		Env:   getEnv("APP_ENV", "dev"),
		Port:  getEnvInt("PORT", 8080),
		DBURL: buildDBURL(),

		AuthSecret: getEnv("AUTH_SECRET", ""),
		SessionTTL: getEnvDuration("SESSION_TTL", 30*24*time.Hour),

		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", "http://localhost:8080/api/auth/google/callback"),

		RedisAddr:          getEnv("REDIS_ADDR", ""),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		RedisDB:            getEnvInt("REDIS_DB", 0),
		StorefrontCacheTTL: getEnvDuration("STOREFRONT_CACHE_TTL", 60*time.Second),

		UploadBucket:    getEnv("UPLOAD_BUCKET", ""),
		UploadEndpoint:  getEnv("UPLOAD_ENDPOINT", ""),
		UploadRegion:    getEnv("UPLOAD_REGION", "us-east-1"),
		UploadAccessKey: getEnv("UPLOAD_ACCESS_KEY_ID", ""),
		UploadSecretKey: getEnv("UPLOAD_SECRET_ACCESS_KEY", ""),
		UploadPathStyle: getEnvBool("UPLOAD_PATH_STYLE", false),

		FeaturesFile: getEnv("FEATURES_FILE", "features.yaml"),

		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		AdminName:     getEnv("ADMIN_NAME", "Site Owner"),

		OTLPEndpoint:   getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "")),
	}
}

// GoogleEnabled reports whether the Google provider should be offered at all.
func (c Config) GoogleEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}

// SecureCookies is off only where the site is served over plain http.
func (c Config) SecureCookies() bool {
	return c.Env != "dev" && c.Env != "test"
}

func (c Config) UploadsEnabled() bool {
	return c.UploadBucket != ""
}

func (c Config) Validate() error {
	if len(c.AuthSecret) < 32 {
		return fmt.Errorf("AUTH_SECRET must be at least 32 characters")
	}
	if (c.GoogleClientID == "") != (c.GoogleClientSecret == "") {
		return fmt.Errorf("GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET must be set together")
	}
	if c.GoogleEnabled() && c.GoogleRedirectURL == "" {
		return fmt.Errorf("GOOGLE_REDIRECT_URL is required when Google sign-in is enabled")
	}
	if c.UploadsEnabled() && (c.UploadAccessKey == "") != (c.UploadSecretKey == "") {
		return fmt.Errorf("UPLOAD_ACCESS_KEY_ID and UPLOAD_SECRET_ACCESS_KEY must be set together")
	}
	if (c.AdminEmail == "") != (c.AdminPassword == "") {
		return fmt.Errorf("ADMIN_EMAIL and ADMIN_PASSWORD must be set together")
	}
	return nil
}

func buildDBURL() string {
	if url := getEnv("DATABASE_URL", ""); url != "" {
		return url
	}

	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "mocktail")
	pass := getEnv("DB_PASSWORD", "mocktail")
	name := getEnv("DB_NAME", "mocktail")
	ssl := getEnv("DB_SSLMODE", "disable")

	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=" + ssl
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)

		if err != nil {
			fmt.Println(err)
			return fallback
		}

		return num
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fallback
		}
		return b
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			fmt.Println(err)
			return fallback
		}
		return d
	}
	return fallback
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	out := make([]string, 0)
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
