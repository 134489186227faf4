package config

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Env      string
	Port     string
	LogLevel string

	// FrontendBaseURL is where checkout redirects land after the gateway
	// finishes, e.g. https://app.example.com.
	FrontendBaseURL string
}

type DatabaseConfig struct {
	URL string
}

type IdentityConfig struct {
	// SessionSecret verifies HS256 session tokens minted by the identity
	// provider.
	SessionSecret string
	WebhookSecret string
}

type PaymentConfig struct {
	SecretKey     string
	BaseURL       string
	WebhookSecret string
}

type CircleConfig struct {
	AdminToken    string
	AdminBaseURL  string
	MemberBaseURL string
}

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Identity IdentityConfig
	Payment  PaymentConfig
	Circle   CircleConfig
}

// Load reads configuration from the environment, with a .env file as the
// local-development source. Missing required keys are reported together so a
// fresh deploy fails once with the full list.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	cfg := &Config{
		App: AppConfig{
			Env:             getEnv("APP_ENV", "local"),
			Port:            getEnv("PORT", "8080"),
			LogLevel:        getEnv("LOG_LEVEL", "info"),
			FrontendBaseURL: getEnv("FRONTEND_BASE_URL", "http://localhost:3000"),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("POSTGRES_URL"),
		},
		Identity: IdentityConfig{
			SessionSecret: os.Getenv("IDENTITY_SESSION_SECRET"),
			WebhookSecret: os.Getenv("IDENTITY_WEBHOOK_SECRET"),
		},
		Payment: PaymentConfig{
			SecretKey:     os.Getenv("PAYMENT_SECRET_KEY"),
			BaseURL:       getEnv("PAYMENT_API_BASE_URL", "https://api.payment.example.com"),
			WebhookSecret: os.Getenv("PAYMENT_WEBHOOK_SECRET"),
		},
		Circle: CircleConfig{
			AdminToken:    os.Getenv("CIRCLE_ADMIN_TOKEN"),
			AdminBaseURL:  getEnv("CIRCLE_ADMIN_API_BASE_URL", "https://app.circle.so/api/admin/v2"),
			MemberBaseURL: getEnv("CIRCLE_MEMBER_API_BASE_URL", "https://app.circle.so/api/headless/v1"),
		},
	}

	missing := missingKeys(map[string]string{
		"POSTGRES_URL":            cfg.Database.URL,
		"IDENTITY_SESSION_SECRET": cfg.Identity.SessionSecret,
		"IDENTITY_WEBHOOK_SECRET": cfg.Identity.WebhookSecret,
		"PAYMENT_SECRET_KEY":      cfg.Payment.SecretKey,
		"PAYMENT_WEBHOOK_SECRET":  cfg.Payment.WebhookSecret,
		"CIRCLE_ADMIN_TOKEN":      cfg.Circle.AdminToken,
	})
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func missingKeys(required map[string]string) []string {
	var missing []string
	for key, val := range required {
		if val == "" {
			missing = append(missing, key)
		}
	}
	sort.Strings(missing)
	return missing
}
