// config.go - Handles configuration for the project

package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration values, read from the environment.
type Config struct {
	Port     string // HTTP listen port
	Env      string // development / production
	LogLevel string // zap level name

	DatabaseURL string // Postgres DSN or URL (Supabase); takes precedence over DBPath
	DBPath      string // SQLite file used when DatabaseURL is empty

	SupabaseURL         string
	SupabaseJWTSecret   string // Shared secret Supabase signs access tokens with
	SupabaseJWTAudience string // Expected "aud" claim; empty disables the check

	CreemAPIKey        string
	CreemAPIURL        string
	CreemProductID     string // Default product for checkout sessions
	CreemWebhookSecret string // Empty disables webhook signature verification
	PaymentSuccessURL  string

	RateLimitRPS   int
	RateLimitBurst int
	HTTPTimeout    time.Duration // Outbound HTTP timeout (Creem)
}

// Load reads config from environment variables or uses defaults.
// A .env file in the working directory is loaded first when present.
func Load() *Config {
	_ = godotenv.Load() // missing .env is fine, real env wins anyway

	return &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("APP_ENV", "production"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		DBPath:      getEnv("DB_PATH", "data.db"),

		SupabaseURL:         getEnv("SUPABASE_URL", ""),
		SupabaseJWTSecret:   getEnv("SUPABASE_JWT_SECRET", getEnv("JWT_SECRET", "")),
		SupabaseJWTAudience: getEnv("SUPABASE_JWT_AUDIENCE", ""),

		CreemAPIKey:        getEnv("CREEM_API_KEY", ""),
		CreemAPIURL:        getEnv("CREEM_API_URL", "https://api.creem.io"),
		CreemProductID:     getEnv("CREEM_PRODUCT_ID", ""),
		CreemWebhookSecret: getEnv("CREEM_WEBHOOK_SECRET", ""),
		PaymentSuccessURL:  getEnv("PAYMENT_SUCCESS_URL", ""),

		RateLimitRPS:   getEnvAsInt("RATE_LIMIT_RPS", 20),
		RateLimitBurst: getEnvAsInt("RATE_LIMIT_BURST", 40),
		HTTPTimeout:    getEnvAsDuration("HTTP_TIMEOUT", 10*time.Second),
	}
}

// DSN returns the connection string database.Connect should use.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DBPath
}

// IsDevelopment reports whether the service runs with development defaults.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development" || c.Env == "dev"
}

func getEnv(key, fallback string) string { // Helper to get env var or fallback
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
