package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const insecureJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	MigrationsPath    string
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Redis backs the report cache and the job queue; empty disables both.
	RedisURL        string
	ReportCacheTTL  time.Duration
	OverdueScanCron string

	// Rates use ulule/limiter's formatted notation, e.g. "5-M".
	AuthRateLimit      string
	APIRateLimit       string
	CORSAllowedOrigins []string

	PostHogAPIKey   string
	PostHogEndpoint string

	ChartOfAccountsFile    string
	BootstrapAdminUsername string
	BootstrapAdminPassword string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("JWT_SECRET", insecureJWTSecret)
	v.SetDefault("JWT_EXPIRY_DURATION", "1h")
	v.SetDefault("JWT_ISSUER", "distributor-ledger-app")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("REPORT_CACHE_TTL", "5m")
	v.SetDefault("OVERDUE_SCAN_CRON", "@hourly")
	v.SetDefault("AUTH_RATE_LIMIT", "5-M")
	v.SetDefault("API_RATE_LIMIT", "300-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("POSTHOG_ENDPOINT", "https://us.i.posthog.com")
	v.SetDefault("CHART_OF_ACCOUNTS_FILE", "config/chart_of_accounts.yaml")
	v.SetDefault("BOOTSTRAP_ADMIN_USERNAME", "")
	v.SetDefault("BOOTSTRAP_ADMIN_PASSWORD", "")
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	return fromViper(v), nil
}

func durationOr(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		slog.Warn("Invalid duration, using default", slog.String("key", key), slog.String("value", raw), slog.String("default", fallback.String()))
		return fallback
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{
		DatabaseURL:            v.GetString("PGSQL_URL"),
		Port:                   v.GetString("PORT"),
		IsProduction:           v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:          v.GetBool("ENABLE_DB_CHECK"),
		MigrationsPath:         v.GetString("MIGRATIONS_PATH"),
		JWTSecret:              v.GetString("JWT_SECRET"),
		JWTExpiryDuration:      durationOr(v, "JWT_EXPIRY_DURATION", time.Hour),
		JWTIssuer:              v.GetString("JWT_ISSUER"),
		RedisURL:               v.GetString("REDIS_URL"),
		ReportCacheTTL:         durationOr(v, "REPORT_CACHE_TTL", 5*time.Minute),
		OverdueScanCron:        v.GetString("OVERDUE_SCAN_CRON"),
		AuthRateLimit:          v.GetString("AUTH_RATE_LIMIT"),
		APIRateLimit:           v.GetString("API_RATE_LIMIT"),
		CORSAllowedOrigins:     splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		PostHogAPIKey:          v.GetString("POSTHOG_API_KEY"),
		PostHogEndpoint:        v.GetString("POSTHOG_ENDPOINT"),
		ChartOfAccountsFile:    v.GetString("CHART_OF_ACCOUNTS_FILE"),
		BootstrapAdminUsername: v.GetString("BOOTSTRAP_ADMIN_USERNAME"),
		BootstrapAdminPassword: v.GetString("BOOTSTRAP_ADMIN_PASSWORD"),
	}

	if cfg.DatabaseURL == "" {
		slog.Warn("PGSQL_URL environment variable not set.")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.JWTSecret == "" || cfg.JWTSecret == insecureJWTSecret {
		cfg.JWTSecret = insecureJWTSecret
		slog.Warn("JWT_SECRET not set, using default insecure key. THIS IS NOT FOR PRODUCTION.")
	}
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "distributor-ledger-app"
	}
	if cfg.OverdueScanCron == "" {
		cfg.OverdueScanCron = "@hourly"
	}
	if cfg.RedisURL == "" {
		slog.Warn("REDIS_URL not set, report cache and background jobs are disabled.")
	}
	return cfg
}
