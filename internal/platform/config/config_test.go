package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "JWT_EXPIRY_DURATION", "REPORT_CACHE_TTL", "AUTH_RATE_LIMIT", "CORS_ALLOWED_ORIGINS", "JWT_SECRET"} {
		t.Setenv(key, "")
	}
	cfg, err := LoadConfig()
	assert.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, time.Hour, cfg.JWTExpiryDuration)
	assert.Equal(t, 5*time.Minute, cfg.ReportCacheTTL)
	assert.Equal(t, "5-M", cfg.AuthRateLimit)
	assert.Equal(t, "300-M", cfg.APIRateLimit)
	assert.Equal(t, "@hourly", cfg.OverdueScanCron)
	assert.Equal(t, "file://migrations", cfg.MigrationsPath)
	assert.Equal(t, insecureJWTSecret, cfg.JWTSecret)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("IS_PRODUCTION", "true")
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("JWT_EXPIRY_DURATION", "30m")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("REPORT_CACHE_TTL", "90s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com, https://admin.example.com,")

	cfg, err := LoadConfig()
	assert.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.IsProduction)
	assert.Equal(t, "0123456789abcdef0123456789abcdef", cfg.JWTSecret)
	assert.Equal(t, 30*time.Minute, cfg.JWTExpiryDuration)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.Equal(t, 90*time.Second, cfg.ReportCacheTTL)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSAllowedOrigins)
}

func TestInvalidDurationFallsBack(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("JWT_EXPIRY_DURATION", "soon")
	v.Set("REPORT_CACHE_TTL", "-1m")

	cfg := fromViper(v)
	assert.Equal(t, time.Hour, cfg.JWTExpiryDuration)
	assert.Equal(t, 5*time.Minute, cfg.ReportCacheTTL)
}
