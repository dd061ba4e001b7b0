package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("JWT_SECRET_KEY", "signing-key")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, 8, cfg.App.Workers)
	assert.Equal(t, "1h", cfg.JWT.AccessExpiration)
	assert.True(t, cfg.Cron.Enabled)
	assert.Equal(t, time.Hour, cfg.Cron.Interval)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PAYROLL_WORKERS", "3")
	t.Setenv("CRON_ENABLED", "false")
	t.Setenv("CRON_INTERVAL", "15m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 3, cfg.App.Workers)
	assert.False(t, cfg.Cron.Enabled)
	assert.Equal(t, 15*time.Minute, cfg.Cron.Interval)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"missing password", map[string]string{"DB_PASSWORD": ""}, "DB_PASSWORD is required"},
		{"missing secret", map[string]string{"JWT_SECRET_KEY": ""}, "JWT_SECRET_KEY is required"},
		{"bad port", map[string]string{"DB_PORT": "abc"}, "invalid DB_PORT"},
		{"zero workers", map[string]string{"PAYROLL_WORKERS": "0"}, "PAYROLL_WORKERS must be at least 1"},
		{"bad interval", map[string]string{"CRON_INTERVAL": "soon"}, "invalid CRON_INTERVAL"},
		{"bad expiration", map[string]string{"JWT_ACCESS_EXPIRATION_TIME": "tomorrow"}, "invalid JWT_ACCESS_EXPIRATION_TIME"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestDatabaseURL(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Host: "db", Port: 5433, User: "payroll", Password: "pw", Name: "hr", SSLMode: "require",
	}}

	assert.Equal(t, "postgres://payroll:pw@db:5433/hr?sslmode=require", cfg.DatabaseURL())
}

func TestAppConfig_SlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, AppConfig{LogLevel: "debug"}.SlogLevel())
	assert.Equal(t, slog.LevelWarn, AppConfig{LogLevel: "WARN"}.SlogLevel())
	assert.Equal(t, slog.LevelInfo, AppConfig{LogLevel: "chatty"}.SlogLevel())
}
