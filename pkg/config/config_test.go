//go:build !integration

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("CONTENT_TOKEN_KEY", "0123456789abcdef")
	t.Setenv("DB_PASSWORD", "postgres")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:8080"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 0.10, cfg.Content.Epsilon)
	assert.Equal(t, int64(10), cfg.Content.MinImpressions)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "default", cfg.Redis.RedisUsername)
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("CONTENT_EPSILON", "0.2")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("ALLOWED_ORIGINS", " https://example.nl , https://example.com ")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 0.2, cfg.Content.Epsilon)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, []string{"https://example.nl", "https://example.com"}, cfg.Server.AllowedOrigins)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing jwt secret", map[string]string{"JWT_SECRET": ""}},
		{"short token key", map[string]string{"CONTENT_TOKEN_KEY": "short"}},
		{"epsilon out of range", map[string]string{"CONTENT_EPSILON": "1.5"}},
		{"bad session ttl", map[string]string{"SESSION_TTL": "soon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
