package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/gachapon_test")
	t.Setenv("PORT", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("CLIENT_ORIGIN", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost/gachapon_test", cfg.DatabaseURL)
	assert.Equal(t, "4000", cfg.Port)
	assert.Equal(t, "change-this-secret", cfg.JWTSecret)
	assert.Equal(t, []string{"http://localhost:5500"}, cfg.ClientOrigins)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/gachapon_test")
	t.Setenv("PORT", "8080")
	t.Setenv("JWT_SECRET", "super-secret")
	t.Setenv("CLIENT_ORIGIN", "https://gachapon.example.com, http://localhost:3000")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "super-secret", cfg.JWTSecret)
	assert.Equal(t, []string{"https://gachapon.example.com", "http://localhost:3000"}, cfg.ClientOrigins)
}

func TestLoadConfigMissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}
