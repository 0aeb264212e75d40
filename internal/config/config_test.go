package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "data/facfolio.db", cfg.DBPath)
	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
	assert.Equal(t, "http://localhost:8080/auth/google/callback", cfg.GoogleCallbackURL)
	assert.False(t, cfg.OAuthEnabled())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("BASE_URL", "https://facfolio.example.com")
	t.Setenv("GOOGLE_CLIENT_ID", "client-id")
	t.Setenv("GOOGLE_CLIENT_SECRET", "client-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "https://facfolio.example.com", cfg.BaseURL)
	assert.Equal(t, "https://facfolio.example.com/auth/google/callback", cfg.GoogleCallbackURL)
	assert.True(t, cfg.OAuthEnabled())
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("PORT", "not-a-number")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_ExplicitCallbackWins(t *testing.T) {
	t.Setenv("GOOGLE_CALLBACK_URL", "https://other.example.com/cb")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://other.example.com/cb", cfg.GoogleCallbackURL)
}
