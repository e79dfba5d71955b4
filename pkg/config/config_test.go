package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "mawid-client", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())

	assert.Equal(t, "http://localhost:8080/api/v1", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)

	assert.Equal(t, 24*time.Hour, cfg.Session.TokenTTL)
	assert.Equal(t, 60*time.Second, cfg.Session.ExpiryCheckInterval)

	assert.Equal(t, filepath.Join(".mawid", "state.db"), cfg.State.Path)
	assert.False(t, cfg.OTel.Enabled)
}

func TestLoadWithPath(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	content := `APP_ENVIRONMENT=production
API_BASE_URL=https://api.mawid.example.com/api/v1
API_TIMEOUT=5s
SESSION_TOKEN_TTL=12h
`
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	cfg, err := LoadWithPath(envFile)
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "https://api.mawid.example.com/api/v1", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, 12*time.Hour, cfg.Session.TokenTTL)
	// Untouched keys keep their defaults.
	assert.Equal(t, 60*time.Second, cfg.Session.ExpiryCheckInterval)
}

func TestLoadWithPath_MissingFile(t *testing.T) {
	_, err := LoadWithPath(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			App: AppConfig{Name: "mawid-client"},
			API: APIConfig{BaseURL: "http://localhost:8080/api/v1", Timeout: 10 * time.Second},
			Session: SessionConfig{
				TokenTTL:            24 * time.Hour,
				ExpiryCheckInterval: time.Minute,
			},
			State: StateConfig{Path: "state.db"},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing app name", func(c *Config) { c.App.Name = "" }},
		{"bad base url", func(c *Config) { c.API.BaseURL = "not a url" }},
		{"relative base url", func(c *Config) { c.API.BaseURL = "/api/v1" }},
		{"zero timeout", func(c *Config) { c.API.Timeout = 0 }},
		{"zero token ttl", func(c *Config) { c.Session.TokenTTL = 0 }},
		{"zero check interval", func(c *Config) { c.Session.ExpiryCheckInterval = 0 }},
		{"empty state path", func(c *Config) { c.State.Path = "" }},
	}

	require.NoError(t, valid().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
