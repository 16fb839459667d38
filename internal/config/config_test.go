package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
backend:
  project_url: https://project.example.co
  api_key: anon-key
  timeout_seconds: 10
  requests_per_second: 4
payments:
  intent_url: https://merchant.example.com
log:
  level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://project.example.co", cfg.Backend.ProjectURL)
	assert.Equal(t, "anon-key", cfg.Backend.APIKey)
	assert.Equal(t, 10, cfg.Backend.TimeoutSeconds)
	assert.Equal(t, 4.0, cfg.Backend.RequestsPerSecond)
	assert.Equal(t, "https://merchant.example.com", cfg.Payments.IntentURL)
	assert.Equal(t, "debug", cfg.Log.Level)

	// Defaults survive a partial file.
	assert.Equal(t, "Lumenshop", cfg.Payments.MerchantName)
	assert.Equal(t, "INR", cfg.Payments.Currency)
}

func TestLoadRequiresBackendCredentials(t *testing.T) {
	_, err := Load(writeConfig(t, "backend:\n  api_key: anon-key\n"))
	assert.ErrorContains(t, err, "project_url")

	_, err = Load(writeConfig(t, "backend:\n  project_url: https://p.example.co\n"))
	assert.ErrorContains(t, err, "api_key")
}

func TestLoadOrDefaultFallsBack(t *testing.T) {
	cfg := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "Lumenshop", cfg.Payments.MerchantName)
}
