// Package config loads the storefront configuration from YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration.
type Config struct {
	Backend  Backend  `yaml:"backend"`
	Payments Payments `yaml:"payments"`
	Log      Log      `yaml:"log"`
}

// Backend configures the managed-backend client.
type Backend struct {
	ProjectURL        string   `yaml:"project_url"`
	APIKey            string   `yaml:"api_key"`
	AllowedHosts      []string `yaml:"allowed_hosts"`
	TimeoutSeconds    int      `yaml:"timeout_seconds"`
	RequestsPerSecond float64  `yaml:"requests_per_second"`
}

// Payments configures the payment-intent endpoint and checkout defaults.
type Payments struct {
	IntentURL    string `yaml:"intent_url"`
	MerchantName string `yaml:"merchant_name"`
	Currency     string `yaml:"currency"`
}

// Log configures logging.
type Log struct {
	Level string `yaml:"level"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Payments: Payments{
			MerchantName: "Lumenshop",
			Currency:     "INR",
		},
		Log: Log{Level: "info"},
	}
}

// Load reads and validates the configuration at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Backend.ProjectURL == "" {
		return nil, fmt.Errorf("backend.project_url is required")
	}
	if cfg.Backend.APIKey == "" {
		return nil, fmt.Errorf("backend.api_key is required")
	}
	return cfg, nil
}

// LoadOrDefault loads the configuration or falls back to defaults when the
// file does not exist.
func LoadOrDefault(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		return Default()
	}
	return cfg
}
