package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the CLI looks for its config when --config is unset.
const DefaultPath = "smartdir.yaml"

// Config holds all smartdir configuration.
type Config struct {
	// Dashboard and CLI client of the /api surface
	API APIConfig `yaml:"api"`

	// Same-origin gateway in front of the backend /db router
	Gateway GatewayConfig `yaml:"gateway"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`

	// Terminal UI
	UI UIConfig `yaml:"ui"`
}

// APIConfig configures the REST client.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

// GatewayConfig configures the API gateway.
type GatewayConfig struct {
	Listen     string `yaml:"listen"`
	BackendURL string `yaml:"backend_url"`
	Timeout    string `yaml:"timeout"`
}

// UIConfig holds terminal presentation settings.
type UIConfig struct {
	DarkMode bool `yaml:"dark_mode"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:3000",
			Timeout: "15s",
		},

		Gateway: GatewayConfig{
			Listen:     ":8080",
			BackendURL: "http://localhost:8000",
			Timeout:    "30s",
		},

		Logging: LoggingConfig{
			Level:      "info",
			Format:     "json",
			File:       "smartdir.log",
			Console:    false,
			MaxSizeMB:  100,
			MaxBackups: 3,
			MaxAgeDays: 30,
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Missing file: defaults plus environment
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("SMARTDIR_API_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("SMARTDIR_BACKEND_URL"); v != "" {
		c.Gateway.BackendURL = v
	}
	if v := os.Getenv("SMARTDIR_LISTEN"); v != "" {
		c.Gateway.Listen = v
	}
	if v := os.Getenv("SMARTDIR_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("SMARTDIR_LOG_FILE"); v != "" {
		c.Logging.File = v
	}
	if v := os.Getenv("SMARTDIR_DARK_MODE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.UI.DarkMode = b
		}
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := validateURL("api.base_url", c.API.BaseURL); err != nil {
		return err
	}
	if err := validateURL("gateway.backend_url", c.Gateway.BackendURL); err != nil {
		return err
	}
	if _, err := time.ParseDuration(c.API.Timeout); c.API.Timeout != "" && err != nil {
		return fmt.Errorf("invalid api.timeout %q: %w", c.API.Timeout, err)
	}
	if _, err := time.ParseDuration(c.Gateway.Timeout); c.Gateway.Timeout != "" && err != nil {
		return fmt.Errorf("invalid gateway.timeout %q: %w", c.Gateway.Timeout, err)
	}
	if !validLevel(c.Logging.Level) {
		return fmt.Errorf("invalid logging.level: %s (valid: %v)", c.Logging.Level, ValidLevels)
	}
	if !validFormat(c.Logging.Format) {
		return fmt.Errorf("invalid logging.format: %s (valid: %v)", c.Logging.Format, ValidFormats)
	}
	return nil
}

func validateURL(field, raw string) error {
	if raw == "" {
		return fmt.Errorf("%s is required", field)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", field, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid %s: scheme must be http or https, got %q", field, u.Scheme)
	}
	return nil
}

// GetAPITimeout returns the client timeout as a duration.
func (c *Config) GetAPITimeout() time.Duration {
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil {
		return 15 * time.Second
	}
	return d
}

// GetGatewayTimeout returns the upstream timeout of the gateway as a duration.
func (c *Config) GetGatewayTimeout() time.Duration {
	d, err := time.ParseDuration(c.Gateway.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}
