package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"SMARTDIR_API_URL", "SMARTDIR_BACKEND_URL", "SMARTDIR_LISTEN",
		"SMARTDIR_LOG_LEVEL", "SMARTDIR_LOG_FILE", "SMARTDIR_DARK_MODE",
	} {
		t.Setenv(k, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.API.BaseURL != "http://localhost:3000" {
		t.Errorf("expected API.BaseURL=http://localhost:3000, got %s", cfg.API.BaseURL)
	}
	if cfg.Gateway.Listen != ":8080" {
		t.Errorf("expected Gateway.Listen=:8080, got %s", cfg.Gateway.Listen)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestConfig_SaveLoad(t *testing.T) {
	clearEnv(t)

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "smartdir.yaml")

	cfg := DefaultConfig()
	cfg.API.BaseURL = "https://directory.example.com"
	cfg.Logging.Level = "debug"
	cfg.UI.DarkMode = true

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.API.BaseURL != "https://directory.example.com" {
		t.Errorf("expected BaseURL to round-trip, got %s", loaded.API.BaseURL)
	}
	if loaded.Logging.Level != "debug" {
		t.Errorf("expected Level=debug, got %s", loaded.Logging.Level)
	}
	if !loaded.UI.DarkMode {
		t.Error("expected DarkMode=true")
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Gateway.BackendURL != "http://localhost:8000" {
		t.Errorf("expected default backend URL, got %s", cfg.Gateway.BackendURL)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "smartdir.yaml")
	if err := os.WriteFile(path, []byte("api:\n  base_url: http://api.internal\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.API.BaseURL != "http://api.internal" {
		t.Errorf("expected file value, got %s", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != "15s" {
		t.Errorf("expected default timeout to survive, got %s", cfg.API.Timeout)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "smartdir.yaml")
	if err := os.WriteFile(path, []byte("api: [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty api url", func(c *Config) { c.API.BaseURL = "" }},
		{"bad scheme", func(c *Config) { c.API.BaseURL = "ftp://x" }},
		{"bad backend", func(c *Config) { c.Gateway.BackendURL = "::" }},
		{"bad timeout", func(c *Config) { c.API.Timeout = "soon" }},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestConfig_ValidateAcceptsFormats(t *testing.T) {
	for _, f := range []string{"", "json", "console", "TEXT"} {
		cfg := DefaultConfig()
		cfg.Logging.Format = f
		if err := cfg.Validate(); err != nil {
			t.Errorf("format %q rejected: %v", f, err)
		}
	}
}

func TestTimeouts(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.GetAPITimeout().String(); got != "15s" {
		t.Errorf("expected 15s, got %s", got)
	}
	cfg.Gateway.Timeout = "garbage"
	if got := cfg.GetGatewayTimeout().String(); got != "30s" {
		t.Errorf("expected fallback 30s, got %s", got)
	}
}
