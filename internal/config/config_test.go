package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestLoadDefaults tests that default configuration values are loaded correctly.
func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("nonexistent.yaml")
	if err != nil {
		t.Fatalf("Failed to load defaults: %v", err)
	}

	// Aria defaults
	if cfg.Aria.PageSize != 1000 {
		t.Errorf("Expected default page size 1000, got %d", cfg.Aria.PageSize)
	}
	if cfg.Aria.Timeout != 60*time.Second {
		t.Errorf("Expected default aria timeout 60s, got %v", cfg.Aria.Timeout)
	}
	if cfg.Aria.Insecure {
		t.Errorf("Expected default insecure false, got %v", cfg.Aria.Insecure)
	}

	// Catalog defaults
	if cfg.Catalog.URL != DefaultCatalogURL {
		t.Errorf("Expected default catalog url '%s', got '%s'", DefaultCatalogURL, cfg.Catalog.URL)
	}
	if cfg.Catalog.Program != "server" {
		t.Errorf("Expected default program 'server', got '%s'", cfg.Catalog.Program)
	}
	if cfg.Catalog.Limit != 20 {
		t.Errorf("Expected default limit 20, got %d", cfg.Catalog.Limit)
	}
	if cfg.Catalog.Timeout != 30*time.Second {
		t.Errorf("Expected default catalog timeout 30s, got %v", cfg.Catalog.Timeout)
	}
	if cfg.Catalog.Concurrency != 1 {
		t.Errorf("Expected default concurrency 1, got %d", cfg.Catalog.Concurrency)
	}

	// Check defaults
	if cfg.Check.TargetRelease != "ESXi 9.0" {
		t.Errorf("Expected default target 'ESXi 9.0', got '%s'", cfg.Check.TargetRelease)
	}
	if cfg.Check.Output != "server_export.csv" {
		t.Errorf("Expected default output 'server_export.csv', got '%s'", cfg.Check.Output)
	}
	if cfg.Check.Format != "table" {
		t.Errorf("Expected default format 'table', got '%s'", cfg.Check.Format)
	}

	// Logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("Expected default logging level 'info', got '%s'", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("Expected default logging format 'text', got '%s'", cfg.Logging.Format)
	}
	if cfg.Logging.Output != "stderr" {
		t.Errorf("Expected default logging output 'stderr', got '%s'", cfg.Logging.Output)
	}
}

// TestLoadFile tests that values from a YAML file override defaults.
func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `aria:
  host: aria.example.com
  username: admin
  domain: LOCAL
  insecure: true
catalog:
  concurrency: 4
  timeout: 5s
check:
  target_release: ESXi 8.0 U3
  format: json
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Aria.Host != "aria.example.com" {
		t.Errorf("Expected host 'aria.example.com', got '%s'", cfg.Aria.Host)
	}
	if !cfg.Aria.Insecure {
		t.Errorf("Expected insecure true")
	}
	if cfg.Catalog.Concurrency != 4 {
		t.Errorf("Expected concurrency 4, got %d", cfg.Catalog.Concurrency)
	}
	if cfg.Catalog.Timeout != 5*time.Second {
		t.Errorf("Expected timeout 5s, got %v", cfg.Catalog.Timeout)
	}
	if cfg.Check.TargetRelease != "ESXi 8.0 U3" {
		t.Errorf("Expected target 'ESXi 8.0 U3', got '%s'", cfg.Check.TargetRelease)
	}
	// Untouched keys keep their defaults
	if cfg.Catalog.Limit != 20 {
		t.Errorf("Expected default limit 20, got %d", cfg.Catalog.Limit)
	}
}

// TestValidation tests the configuration validation logic.
func TestValidation(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Aria: AriaConfig{PageSize: 1000},
			Catalog: CatalogConfig{
				URL:         DefaultCatalogURL,
				Limit:       20,
				Timeout:     30 * time.Second,
				RateLimit:   2,
				Concurrency: 1,
			},
			Check: CheckConfig{TargetRelease: "ESXi 9.0", Format: "table"},
		}
	}

	tests := []struct {
		name      string
		mutate    func(*Config)
		expectErr bool
		errMsg    string
	}{
		{
			name:   "valid configuration",
			mutate: func(*Config) {},
		},
		{
			name:      "invalid page size",
			mutate:    func(c *Config) { c.Aria.PageSize = 0 },
			expectErr: true,
			errMsg:    "invalid aria page size",
		},
		{
			name:      "missing catalog url",
			mutate:    func(c *Config) { c.Catalog.URL = "" },
			expectErr: true,
			errMsg:    "catalog url is required",
		},
		{
			name:      "zero timeout",
			mutate:    func(c *Config) { c.Catalog.Timeout = 0 },
			expectErr: true,
			errMsg:    "catalog timeout must be positive",
		},
		{
			name:      "zero concurrency",
			mutate:    func(c *Config) { c.Catalog.Concurrency = 0 },
			expectErr: true,
			errMsg:    "invalid catalog concurrency",
		},
		{
			name:      "missing target release",
			mutate:    func(c *Config) { c.Check.TargetRelease = "" },
			expectErr: true,
			errMsg:    "target release is required",
		},
		{
			name:      "unknown format",
			mutate:    func(c *Config) { c.Check.Format = "xml" },
			expectErr: true,
			errMsg:    "invalid output format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := validate(c)
			if tt.expectErr {
				if err == nil {
					t.Errorf("Expected error containing '%s', got nil", tt.errMsg)
				} else if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("Expected error containing '%s', got '%s'", tt.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
		})
	}
}

// TestBaseURL tests the BaseURL method of AriaConfig.
func TestBaseURL(t *testing.T) {
	tests := []struct {
		host     string
		expected string
	}{
		{"aria.example.com", "https://aria.example.com"},
		{"aria.example.com/", "https://aria.example.com"},
		{"10.0.0.5", "https://10.0.0.5"},
		{"http://127.0.0.1:8443", "http://127.0.0.1:8443"},
		{"https://aria.example.com/", "https://aria.example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			c := AriaConfig{Host: tt.host}
			if got := c.BaseURL(); got != tt.expected {
				t.Errorf("Expected '%s', got '%s'", tt.expected, got)
			}
		})
	}
}

// TestEnvironmentVariableOverride tests that environment variables override config values.
func TestEnvironmentVariableOverride(t *testing.T) {
	t.Setenv("VC_ARIA_HOST", "aria.env.local")
	t.Setenv("VC_CATALOG_CONCURRENCY", "3")
	t.Setenv("VC_CHECK_TARGET_RELEASE", "ESXi 8.0")

	cfg, err := Load("nonexistent.yaml")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Aria.Host != "aria.env.local" {
		t.Errorf("Expected host 'aria.env.local' from environment, got '%s'", cfg.Aria.Host)
	}
	if cfg.Catalog.Concurrency != 3 {
		t.Errorf("Expected concurrency 3 from environment, got %d", cfg.Catalog.Concurrency)
	}
	if cfg.Check.TargetRelease != "ESXi 8.0" {
		t.Errorf("Expected target 'ESXi 8.0' from environment, got '%s'", cfg.Check.TargetRelease)
	}
}

// TestLoad_Independent tests that every Load returns its own configuration.
func TestLoad_Independent(t *testing.T) {
	first, err := Load("nonexistent.yaml")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	second, err := Load("nonexistent.yaml")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	first.Catalog.Limit = 99
	if second.Catalog.Limit != 20 {
		t.Errorf("Expected second config to keep limit 20, got %d", second.Catalog.Limit)
	}
}
