// Package config provides configuration management for vcfcompat.
//
// This package handles loading configuration from multiple sources:
//   - YAML configuration files
//   - Environment variables (with VC_ prefix)
//   - .env files
//   - Default values
//
// # Configuration Sources Priority
//
// Configuration is loaded in the following order (later sources override earlier ones):
//  1. Default values (hardcoded)
//  2. Configuration files (./config.yaml, ./configs/config.yaml, ~/.vcfcompat/config.yaml, /etc/vcfcompat/config.yaml)
//  3. .env files
//  4. Environment variables (VC_ prefix)
//
// # Usage Example
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Aria Operations: %s\n", cfg.Aria.Host)
//
// # Environment Variables
//
// Environment variables override all other configuration sources.
// Use VC_ prefix and underscores for nested keys:
//   - VC_ARIA_HOST=aria.example.com
//   - VC_ARIA_PASSWORD=secret
//   - VC_CATALOG_CONCURRENCY=4
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultCatalogURL is the Broadcom Compatibility Guide search endpoint.
const DefaultCatalogURL = "https://compatibilityguide.broadcom.com/compguide/programs/viewResults"

// Config is the root configuration structure for vcfcompat.
type Config struct {
	// Aria contains the Aria Operations connection settings
	Aria AriaConfig `mapstructure:"aria" yaml:"aria"`

	// Catalog contains the compatibility catalog settings
	Catalog CatalogConfig `mapstructure:"catalog" yaml:"catalog"`

	// Check contains classification and export settings
	Check CheckConfig `mapstructure:"check" yaml:"check"`

	// Logging contains logging settings
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// AriaConfig contains Aria Operations connection settings.
type AriaConfig struct {
	// Host is the Aria Operations hostname, IP or base URL
	Host string `mapstructure:"host" yaml:"host"`

	// Username for token acquisition
	Username string `mapstructure:"username" yaml:"username"`

	// Domain is the authentication source (e.g. LOCAL or an AD domain)
	Domain string `mapstructure:"domain" yaml:"domain"`

	// Password for token acquisition (prompted when empty)
	Password string `mapstructure:"password" yaml:"password"`

	// Insecure disables TLS certificate verification
	Insecure bool `mapstructure:"insecure" yaml:"insecure"`

	// PageSize is the number of resources requested per page
	PageSize int `mapstructure:"page_size" yaml:"page_size"`

	// Timeout bounds every Aria Operations request
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// CatalogConfig contains compatibility catalog settings.
type CatalogConfig struct {
	// URL is the catalog search endpoint
	URL string `mapstructure:"url" yaml:"url"`

	// Program is the catalog program searched (server)
	Program string `mapstructure:"program" yaml:"program"`

	// Limit is the number of entries requested per search
	Limit int `mapstructure:"limit" yaml:"limit"`

	// Timeout bounds every catalog call; a timeout leaves the group unresolved
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`

	// RateLimit is the maximum catalog requests per second
	RateLimit float64 `mapstructure:"rate_limit" yaml:"rate_limit"`

	// Burst is the number of catalog requests allowed at once
	Burst int `mapstructure:"burst" yaml:"burst"`

	// Concurrency is the number of model groups resolved in parallel (1 = sequential)
	Concurrency int `mapstructure:"concurrency" yaml:"concurrency"`
}

// CheckConfig contains classification and export settings.
type CheckConfig struct {
	// TargetRelease is the release a host must support to be VCF 9 compatible
	TargetRelease string `mapstructure:"target_release" yaml:"target_release"`

	// Output is the CSV export path
	Output string `mapstructure:"output" yaml:"output"`

	// Format is the console format (table, json, yaml)
	Format string `mapstructure:"format" yaml:"format"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the log level (debug, info, warn, error)
	Level string `mapstructure:"level" yaml:"level"`

	// Format is the log format (json, text)
	Format string `mapstructure:"format" yaml:"format"`

	// Output is the log destination (stderr, stdout or a file path)
	Output string `mapstructure:"output" yaml:"output"`
}

// Load reads configuration from a file and environment variables.
// If cfgFile is empty, it searches for config.yaml in standard locations.
//
// Configuration precedence (highest to lowest):
//  1. Environment variables (VC_ prefix)
//  2. .env file
//  3. Configuration file
//  4. Default values
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("$HOME/.vcfcompat")
		v.AddConfigPath("/etc/vcfcompat")
	}

	if err := v.ReadInConfig(); err != nil {
		if cfgFile != "" {
			// An explicit path that does not exist falls back to defaults
			if !isFileNotFoundError(err) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		} else {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.MergeInConfig() // Ignore error if .env file doesn't exist

	v.SetEnvPrefix("VC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("aria.host", "")
	v.SetDefault("aria.username", "")
	v.SetDefault("aria.domain", "")
	v.SetDefault("aria.password", "")
	v.SetDefault("aria.insecure", false)
	v.SetDefault("aria.page_size", 1000)
	v.SetDefault("aria.timeout", "60s")

	v.SetDefault("catalog.url", DefaultCatalogURL)
	v.SetDefault("catalog.program", "server")
	v.SetDefault("catalog.limit", 20)
	v.SetDefault("catalog.timeout", "30s")
	v.SetDefault("catalog.rate_limit", 2.0)
	v.SetDefault("catalog.burst", 1)
	v.SetDefault("catalog.concurrency", 1)

	v.SetDefault("check.target_release", "ESXi 9.0")
	v.SetDefault("check.output", "server_export.csv")
	v.SetDefault("check.format", "table")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.output", "stderr")
}

var validFormats = map[string]bool{"table": true, "json": true, "yaml": true}

func validate(cfg *Config) error {
	if cfg.Aria.PageSize < 1 {
		return fmt.Errorf("invalid aria page size: %d", cfg.Aria.PageSize)
	}

	if cfg.Catalog.URL == "" {
		return fmt.Errorf("catalog url is required")
	}

	if cfg.Catalog.Limit < 1 {
		return fmt.Errorf("invalid catalog limit: %d", cfg.Catalog.Limit)
	}

	if cfg.Catalog.Timeout <= 0 {
		return fmt.Errorf("catalog timeout must be positive")
	}

	if cfg.Catalog.RateLimit < 0 {
		return fmt.Errorf("invalid catalog rate limit: %v", cfg.Catalog.RateLimit)
	}

	if cfg.Catalog.Concurrency < 1 {
		return fmt.Errorf("invalid catalog concurrency: %d", cfg.Catalog.Concurrency)
	}

	if cfg.Check.TargetRelease == "" {
		return fmt.Errorf("target release is required")
	}

	if !validFormats[cfg.Check.Format] {
		return fmt.Errorf("invalid output format: %q (use table, json or yaml)", cfg.Check.Format)
	}

	return nil
}

// BaseURL returns the Aria Operations base URL, adding https:// when the
// host is given without a scheme.
func (c *AriaConfig) BaseURL() string {
	host := strings.TrimRight(c.Host, "/")
	if strings.Contains(host, "://") {
		return host
	}
	return "https://" + host
}

// isFileNotFoundError checks if an error is a file not found error.
func isFileNotFoundError(err error) bool {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return errors.Is(pathErr, os.ErrNotExist)
	}
	return false
}
