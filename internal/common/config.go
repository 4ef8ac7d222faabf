// Package common provides shared utilities for Teaser AI
package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for the Teaser AI service
type Config struct {
	Environment string        `toml:"environment"`
	Server      ServerConfig  `toml:"server"`
	Storage     StorageConfig `toml:"storage"`
	Clients     ClientsConfig `toml:"clients"`
	Reports     ReportsConfig `toml:"reports"`
	Logging     LoggingConfig `toml:"logging"`
	Auth        AuthConfig    `toml:"auth"`
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// StorageConfig holds path configuration for the storage areas.
type StorageConfig struct {
	Teasers   AreaConfig `toml:"teasers"`   // Teaser records (BadgerHold)
	Documents AreaConfig `toml:"documents"` // Uploaded teaser PDFs (file-based)
}

// AreaConfig holds path configuration for a storage area.
type AreaConfig struct {
	Path string `toml:"path"`
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	Gemini GeminiConfig `toml:"gemini"`
}

// GeminiConfig holds Gemini API configuration
type GeminiConfig struct {
	APIKey    string `toml:"api_key"`
	Model     string `toml:"model"`
	RateLimit int    `toml:"rate_limit"` // requests per second
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *GeminiConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 120 * time.Second
	}
	return d
}

// ReportsConfig holds screening report output configuration.
type ReportsConfig struct {
	Dir           string `toml:"dir"`            // output directory for generated PDFs
	CoverageChart bool   `toml:"coverage_chart"` // embed the section coverage chart
}

// AuthConfig holds authentication configuration.
// When APIKey or JWTSecret is empty the API runs unauthenticated (development mode).
type AuthConfig struct {
	APIKey      string `toml:"api_key"`      // key exchanged for a bearer token
	JWTSecret   string `toml:"jwt_secret"`   // HS256 signing secret
	TokenExpiry string `toml:"token_expiry"` // duration string, default "24h"
}

// Enabled reports whether bearer-token auth is configured.
func (c *AuthConfig) Enabled() bool {
	return c.APIKey != "" && c.JWTSecret != ""
}

// GetTokenExpiry parses and returns the token expiry duration.
func (c *AuthConfig) GetTokenExpiry() time.Duration {
	d, err := time.ParseDuration(c.TokenExpiry)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level    string `toml:"level"`
	FilePath string `toml:"file_path"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8000,
		},
		Storage: StorageConfig{
			Teasers:   AreaConfig{Path: "data/teasers"},
			Documents: AreaConfig{Path: "data/documents"},
		},
		Clients: ClientsConfig{
			Gemini: GeminiConfig{
				Model:     "gemini-3-flash-preview",
				RateLimit: 2,
				Timeout:   "120s",
			},
		},
		Reports: ReportsConfig{
			Dir:           "reports",
			CoverageChart: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Auth: AuthConfig{
			TokenExpiry: "24h",
		},
	}
}

// LoadConfig loads configuration from the given TOML files. Missing files
// are skipped; later files override earlier ones. Environment overrides are
// applied last.
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("TEASERAI_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("TEASERAI_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("TEASERAI_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("TEASERAI_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if path := os.Getenv("TEASERAI_DATA_PATH"); path != "" {
		config.Storage.Teasers.Path = filepath.Join(path, "teasers")
		config.Storage.Documents.Path = filepath.Join(path, "documents")
	}

	if dir := os.Getenv("TEASERAI_REPORTS_DIR"); dir != "" {
		config.Reports.Dir = dir
	}

	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		config.Clients.Gemini.APIKey = key
	}
}
