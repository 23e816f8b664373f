package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables that override values loaded from the config file.
const (
	EnvBaseURL        = "QUOTECHAT_BASE_URL"
	EnvTimeoutSeconds = "QUOTECHAT_API_TIMEOUT_SECONDS"
	EnvLogLevel       = "QUOTECHAT_LOG_LEVEL"
	EnvLogFile        = "QUOTECHAT_LOG_FILE"
	EnvMockAddr       = "QUOTECHAT_MOCK_ADDR"
)

// Config represents the application configuration
type Config struct {
	BaseURL           string           `json:"base_url"`
	APITimeoutSeconds int              `json:"api_timeout_seconds"`
	LogLevel          string           `json:"log_level"`
	LogFormat         string           `json:"log_format"`
	LogFile           string           `json:"log_file"`
	MockServer        MockServerConfig `json:"mock_server"`
}

// MockServerConfig holds settings for the local development backend.
type MockServerConfig struct {
	Addr           string   `json:"addr"`
	AllowedOrigins []string `json:"allowed_origins"`
	RulesFile      string   `json:"rules_file"`
}

// Default returns a configuration with default values
func Default() Config {
	return Config{
		BaseURL:           "http://localhost:8001",
		APITimeoutSeconds: 0, // no timeout; a hung request keeps the placeholder visible
		LogLevel:          "info",
		LogFormat:         "json",
		LogFile:           "",
		MockServer: MockServerConfig{
			Addr:           ":8001",
			AllowedOrigins: []string{"http://localhost:5173", "http://127.0.0.1:5173"},
			RulesFile:      "",
		},
	}
}

// Load loads configuration from the specified path
// If the file doesn't exist, creates one with default values
func Load(configPath string) (Config, error) {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return Config{}, fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := Default()
			if err := Save(configPath, cfg); err != nil {
				return Config{}, fmt.Errorf("failed to create default config: %w", err)
			}
			return cfg, nil
		}
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	// Start from defaults so missing keys keep sane values.
	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// LoadWithEnv loads the config file, then a .env file from the working
// directory (if any), then applies QUOTECHAT_* environment overrides.
func LoadWithEnv(configPath string) (Config, error) {
	cfg, err := Load(configPath)
	if err != nil {
		return Config{}, err
	}
	if err := loadDotEnv(".env"); err != nil {
		return Config{}, err
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// loadDotEnv sets variables from path without overriding ones already set.
// A missing file is not an error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides fields from environment variables using getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := strings.TrimSpace(getenv(EnvBaseURL)); v != "" {
		c.BaseURL = v
	}
	if v := strings.TrimSpace(getenv(EnvTimeoutSeconds)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvTimeoutSeconds, err)
		}
		c.APITimeoutSeconds = n
	}
	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		c.LogLevel = v
	}
	if v := strings.TrimSpace(getenv(EnvLogFile)); v != "" {
		c.LogFile = v
	}
	if v := strings.TrimSpace(getenv(EnvMockAddr)); v != "" {
		c.MockServer.Addr = v
	}
	return nil
}

// Save saves the configuration to the specified path
func Save(configPath string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c Config) Validate() error {
	base := strings.TrimSpace(c.BaseURL)
	if base == "" {
		return fmt.Errorf("base_url is required")
	}
	u, err := url.Parse(base)
	if err != nil {
		return fmt.Errorf("invalid base_url %q: %w", base, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base_url must use http or https, got: %q", base)
	}

	if c.APITimeoutSeconds < 0 {
		return fmt.Errorf("api_timeout_seconds must not be negative, got: %d", c.APITimeoutSeconds)
	}

	switch strings.ToLower(strings.TrimSpace(c.LogFormat)) {
	case "", "json", "text":
	default:
		return fmt.Errorf("unsupported log_format: %s", c.LogFormat)
	}

	return nil
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".quotechat/config.json"
	}
	return filepath.Join(homeDir, ".quotechat", "config.json")
}
