// Package config handles paprika-mcp configuration and credential loading.
//
// Resolution priority:
//  1. PAPRIKA_* environment variables
//  2. ~/.paprika-mcp/config.yaml
//  3. ~/.paprika-mcp/config.json (legacy format)
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/briantkatch/paprika-mcp/internal/errors"
)

// Defaults for the Paprika sync API client.
const (
	DefaultBaseURL = "https://www.paprikaapp.com/api/v2"
	DefaultTimeout = 30 * time.Second
)

// Config is the complete paprika-mcp configuration.
type Config struct {
	// Email and Password are the Paprika account credentials.
	Email    string `yaml:"email" json:"email"`
	Password string `yaml:"password" json:"password"`

	// UserAgent overrides the User-Agent sent to the Paprika API.
	// Empty means the client default.
	UserAgent string `yaml:"user_agent,omitempty" json:"user_agent,omitempty"`

	// BaseURL is the Paprika sync API base URL. Overridable for tests.
	BaseURL string `yaml:"base_url,omitempty" json:"base_url,omitempty"`

	// TimeoutSeconds bounds each API request. Default 30.
	TimeoutSeconds int `yaml:"timeout_seconds,omitempty" json:"timeout_seconds,omitempty"`

	// CacheDir is where fetched recipes are cached. Default
	// ~/.paprika-mcp/cache.
	CacheDir string `yaml:"cache_dir,omitempty" json:"cache_dir,omitempty"`

	// LogLevel is the minimum log level (debug, info, warn, error).
	LogLevel string `yaml:"log_level,omitempty" json:"log_level,omitempty"`
}

// NewConfig returns a Config populated with defaults.
func NewConfig() *Config {
	return &Config{
		BaseURL:        DefaultBaseURL,
		TimeoutSeconds: int(DefaultTimeout.Seconds()),
		CacheDir:       DefaultCacheDir(),
		LogLevel:       "info",
	}
}

// Dir returns the paprika-mcp config directory (~/.paprika-mcp).
// Falls back to the temp directory if the home directory is unavailable.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".paprika-mcp")
	}
	return filepath.Join(home, ".paprika-mcp")
}

// DefaultCacheDir returns the default recipe cache directory.
func DefaultCacheDir() string {
	return filepath.Join(Dir(), "cache")
}

// YAMLPath returns the path of the YAML config file.
func YAMLPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// JSONPath returns the path of the legacy JSON config file.
func JSONPath() string {
	return filepath.Join(Dir(), "config.json")
}

// PromptPath returns the path of the optional user-preferences prompt.
func PromptPath() string {
	return filepath.Join(Dir(), "prompt.md")
}

// Load reads configuration from disk and environment.
// A missing config file is not an error; credentials are validated lazily
// by Credentials().
func Load() (*Config, error) {
	cfg := NewConfig()

	if err := cfg.loadFile(); err != nil {
		return nil, err
	}
	cfg.applyEnv()

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = int(DefaultTimeout.Seconds())
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = DefaultCacheDir()
	}

	return cfg, nil
}

// loadFile overlays the first config file found: YAML, then legacy JSON.
func (c *Config) loadFile() error {
	if data, err := os.ReadFile(YAMLPath()); err == nil {
		if err := yaml.Unmarshal(data, c); err != nil {
			return errors.Wrap(errors.ErrCodeConfigInvalid,
				fmt.Errorf("parse %s: %w", YAMLPath(), err))
		}
		return nil
	}

	if data, err := os.ReadFile(JSONPath()); err == nil {
		if err := json.Unmarshal(data, c); err != nil {
			return errors.Wrap(errors.ErrCodeConfigInvalid,
				fmt.Errorf("parse %s: %w", JSONPath(), err))
		}
	}

	return nil
}

// applyEnv overlays PAPRIKA_* environment variables; they take priority
// over file values.
func (c *Config) applyEnv() {
	if v := os.Getenv("PAPRIKA_EMAIL"); v != "" {
		c.Email = v
	}
	if v := os.Getenv("PAPRIKA_PASSWORD"); v != "" {
		c.Password = v
	}
	if v := os.Getenv("PAPRIKA_USER_AGENT"); v != "" {
		c.UserAgent = v
	}
	if v := os.Getenv("PAPRIKA_BASE_URL"); v != "" {
		c.BaseURL = v
	}
}

// Timeout returns the request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Credentials returns the account email and password, or a structured
// error explaining how to configure them.
func (c *Config) Credentials() (email, password string, err error) {
	if c.Email == "" || c.Password == "" {
		return "", "", errors.New(errors.ErrCodeCredentialsMissing,
			"Paprika credentials not found", nil).
			WithSuggestion("Set PAPRIKA_EMAIL and PAPRIKA_PASSWORD environment variables, " +
				"or run 'paprika-mcp setup' to create " + YAMLPath() + ".")
	}
	return c.Email, c.Password, nil
}

// Save writes the config as YAML with owner-only permissions, since it
// contains account credentials.
func (c *Config) Save() error {
	if err := os.MkdirAll(Dir(), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeConfigInvalid, err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(errors.ErrCodeConfigInvalid, err)
	}

	if err := os.WriteFile(YAMLPath(), data, 0o600); err != nil {
		return errors.Wrap(errors.ErrCodeConfigInvalid, err)
	}
	return nil
}
