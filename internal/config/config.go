// filepath: internal/config/config.go
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds the application's configuration.
type Config struct {
	Database DatabaseConfig `toml:"database"`
	Logging  LoggingConfig  `toml:"logging"`
	Session  SessionConfig  `toml:"session"`

	SessionSecret string `toml:"-"` // Runtime secret (from env, flag, or file)
}

// DatabaseConfig holds the database configuration.
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// LoggingConfig holds the logging configuration.
type LoggingConfig struct {
	Level string `toml:"level"`
}

// SessionConfig holds settings for login session token generation.
type SessionConfig struct {
	AccessDurationMin    int    `toml:"access_duration_min"`
	RefreshDurationHours int    `toml:"refresh_duration_hours"`
	Secret               string `toml:"secret"` // Persisted secret
}

// LoadConfig loads the configuration from a TOML file.
func LoadConfig(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, err
	}
	return &config, nil
}

// SaveConfig writes the current configuration back to a TOML file.
// Used to persist the auto-generated session secret.
func SaveConfig(path string, cfg *Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file for saving: %w", err)
	}
	defer f.Close()
	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config to file: %w", err)
	}
	return nil
}

// ParseAndValidate processes configuration values into runtime state.
// It sets defaults if values are missing.
func (c *Config) ParseAndValidate() error {
	if c.Database.Path == "" {
		c.Database.Path = "woodbank.db"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Session.AccessDurationMin <= 0 {
		c.Session.AccessDurationMin = 30
	}
	if c.Session.RefreshDurationHours <= 0 {
		c.Session.RefreshDurationHours = 12
	}
	if c.SessionSecret == "" {
		c.SessionSecret = c.Session.Secret
	}
	return nil
}
