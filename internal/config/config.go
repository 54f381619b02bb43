package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the application configuration
type Config struct {
	Database DatabaseConfig
	GeoDB    GeoDBConfig
	Lock     LockConfig
}

// DatabaseConfig holds the admin database location
type DatabaseConfig struct {
	Path string `envconfig:"SHORTCTL_DB_PATH" default:"shorturls.db"`
}

// GeoDBConfig holds geolocation database settings. An empty DownloadURL
// selects the monthly db-ip snapshot.
type GeoDBConfig struct {
	Path            string        `envconfig:"SHORTCTL_GEODB_PATH" default:"dbip-city-lite.mmdb"`
	DownloadURL     string        `envconfig:"SHORTCTL_GEODB_DOWNLOAD_URL"`
	DownloadTimeout time.Duration `envconfig:"SHORTCTL_GEODB_DOWNLOAD_TIMEOUT" default:"15m"`
}

// LockConfig holds the directory for host-wide advisory lock files
type LockConfig struct {
	Dir string `envconfig:"SHORTCTL_LOCK_DIR"`
}

// Load reads configuration from an optional .env file and the environment
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if cfg.Lock.Dir == "" {
		cfg.Lock.Dir = filepath.Join(os.TempDir(), "shortctl-locks")
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// validate validates the configuration values
func (c *Config) validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database path cannot be empty")
	}

	if c.GeoDB.Path == "" {
		return fmt.Errorf("geolocation database path cannot be empty")
	}

	if c.GeoDB.DownloadTimeout <= 0 {
		return fmt.Errorf("download timeout must be positive, got: %v", c.GeoDB.DownloadTimeout)
	}

	return nil
}
