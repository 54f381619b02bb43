package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "shorturls.db", cfg.Database.Path)
	assert.Equal(t, "dbip-city-lite.mmdb", cfg.GeoDB.Path)
	assert.Empty(t, cfg.GeoDB.DownloadURL)
	assert.Equal(t, 15*time.Minute, cfg.GeoDB.DownloadTimeout)
	assert.NotEmpty(t, cfg.Lock.Dir)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SHORTCTL_DB_PATH", "/data/admin.db")
	t.Setenv("SHORTCTL_GEODB_PATH", "/data/geo.mmdb")
	t.Setenv("SHORTCTL_GEODB_DOWNLOAD_URL", "https://example.com/geo.mmdb.gz")
	t.Setenv("SHORTCTL_GEODB_DOWNLOAD_TIMEOUT", "30s")
	t.Setenv("SHORTCTL_LOCK_DIR", "/var/lock/shortctl")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/data/admin.db", cfg.Database.Path)
	assert.Equal(t, "/data/geo.mmdb", cfg.GeoDB.Path)
	assert.Equal(t, "https://example.com/geo.mmdb.gz", cfg.GeoDB.DownloadURL)
	assert.Equal(t, 30*time.Second, cfg.GeoDB.DownloadTimeout)
	assert.Equal(t, "/var/lock/shortctl", cfg.Lock.Dir)
}

func TestLoad_InvalidTimeout(t *testing.T) {
	t.Setenv("SHORTCTL_GEODB_DOWNLOAD_TIMEOUT", "-1s")

	cfg, err := Load()
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "download timeout must be positive")
}
