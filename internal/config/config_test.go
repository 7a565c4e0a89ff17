package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults without a config file", func(t *testing.T) {
		cfg, _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8000/api/v1", cfg.API.BaseURL)
		assert.Equal(t, 30*time.Second, cfg.API.Timeout)
		assert.Equal(t, 0, cfg.API.RetryCount)
		assert.False(t, cfg.API.Debug)
		assert.True(t, cfg.UI.Color)
	})

	t.Run("file values override defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
api:
  base_url: https://helpdesk.uni.edu/api/v1
  timeout: 10s
  retry_count: 2
ui:
  color: false
`), 0o644))

		cfg, _, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "https://helpdesk.uni.edu/api/v1", cfg.API.BaseURL)
		assert.Equal(t, 10*time.Second, cfg.API.Timeout)
		assert.Equal(t, 2, cfg.API.RetryCount)
		assert.False(t, cfg.UI.Color)
	})

	t.Run("environment overrides the file", func(t *testing.T) {
		t.Setenv("HELPDESK_API_BASE_URL", "http://10.0.0.5:8000/api/v1")

		cfg, _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.NoError(t, err)
		assert.Equal(t, "http://10.0.0.5:8000/api/v1", cfg.API.BaseURL)
	})

	t.Run("malformed yaml is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("api: [broken"), 0o644))

		_, _, err := Load(path)
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			API: APIConfig{
				BaseURL: "http://localhost:8000/api/v1",
				Timeout: 5 * time.Second,
			},
		}
	}

	t.Run("valid config passes", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("empty base URL fails", func(t *testing.T) {
		cfg := valid()
		cfg.API.BaseURL = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("non-positive timeout fails", func(t *testing.T) {
		cfg := valid()
		cfg.API.Timeout = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("negative retry count fails", func(t *testing.T) {
		cfg := valid()
		cfg.API.RetryCount = -1
		assert.Error(t, cfg.Validate())
	})
}
