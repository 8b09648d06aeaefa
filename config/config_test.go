package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()

	assert.Equal(t, 250*time.Millisecond, cfg.DebounceDelay)
	assert.Equal(t, 100*time.Millisecond, cfg.SettleDelay)
	assert.Equal(t, 2500*time.Millisecond, cfg.HighlightDuration)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, filepath.Join(".docsearch", "prefs.db"), filepath.Join(filepath.Base(filepath.Dir(cfg.DBPath)), filepath.Base(cfg.DBPath)))
	assert.Equal(t, docsearch.DefaultSessionConfig(), cfg.SessionConfig())
	require.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("returns defaults for missing file", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yml"))

		require.NoError(t, err)
		assert.Equal(t, config.DefaultConfig().DebounceDelay, cfg.DebounceDelay)
	})

	t.Run("reads YAML durations", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "docsearch.yml")
		require.NoError(t, os.WriteFile(path, []byte("debounce_delay: 50ms\nhighlight_duration: 1s\naddr: \":9000\"\n"), 0o644))

		cfg, err := config.Load(path)

		require.NoError(t, err)
		assert.Equal(t, 50*time.Millisecond, cfg.DebounceDelay)
		assert.Equal(t, time.Second, cfg.HighlightDuration)
		assert.Equal(t, ":9000", cfg.Addr)
		assert.Equal(t, 100*time.Millisecond, cfg.SettleDelay)
	})

	t.Run("reads CORS origins and proxy trust", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "docsearch.yml")
		require.NoError(t, os.WriteFile(path, []byte("cors_origins:\n  - https://docs.example.com\ntrust_proxy: true\n"), 0o644))

		cfg, err := config.Load(path)

		require.NoError(t, err)
		assert.Equal(t, []string{"https://docs.example.com"}, cfg.CORSOrigins)
		assert.True(t, cfg.TrustProxy)
	})

	t.Run("rejects malformed YAML", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "docsearch.yml")
		require.NoError(t, os.WriteFile(path, []byte("addr: [unterminated\n"), 0o644))

		_, err := config.Load(path)

		require.Error(t, err)
	})
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DOCSEARCH_DB_PATH", "/tmp/custom.db")
	t.Setenv("DOCSEARCH_RATE_BURST", "7")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yml"))

	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.db", cfg.DBPath)
	assert.Equal(t, 7, cfg.RateBurst)
}

func TestLoad_CORSOriginsFromEnv(t *testing.T) {
	t.Setenv("DOCSEARCH_CORS_ORIGINS", "https://docs.example.com, https://example.org")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yml"))

	require.NoError(t, err)
	assert.Equal(t, []string{"https://docs.example.com", "https://example.org"}, cfg.CORSOrigins)
}

func TestConfig_SaveAndLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "docsearch.yml")
	original := config.DefaultConfig()
	original.SettleDelay = 300 * time.Millisecond
	original.DBPath = "/var/lib/docsearch.db"
	original.RateLimit = 2.5
	original.CORSOrigins = []string{"https://docs.example.com", "https://example.org"}
	original.TrustProxy = true

	require.NoError(t, original.Save(path))
	loaded, err := config.Load(path)

	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*config.Config)
	}{
		{"negative debounce", func(c *config.Config) { c.DebounceDelay = -1 }},
		{"negative settle", func(c *config.Config) { c.SettleDelay = -1 }},
		{"negative highlight", func(c *config.Config) { c.HighlightDuration = -1 }},
		{"negative fetch timeout", func(c *config.Config) { c.FetchTimeout = -1 }},
		{"empty db path", func(c *config.Config) { c.DBPath = "" }},
		{"zero rate limit", func(c *config.Config) { c.RateLimit = 0 }},
		{"zero burst", func(c *config.Config) { c.RateBurst = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.DefaultConfig()
			tt.modify(cfg)

			err := cfg.Validate()

			assert.Equal(t, docsearch.EINVALID, docsearch.ErrorCode(err))
		})
	}
}
