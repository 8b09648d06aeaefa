// Package config loads docsearch settings from defaults, an optional YAML
// file and DOCSEARCH_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/docsearch"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// DefaultPath is the config file read when no path is given.
const DefaultPath = "docsearch.yml"

// EnvPrefix prefixes environment overrides, e.g. DOCSEARCH_DB_PATH.
const EnvPrefix = "DOCSEARCH_"

// Config holds runtime settings for the CLI, server and terminal UI.
type Config struct {
	DebounceDelay     time.Duration `koanf:"debounce_delay"`
	SettleDelay       time.Duration `koanf:"settle_delay"`
	HighlightDuration time.Duration `koanf:"highlight_duration"`
	DBPath            string        `koanf:"db_path"`
	Addr              string        `koanf:"addr"`
	RateLimit         float64       `koanf:"rate_limit"`
	RateBurst         int           `koanf:"rate_burst"`
	FetchTimeout      time.Duration `koanf:"fetch_timeout"`

	// CORSOrigins lists the origins allowed on the search API. Empty
	// allows any origin. DOCSEARCH_CORS_ORIGINS takes a comma-separated list.
	CORSOrigins []string `koanf:"cors_origins"`

	// TrustProxy takes client addresses from forwarding headers for rate
	// limiting. Enable only behind a reverse proxy.
	TrustProxy bool `koanf:"trust_proxy"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		DebounceDelay:     docsearch.DefaultDebounceDelay,
		SettleDelay:       docsearch.DefaultSettleDelay,
		HighlightDuration: docsearch.DefaultHighlightDuration,
		DBPath:            defaultDBPath(),
		Addr:              ":8080",
		RateLimit:         20,
		RateBurst:         40,
		FetchTimeout:      10 * time.Second,
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".docsearch", "prefs.db")
	}
	return filepath.Join(home, ".docsearch", "prefs.db")
}

// Load reads configuration from the YAML file at path, if it exists, then
// overlays environment variable overrides.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	cfg.CORSOrigins = splitOrigins(cfg.CORSOrigins)
	return cfg, nil
}

// splitOrigins splits comma-separated entries and drops blanks.
func splitOrigins(in []string) []string {
	var out []string
	for _, entry := range in {
		for _, origin := range strings.Split(entry, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				out = append(out, origin)
			}
		}
	}
	return out
}

// Validate returns an error if the configuration contains invalid values.
func (c *Config) Validate() error {
	if c.DebounceDelay < 0 {
		return docsearch.Errorf(docsearch.EINVALID, "debounce_delay must be non-negative")
	}
	if c.SettleDelay < 0 {
		return docsearch.Errorf(docsearch.EINVALID, "settle_delay must be non-negative")
	}
	if c.HighlightDuration < 0 {
		return docsearch.Errorf(docsearch.EINVALID, "highlight_duration must be non-negative")
	}
	if c.FetchTimeout < 0 {
		return docsearch.Errorf(docsearch.EINVALID, "fetch_timeout must be non-negative")
	}
	if c.DBPath == "" {
		return docsearch.Errorf(docsearch.EINVALID, "db_path is required")
	}
	if c.RateLimit <= 0 {
		return docsearch.Errorf(docsearch.EINVALID, "rate_limit must be positive")
	}
	if c.RateBurst <= 0 {
		return docsearch.Errorf(docsearch.EINVALID, "rate_burst must be positive")
	}
	return nil
}

// SessionConfig returns the timing settings for a search session.
func (c *Config) SessionConfig() docsearch.SessionConfig {
	return docsearch.SessionConfig{
		DebounceDelay:     c.DebounceDelay,
		SettleDelay:       c.SettleDelay,
		HighlightDuration: c.HighlightDuration,
	}
}

// MarshalYAML writes durations in their string form so the output can be
// loaded back.
func (c *Config) MarshalYAML() (any, error) {
	out := map[string]any{
		"debounce_delay":     c.DebounceDelay.String(),
		"settle_delay":       c.SettleDelay.String(),
		"highlight_duration": c.HighlightDuration.String(),
		"db_path":            c.DBPath,
		"addr":               c.Addr,
		"rate_limit":         c.RateLimit,
		"rate_burst":         c.RateBurst,
		"fetch_timeout":      c.FetchTimeout.String(),
		"trust_proxy":        c.TrustProxy,
	}
	if len(c.CORSOrigins) > 0 {
		out["cors_origins"] = c.CORSOrigins
	}
	return out, nil
}

// Save writes the configuration to the YAML file at path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}
