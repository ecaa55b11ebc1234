// Package config handles TOML-based configuration loading and validation.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all application configuration.
type Config struct {
	BaseURL             string  `toml:"base_url"`
	DefaultServer       string  `toml:"default_server"`
	SimilarityThreshold float64 `toml:"similarity_threshold"`
	ShortCacheHours     int     `toml:"short_cache_hours"`
	LongCacheHours      int     `toml:"long_cache_hours"`
	TMDBAPIKey          string  `toml:"tmdb_api_key"`
	OverridesDir        string  `toml:"overrides_dir"`
	Player              string  `toml:"player"`
	Debug               bool    `toml:"debug"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		BaseURL:             "https://watchanimeworld.in",
		DefaultServer:       "1",
		SimilarityThreshold: 0.6,
		ShortCacheHours:     24,
		LongCacheHours:      7 * 24,
		Player:              "mpv",
		Debug:               false,
	}
}

// ShortTTL returns the TTL for search, series and probe cache entries.
func (c *Config) ShortTTL() time.Duration {
	return time.Duration(c.ShortCacheHours) * time.Hour
}

// LongTTL returns the TTL for player and source cache entries.
func (c *Config) LongTTL() time.Duration {
	return time.Duration(c.LongCacheHours) * time.Hour
}

// configDir returns the XDG-compliant config directory.
func configDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "animeworld"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", "animeworld"), nil
}

// ConfigPath returns the path to the config file.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config file and merges with defaults. A missing config
// file is not an error; defaults are returned. The TMDB_API_KEY
// environment variable overrides the file value.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err != nil {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err == nil {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if key := os.Getenv("TMDB_API_KEY"); key != "" {
		cfg.TMDBAPIKey = key
	}
	if cfg.OverridesDir == "" {
		if dir, err := configDir(); err == nil {
			cfg.OverridesDir = filepath.Join(dir, "series")
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks config values are within acceptable bounds.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base URL cannot be empty")
	}
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("base URL %q must start with http:// or https://", c.BaseURL)
	}

	if c.SimilarityThreshold <= 0 || c.SimilarityThreshold > 1 {
		return fmt.Errorf("similarity threshold %v out of range (0, 1]", c.SimilarityThreshold)
	}

	if c.ShortCacheHours <= 0 || c.LongCacheHours <= 0 {
		return fmt.Errorf("cache TTLs must be positive")
	}

	validPlayers := map[string]bool{
		"mpv": true, "vlc": true, "iina": true, "celluloid": true,
	}
	if !validPlayers[strings.ToLower(c.Player)] {
		return fmt.Errorf("unsupported player %q (valid: mpv, vlc, iina, celluloid)", c.Player)
	}

	return nil
}
