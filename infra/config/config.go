package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const defaultFeedLimit = 20

// Config holds application-level configuration.
type Config struct {
	BaseURL   string `toml:"base_url"`   // e.g. "https://quill.example.org"
	TokenPath string `toml:"token_path"` // Path to file containing the access token
	FeedLimit int    `toml:"feed_limit"` // Page size for feed loads
	StatePath string `toml:"state_path"` // Path to persisted UI state (YAML)
	LogPath   string `toml:"log_path"`   // Debug log file; empty disables logging
	LogLevel  string `toml:"log_level"`  // logrus level name, default "info"
}

// Load reads ~/.config/quillterm/config.toml (if present) and applies
// environment overrides:
//
//	QUILLTERM_BASE_URL    — backend base URL (required if not in the file)
//	QUILLTERM_TOKEN       — path to token file (default: ~/.config/quillterm/token)
//	QUILLTERM_FEED_LIMIT  — feed page size (default: 20)
//	QUILLTERM_LOG         — debug log file path (default: disabled)
func Load() (Config, error) {
	cfg := Config{FeedLimit: defaultFeedLimit, LogLevel: "info"}

	dir, err := configDir()
	if err != nil {
		return Config{}, err
	}

	path := filepath.Join(dir, "config.toml")
	if _, statErr := os.Stat(path); statErr == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	if v := os.Getenv("QUILLTERM_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("QUILLTERM_TOKEN"); v != "" {
		cfg.TokenPath = v
	}
	if v := os.Getenv("QUILLTERM_LOG"); v != "" {
		cfg.LogPath = v
	}
	if v := os.Getenv("QUILLTERM_FEED_LIMIT"); v != "" {
		var n int
		if _, err := fmt.Sscanf(v, "%d", &n); err != nil || n <= 0 {
			return Config{}, fmt.Errorf("invalid QUILLTERM_FEED_LIMIT: %q", v)
		}
		cfg.FeedLimit = n
	}

	if cfg.TokenPath == "" {
		cfg.TokenPath = filepath.Join(dir, "token")
	}
	if cfg.StatePath == "" {
		cfg.StatePath = filepath.Join(dir, "state.yaml")
	}
	if cfg.FeedLimit <= 0 {
		cfg.FeedLimit = defaultFeedLimit
	}

	if cfg.BaseURL == "" {
		return Config{}, fmt.Errorf("no backend configured: set base_url in %s or QUILLTERM_BASE_URL", path)
	}
	parsed, err := url.Parse(cfg.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return Config{}, fmt.Errorf("invalid base URL %q: must be absolute", cfg.BaseURL)
	}
	if parsed.Scheme != "https" && parsed.Scheme != "http" {
		return Config{}, fmt.Errorf("invalid base URL %q: scheme must be http(s)", cfg.BaseURL)
	}
	cfg.BaseURL = strings.TrimRight(parsed.String(), "/")

	return cfg, nil
}

func configDir() (string, error) {
	if v := os.Getenv("QUILLTERM_CONFIG_DIR"); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "quillterm"), nil
}
