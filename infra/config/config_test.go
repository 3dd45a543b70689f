package config

import (
	"os"
	"path/filepath"
	"testing"
)

func withEnv(t *testing.T, key, val string) {
	t.Helper()
	t.Setenv(key, val)
}

func TestLoad_EnvOnly(t *testing.T) {
	withEnv(t, "QUILLTERM_CONFIG_DIR", t.TempDir())
	withEnv(t, "QUILLTERM_BASE_URL", "https://quill.example.org/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BaseURL != "https://quill.example.org" {
		t.Errorf("want trailing slash trimmed, got %q", cfg.BaseURL)
	}
	if cfg.FeedLimit != defaultFeedLimit {
		t.Errorf("want default feed limit %d, got %d", defaultFeedLimit, cfg.FeedLimit)
	}
	if cfg.TokenPath == "" || cfg.StatePath == "" {
		t.Errorf("want default token/state paths, got %+v", cfg)
	}
}

func TestLoad_TomlFileWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	file := `base_url = "http://localhost:8088"` + "\n" + `feed_limit = 5` + "\n"
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(file), 0o644); err != nil {
		t.Fatal(err)
	}
	withEnv(t, "QUILLTERM_CONFIG_DIR", dir)
	withEnv(t, "QUILLTERM_BASE_URL", "")
	withEnv(t, "QUILLTERM_TOKEN", "/tmp/tok")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BaseURL != "http://localhost:8088" {
		t.Errorf("want base URL from file, got %q", cfg.BaseURL)
	}
	if cfg.FeedLimit != 5 {
		t.Errorf("want feed limit 5, got %d", cfg.FeedLimit)
	}
	if cfg.TokenPath != "/tmp/tok" {
		t.Errorf("want env token path to win, got %q", cfg.TokenPath)
	}
}

func TestLoad_MissingBaseURL(t *testing.T) {
	withEnv(t, "QUILLTERM_CONFIG_DIR", t.TempDir())
	withEnv(t, "QUILLTERM_BASE_URL", "")

	if _, err := Load(); err == nil {
		t.Error("want error when no backend configured")
	}
}

func TestLoad_RejectsBadURLs(t *testing.T) {
	for _, bad := range []string{"ftp://x", "not a url", "/relative"} {
		withEnv(t, "QUILLTERM_CONFIG_DIR", t.TempDir())
		withEnv(t, "QUILLTERM_BASE_URL", bad)
		if _, err := Load(); err == nil {
			t.Errorf("want error for base URL %q", bad)
		}
	}
}

func TestLoad_InvalidFeedLimit(t *testing.T) {
	withEnv(t, "QUILLTERM_CONFIG_DIR", t.TempDir())
	withEnv(t, "QUILLTERM_BASE_URL", "https://quill.example.org")
	withEnv(t, "QUILLTERM_FEED_LIMIT", "zero")

	if _, err := Load(); err == nil {
		t.Error("want error for non-numeric feed limit")
	}
}
