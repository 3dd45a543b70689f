package auth

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileTokenProvider_ReadsAndTrims(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "token")
	if err := os.WriteFile(path, []byte("  abc123\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := NewFileTokenProvider(path).AccessToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "abc123" {
		t.Errorf("want token %q, got %q", "abc123", got)
	}
}

func TestFileTokenProvider_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "token")
	if err := os.WriteFile(path, []byte("   \n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := NewFileTokenProvider(path).AccessToken(); err == nil {
		t.Error("want error for empty token file")
	}
}

func TestFileTokenProvider_MissingFile(t *testing.T) {
	if _, err := NewFileTokenProvider("/nonexistent/token").AccessToken(); err == nil {
		t.Error("want error for missing token file")
	}
}

func TestStaticTokenProvider(t *testing.T) {
	got, err := StaticTokenProvider("tok").AccessToken()
	if err != nil || got != "tok" {
		t.Errorf("want tok, got %q (err %v)", got, err)
	}
	if _, err := StaticTokenProvider(" ").AccessToken(); err == nil {
		t.Error("want error for blank static token")
	}
}
