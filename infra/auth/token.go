package auth

import (
	"fmt"
	"os"
	"strings"
)

// TokenProvider supplies a bearer token for API authentication.
type TokenProvider interface {
	AccessToken() (string, error)
}

// FileTokenProvider reads a bearer token from a file on disk. The file is
// provisioned out of band by the identity provider's login flow.
type FileTokenProvider struct {
	path string
}

// NewFileTokenProvider creates a TokenProvider that reads from the given file path.
func NewFileTokenProvider(path string) *FileTokenProvider {
	return &FileTokenProvider{path: path}
}

// AccessToken reads and returns the token, trimming whitespace.
func (f *FileTokenProvider) AccessToken() (string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return "", fmt.Errorf("reading token from %s: %w", f.path, err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", fmt.Errorf("token file %s is empty", f.path)
	}

	return token, nil
}

// StaticTokenProvider returns a fixed token. Used in tests and when the
// token is passed through the environment.
type StaticTokenProvider string

// AccessToken returns the fixed token.
func (s StaticTokenProvider) AccessToken() (string, error) {
	if strings.TrimSpace(string(s)) == "" {
		return "", fmt.Errorf("empty token")
	}
	return string(s), nil
}
