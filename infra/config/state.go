package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/quillfeed/quillterm/domain"
)

// UIState holds preferences persisted between sessions. Missing or corrupt
// state files are treated as empty; preferences are never load-bearing.
type UIState struct {
	DefaultVisibility string `yaml:"default_visibility"`
}

// Visibility returns the persisted default visibility, falling back to the
// application default for absent or unknown values.
func (s UIState) Visibility() domain.Visibility {
	v := domain.Visibility(s.DefaultVisibility)
	if domain.ValidVisibility(v) {
		return v
	}
	return domain.DefaultVisibility
}

// LoadUIState reads persisted UI state from path.
func LoadUIState(path string) (UIState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return UIState{}, nil
		}
		return UIState{}, fmt.Errorf("reading ui state: %w", err)
	}

	var s UIState
	if err := yaml.Unmarshal(data, &s); err != nil {
		return UIState{}, fmt.Errorf("parsing ui state: %w", err)
	}
	return s, nil
}

// SaveUIState writes persisted UI state to path, creating parent
// directories as needed.
func SaveUIState(path string, s UIState) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding ui state: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing ui state: %w", err)
	}
	return nil
}
