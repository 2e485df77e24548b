// Package prefs is the local convenience key-value store: it remembers the
// last-used profile across runs. Nothing here is authoritative data.
package prefs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

type Prefs struct {
	LastProfile string `json:"last_profile,omitempty"`
}

type Store struct {
	path string
}

func NewStore(configDir string) *Store {
	return &Store{path: filepath.Join(configDir, "prefs.json")}
}

// Load returns zero-value prefs when the file does not exist yet.
func (s *Store) Load() (Prefs, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Prefs{}, nil
		}
		return Prefs{}, fmt.Errorf("failed to read prefs: %w", err)
	}

	var p Prefs
	if err := json.Unmarshal(data, &p); err != nil {
		return Prefs{}, fmt.Errorf("failed to parse prefs: %w", err)
	}
	return p, nil
}

func (s *Store) Save(p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize prefs: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write prefs: %w", err)
	}
	return nil
}

// SetLastProfile records the most recently selected profile name.
func (s *Store) SetLastProfile(name string) error {
	p, err := s.Load()
	if err != nil {
		return err
	}
	p.LastProfile = name
	return s.Save(p)
}

// ClearLastProfile forgets the remembered profile, e.g. on sign-out.
func (s *Store) ClearLastProfile() error {
	p, err := s.Load()
	if err != nil {
		return err
	}
	if p.LastProfile == "" {
		return nil
	}
	p.LastProfile = ""
	return s.Save(p)
}
