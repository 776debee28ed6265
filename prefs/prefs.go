// Package prefs persists the one client-side preference, the display theme.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

type Prefs struct {
	Theme Theme `yaml:"theme"`
}

// Store reads and writes preferences at a fixed path.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string { return s.path }

// Load returns the saved preferences. A missing file or an unknown theme
// yields the default (dark) theme.
func (s *Store) Load() (Prefs, error) {
	p := Prefs{Theme: ThemeDark}
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return p, nil
		}
		return p, fmt.Errorf("read prefs: %w", err)
	}
	if err := yaml.Unmarshal(b, &p); err != nil {
		return Prefs{Theme: ThemeDark}, fmt.Errorf("parse prefs: %w", err)
	}
	if p.Theme != ThemeLight {
		p.Theme = ThemeDark
	}
	return p, nil
}

// Save writes p atomically.
func (s *Store) Save(p Prefs) error {
	if s.path == "" {
		return errors.New("prefs path is required")
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ensure prefs directory: %w", err)
	}
	b, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "prefs-*.yaml")
	if err != nil {
		return fmt.Errorf("create temp prefs file: %w", err)
	}
	tmpPath := tmp.Name()
	success := false
	defer func() {
		_ = tmp.Close()
		if !success {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(b); err != nil {
		return fmt.Errorf("write temp prefs file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp prefs file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("replace prefs file: %w", err)
	}
	success = true
	return nil
}
