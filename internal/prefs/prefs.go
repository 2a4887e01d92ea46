// Package prefs manages favorites, usage history and the active theme stored
// in state.toml.
package prefs

import (
	"fmt"
	"strings"

	"github.com/devnesthq/devnest/internal/config"
)

// Store wraps a loaded state file. Mutations stay in memory until Save.
type Store struct {
	path  string
	state *config.State
	dirty bool
}

// Open loads the state file at path. A missing file yields empty preferences.
func Open(path string) (*Store, error) {
	state, err := config.LoadState(path)
	if err != nil {
		return nil, err
	}
	return &Store{path: path, state: state}, nil
}

// New wraps an already loaded state. It is mainly useful in tests.
func New(path string, state *config.State) *Store {
	if state == nil {
		state = &config.State{}
	}
	if state.Usage == nil {
		state.Usage = make(map[string]config.ToolUsage)
	}
	return &Store{path: path, state: state}
}

// Path returns the state file location.
func (s *Store) Path() string {
	return s.path
}

// Dirty reports whether there are unsaved changes.
func (s *Store) Dirty() bool {
	return s.dirty
}

// Save writes the state file if anything changed.
func (s *Store) Save() error {
	if !s.dirty {
		return nil
	}
	if err := config.SaveState(s.path, s.state); err != nil {
		return err
	}
	s.dirty = false
	return nil
}

// ActiveTheme returns the theme picked with SetActiveTheme, if any.
func (s *Store) ActiveTheme() string {
	return s.state.ActiveTheme
}

// SetActiveTheme records the active theme preset id.
func (s *Store) SetActiveTheme(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("theme id is required")
	}
	if s.state.ActiveTheme != id {
		s.state.ActiveTheme = id
		s.dirty = true
	}
	return nil
}
