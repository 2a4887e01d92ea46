package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/devnesthq/devnest/internal/atomicfile"
)

const (
	// StateVersion is the current state file schema version.
	StateVersion = 1
)

// State represents mutable machine-local preferences.
type State struct {
	Version     int    `toml:"version"`
	ActiveTheme string `toml:"active_theme,omitempty"`

	// Favorites holds tool ids in the order they were starred.
	Favorites []string `toml:"favorites,omitempty"`

	// Usage is keyed by tool id.
	Usage map[string]ToolUsage `toml:"usage,omitempty"`
}

// ToolUsage is the usage history of one tool.
type ToolUsage struct {
	TotalUses int       `toml:"total_uses"`
	LastUsed  time.Time `toml:"last_used"`
	Visits    []Visit   `toml:"visits,omitempty"`
}

// Visit is one use of a tool.
type Visit struct {
	At         time.Time `toml:"at"`
	DurationMs int64     `toml:"duration_ms"`
}

// ResolveConfigPath resolves the effective config path from an optional override.
func ResolveConfigPath(explicitConfigPath string) string {
	if strings.TrimSpace(explicitConfigPath) != "" {
		return explicitConfigPath
	}
	return DefaultPath()
}

// ResolveStatePath resolves the state.toml path with precedence:
//  1. explicitStatePath flag
//  2. cfg.StateFile from config.toml (relative to config file dir when not absolute)
//  3. sibling state.toml next to config.toml
func ResolveStatePath(explicitStatePath, configPath string, cfg *Config) string {
	if strings.TrimSpace(explicitStatePath) != "" {
		return explicitStatePath
	}

	configDir := filepath.Dir(ResolveConfigPath(configPath))

	if cfg != nil {
		if fromConfig := strings.TrimSpace(cfg.StateFile); fromConfig != "" {
			if isAbsoluteStatePath(fromConfig) {
				return filepath.Clean(filepath.FromSlash(fromConfig))
			}
			return filepath.Join(configDir, filepath.FromSlash(fromConfig))
		}
	}

	return filepath.Join(configDir, "state.toml")
}

func isAbsoluteStatePath(p string) bool {
	if filepath.IsAbs(p) {
		return true
	}
	// Slash-rooted values count as absolute on every OS.
	return strings.HasPrefix(filepath.ToSlash(p), "/")
}

// LoadState loads state.toml from a specific path.
// Returns a default state when the file does not exist.
func LoadState(path string) (*State, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("state path is required")
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return newState(), nil
	}

	var state State
	if _, err := toml.DecodeFile(path, &state); err != nil {
		return nil, fmt.Errorf("failed to parse state %s: %w", path, err)
	}

	state.normalize()
	return &state, nil
}

// SaveState writes state.toml atomically.
func SaveState(path string, state *State) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("state path is required")
	}
	if state == nil {
		state = newState()
	}

	normalized := *state
	normalized.normalize()

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(normalized); err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := atomicfile.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write state %s: %w", path, err)
	}

	return nil
}

func newState() *State {
	s := &State{}
	s.normalize()
	return s
}

func (s *State) normalize() {
	if s.Version == 0 {
		s.Version = StateVersion
	}
	s.ActiveTheme = strings.TrimSpace(s.ActiveTheme)
	if s.Usage == nil {
		s.Usage = make(map[string]ToolUsage)
	}

	seen := make(map[string]bool, len(s.Favorites))
	favorites := make([]string, 0, len(s.Favorites))
	for _, id := range s.Favorites {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		favorites = append(favorites, id)
	}
	s.Favorites = favorites
}
