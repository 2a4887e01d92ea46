// Package config handles global DevNest configuration and machine-local state.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultThreshold is the palette's minimum match score when search.threshold
// is unset.
const DefaultThreshold = 30.0

// Search fields that can be projected for palette matching.
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldID          = "id"
)

// KnownSearchFields lists every accepted search.fields value.
var KnownSearchFields = []string{FieldName, FieldDescription, FieldCategory, FieldID}

// DefaultSearchFields are matched when search.fields is unset.
var DefaultSearchFields = []string{FieldName, FieldDescription}

// Config represents the global DevNest configuration.
type Config struct {
	// StateFile overrides where state.toml lives. Relative paths are resolved
	// against the config file directory.
	StateFile string `toml:"state_file"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`

	// Search tunes the command palette.
	Search SearchConfig `toml:"search"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an optional accent color for CLI output and markdown rendering.
	// Supported values are ANSI color codes ("0" to "255") or hex colors ("#RRGGBB").
	Accent string `toml:"accent"`

	// CodeTheme sets the Glamour/Chroma theme used for rendered markdown code blocks.
	// Example values: "monokai", "dracula", "github", "nord".
	CodeTheme string `toml:"code_theme"`

	// Theme is a preset id used when no theme has been picked with
	// 'devnest theme use'. Its accent applies when Accent is empty.
	Theme string `toml:"theme"`
}

// SearchConfig configures palette matching.
type SearchConfig struct {
	// Threshold is the minimum score (0-100) a tool needs to be listed.
	Threshold *float64 `toml:"threshold"`

	// Fields selects which tool fields the palette matches against.
	Fields []string `toml:"fields"`
}

// SearchThreshold returns the configured threshold or DefaultThreshold.
func (c *Config) SearchThreshold() float64 {
	if c == nil || c.Search.Threshold == nil {
		return DefaultThreshold
	}
	return *c.Search.Threshold
}

// SearchFields returns the configured fields, normalized, or
// DefaultSearchFields when none are set.
func (c *Config) SearchFields() []string {
	if c == nil || len(c.Search.Fields) == 0 {
		return append([]string(nil), DefaultSearchFields...)
	}
	out := make([]string, 0, len(c.Search.Fields))
	for _, f := range c.Search.Fields {
		out = append(out, strings.ToLower(strings.TrimSpace(f)))
	}
	return out
}

// Validate checks values that would otherwise fail later at use time.
func (c *Config) Validate() error {
	if c.Search.Threshold != nil {
		if err := ValidateThreshold(*c.Search.Threshold); err != nil {
			return fmt.Errorf("search.threshold: %w", err)
		}
	}
	for _, f := range c.SearchFields() {
		if !IsSearchField(f) {
			return fmt.Errorf("search.fields: unknown field %q (want one of %s)", f, strings.Join(KnownSearchFields, ", "))
		}
	}
	return nil
}

// ValidateThreshold checks that t is a usable match score.
func ValidateThreshold(t float64) error {
	if t < 0 || t > 100 {
		return fmt.Errorf("threshold must be between 0 and 100, got %g", t)
	}
	return nil
}

// IsSearchField reports whether name is a known search field.
func IsSearchField(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, f := range KnownSearchFields {
		if f == name {
			return true
		}
	}
	return false
}

// Load loads the configuration from the default location.
// Returns a default config if the file doesn't exist.
func Load() (*Config, error) {
	configPath := DefaultPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &Config{}, nil
	}

	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &config, nil
}

// LoadAllowMissing loads path, returning an empty config and exists=false when
// the file is absent.
func LoadAllowMissing(path string) (*Config, bool, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Config{}, false, nil
	} else if err != nil {
		return nil, false, fmt.Errorf("failed to stat config %s: %w", path, err)
	}
	cfg, err := LoadFrom(path)
	if err != nil {
		return nil, true, err
	}
	return cfg, true, nil
}

// DefaultPath returns the default config file path.
// Checks ~/.config/devnest/config.toml first (XDG style),
// then falls back to OS-specific location.
func DefaultPath() string {
	if xdgPath, err := XDGPath(); err == nil {
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "devnest", "config.toml")
	}

	return filepath.Join(".", "config.toml")
}

// XDGPath returns the XDG-style config path (~/.config/devnest/config.toml).
func XDGPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "devnest", "config.toml"), nil
}

const defaultConfigTemplate = `# DevNest Configuration

# Where machine-local state (favorites, usage, active theme) is kept.
# Relative paths are resolved against this file's directory.
# state_file = "state.toml"

# [ui]
# Accent color for headers and highlights: ANSI code (0-255) or #RRGGBB.
# accent = "39"
# Code block theme for rendered markdown.
# code_theme = "monokai"
# Theme preset used until one is picked with 'devnest theme use'.
# theme = "midnight-blue"

# [search]
# Minimum palette score, 0-100.
# threshold = 30
# Tool fields matched by the palette: name, description, category, id.
# fields = ["name", "description"]
`

// CreateDefaultAt writes a commented default config to path unless a file is
// already there. It returns path either way.
func CreateDefaultAt(path string) (string, error) {
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(defaultConfigTemplate), 0o644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return path, nil
}
