package config

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/devnesthq/devnest/internal/atomicfile"
)

type persistedConfig struct {
	StateFile *string                  `toml:"state_file,omitempty"`
	UI        *persistedUISettings     `toml:"ui,omitempty"`
	Search    *persistedSearchSettings `toml:"search,omitempty"`
}

type persistedUISettings struct {
	Accent    *string `toml:"accent,omitempty"`
	CodeTheme *string `toml:"code_theme,omitempty"`
	Theme     *string `toml:"theme,omitempty"`
}

type persistedSearchSettings struct {
	Threshold *float64 `toml:"threshold,omitempty"`
	Fields    []string `toml:"fields,omitempty"`
}

func nonEmptyPtr(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// SaveTo writes the global config to a specific path atomically. Empty
// values are left out of the file.
func SaveTo(path string, cfg *Config) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("config path is required")
	}
	if cfg == nil {
		cfg = &Config{}
	}

	out := persistedConfig{
		StateFile: nonEmptyPtr(cfg.StateFile),
	}

	ui := persistedUISettings{
		Accent:    nonEmptyPtr(cfg.UI.Accent),
		CodeTheme: nonEmptyPtr(cfg.UI.CodeTheme),
		Theme:     nonEmptyPtr(cfg.UI.Theme),
	}
	if ui.Accent != nil || ui.CodeTheme != nil || ui.Theme != nil {
		out.UI = &ui
	}

	if cfg.Search.Threshold != nil || len(cfg.Search.Fields) > 0 {
		out.Search = &persistedSearchSettings{
			Threshold: cfg.Search.Threshold,
			Fields:    cfg.Search.Fields,
		}
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(out); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := atomicfile.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}

	return nil
}
