// Package theme holds the built-in color presets.
package theme

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// DefaultID is the preset used when none has been chosen.
const DefaultID = "midnight-blue"

//go:embed themes.yaml
var themesYAML []byte

// HSL is a color written as "H S% L%".
type HSL string

// Preset is a named color scheme.
type Preset struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Dark        bool   `yaml:"dark" json:"dark"`

	Primary    HSL `yaml:"primary" json:"primary"`
	Accent     HSL `yaml:"accent" json:"accent"`
	Success    HSL `yaml:"success" json:"success"`
	Background HSL `yaml:"background" json:"background"`
	Foreground HSL `yaml:"foreground" json:"foreground"`
	Muted      HSL `yaml:"muted" json:"muted"`
}

var presets = mustParse(themesYAML)

func mustParse(data []byte) []Preset {
	out, err := Parse(data)
	if err != nil {
		panic(err)
	}
	return out
}

// Parse decodes and validates a preset list.
func Parse(data []byte) ([]Preset, error) {
	var out []Preset
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to parse themes: %w", err)
	}
	seen := make(map[string]bool, len(out))
	for _, p := range out {
		if p.ID == "" {
			return nil, fmt.Errorf("theme %q has no id", p.Name)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("duplicate theme id %q", p.ID)
		}
		seen[p.ID] = true
		for _, c := range []HSL{p.Primary, p.Accent, p.Success, p.Background, p.Foreground, p.Muted} {
			if _, err := c.Color(); err != nil {
				return nil, fmt.Errorf("theme %q: %w", p.ID, err)
			}
		}
	}
	return out, nil
}

// All returns every preset in display order.
func All() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

// Lookup finds a preset by id.
func Lookup(id string) (Preset, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, p := range presets {
		if p.ID == id {
			return p, true
		}
	}
	return Preset{}, false
}

// Default returns the default preset.
func Default() Preset {
	p, _ := Lookup(DefaultID)
	return p
}

// Resolve returns the first known preset among ids, or Default.
func Resolve(ids ...string) Preset {
	for _, id := range ids {
		if p, ok := Lookup(id); ok {
			return p
		}
	}
	return Default()
}

// Opposite returns the first preset whose dark flag differs from p.
func Opposite(p Preset) Preset {
	for _, candidate := range presets {
		if candidate.Dark != p.Dark {
			return candidate
		}
	}
	return p
}

// Color parses the triplet.
func (h HSL) Color() (colorful.Color, error) {
	parts := strings.Fields(string(h))
	if len(parts) != 3 {
		return colorful.Color{}, fmt.Errorf("invalid hsl %q", string(h))
	}
	var vals [3]float64
	for i, part := range parts {
		part = strings.TrimSuffix(part, "%")
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return colorful.Color{}, fmt.Errorf("invalid hsl %q: %w", string(h), err)
		}
		vals[i] = v
	}
	if vals[0] < 0 || vals[0] > 360 || vals[1] < 0 || vals[1] > 100 || vals[2] < 0 || vals[2] > 100 {
		return colorful.Color{}, fmt.Errorf("hsl %q out of range", string(h))
	}
	return colorful.Hsl(vals[0], vals[1]/100, vals[2]/100), nil
}

// Hex converts the triplet to "#rrggbb". Invalid triplets yield "".
func (h HSL) Hex() string {
	c, err := h.Color()
	if err != nil {
		return ""
	}
	return c.Clamped().Hex()
}

// AccentHex is the color used for terminal highlights.
func (p Preset) AccentHex() string {
	return p.Primary.Hex()
}

// MatchHex is the color used for fuzzy-match highlights.
func (p Preset) MatchHex() string {
	return p.Accent.Hex()
}
