// Package catalog holds the built-in tool catalog and daily tips.
package catalog

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// AllCategory is the virtual category that matches every tool.
const AllCategory = "All Tools"

//go:embed tools.yaml
var toolsYAML []byte

//go:embed tips.yaml
var tipsYAML []byte

// Tool describes one utility in the catalog.
type Tool struct {
	ID          string   `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Category    string   `yaml:"category" json:"category"`
	Icon        string   `yaml:"icon" json:"icon"`
	Popular     bool     `yaml:"popular" json:"popular"`
	Aliases     []string `yaml:"aliases" json:"aliases,omitempty"`

	// Command is the devnest subcommand that runs the tool.
	Command string `yaml:"command" json:"command"`
}

// Catalog is the parsed tool catalog.
type Catalog struct {
	Categories []string `yaml:"categories"`
	Tools      []Tool   `yaml:"tools"`

	byID map[string]int
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultTips    []string
	defaultErr     error
)

// Parse decodes a catalog from YAML and validates it.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse tool catalog: %w", err)
	}

	known := make(map[string]bool, len(c.Categories))
	for _, cat := range c.Categories {
		known[cat] = true
	}

	c.byID = make(map[string]int, len(c.Tools))
	for i, t := range c.Tools {
		if strings.TrimSpace(t.ID) == "" {
			return nil, fmt.Errorf("tool %d has no id", i)
		}
		if _, dup := c.byID[t.ID]; dup {
			return nil, fmt.Errorf("duplicate tool id %q", t.ID)
		}
		if !known[t.Category] {
			return nil, fmt.Errorf("tool %q has unknown category %q", t.ID, t.Category)
		}
		c.byID[t.ID] = i
	}

	return &c, nil
}

func loadDefaults() {
	defaultCatalog, defaultErr = Parse(toolsYAML)
	if defaultErr != nil {
		return
	}
	if err := yaml.Unmarshal(tipsYAML, &defaultTips); err != nil {
		defaultErr = fmt.Errorf("failed to parse tips: %w", err)
	}
}

// Default returns the embedded catalog. The embedded data is validated by
// tests, so an error here means a broken build.
func Default() *Catalog {
	defaultOnce.Do(loadDefaults)
	if defaultErr != nil {
		panic(defaultErr)
	}
	return defaultCatalog
}

// All returns every tool in catalog order.
func (c *Catalog) All() []Tool {
	out := make([]Tool, len(c.Tools))
	copy(out, c.Tools)
	return out
}

// Lookup returns the tool with the given id.
func (c *Catalog) Lookup(id string) (Tool, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Tool{}, false
	}
	return c.Tools[i], true
}

// IDs returns all tool ids in catalog order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.Tools))
	for i, t := range c.Tools {
		ids[i] = t.ID
	}
	return ids
}

// ByCategory returns the tools in a category. AllCategory or an empty string
// returns every tool. Matching is case-insensitive.
func (c *Catalog) ByCategory(category string) []Tool {
	category = strings.TrimSpace(category)
	if category == "" || strings.EqualFold(category, AllCategory) {
		return c.All()
	}
	var out []Tool
	for _, t := range c.Tools {
		if strings.EqualFold(t.Category, category) {
			out = append(out, t)
		}
	}
	return out
}

// Popular returns the tools flagged as popular.
func (c *Catalog) Popular() []Tool {
	var out []Tool
	for _, t := range c.Tools {
		if t.Popular {
			out = append(out, t)
		}
	}
	return out
}

// HasCategory reports whether name is a known category (or AllCategory).
func (c *Catalog) HasCategory(name string) bool {
	if strings.EqualFold(name, AllCategory) {
		return true
	}
	for _, cat := range c.Categories {
		if strings.EqualFold(cat, name) {
			return true
		}
	}
	return false
}

// Tips returns the embedded daily tips.
func Tips() []string {
	Default()
	out := make([]string, len(defaultTips))
	copy(out, defaultTips)
	return out
}

// DailyTip returns the tip for the day containing now. The same tip is shown
// all day and the list cycles through the year.
func DailyTip(now time.Time) string {
	tips := Tips()
	if len(tips) == 0 {
		return ""
	}
	return tips[now.YearDay()%len(tips)]
}
