package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	threshold := 50.0
	cfg := &Config{
		StateFile: "state.toml",
		UI: UIConfig{
			Accent: "39",
			Theme:  "ocean-teal",
		},
		Search: SearchConfig{
			Threshold: &threshold,
			Fields:    []string{"name", "id"},
		},
	}

	if err := SaveTo(path, cfg); err != nil {
		t.Fatalf("SaveTo returned error: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom returned error: %v", err)
	}

	if loaded.StateFile != "state.toml" || loaded.UI.Accent != "39" || loaded.UI.Theme != "ocean-teal" {
		t.Fatalf("unexpected loaded config: %+v", loaded)
	}
	if loaded.SearchThreshold() != 50 {
		t.Fatalf("expected threshold 50, got %v", loaded.SearchThreshold())
	}
	if !reflect.DeepEqual(loaded.SearchFields(), []string{"name", "id"}) {
		t.Fatalf("unexpected fields: %v", loaded.SearchFields())
	}
}

func TestSaveToOmitsEmptyValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	if err := SaveTo(path, &Config{UI: UIConfig{CodeTheme: "  "}}); err != nil {
		t.Fatalf("SaveTo returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	content := string(data)
	for _, unwanted := range []string{"[ui]", "[search]", "state_file"} {
		if strings.Contains(content, unwanted) {
			t.Fatalf("expected %q to be omitted, got:\n%s", unwanted, content)
		}
	}
}

func TestSaveToRequiresPath(t *testing.T) {
	if err := SaveTo(" ", &Config{}); err == nil {
		t.Fatal("expected error for empty path")
	}
}
