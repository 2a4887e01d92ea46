package cli

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/devnesthq/devnest/internal/config"
)

func resetConfigSetFlagsForTest() {
	configSetStateFile = ""
	configSetUIAccent = ""
	configSetUICodeTheme = ""
	configSetUITheme = ""
	configSetThreshold = config.DefaultThreshold
	configSetFields = fieldsValue{}

	for _, name := range []string{"state-file", "ui-accent", "ui-code-theme", "ui-theme", "threshold", "fields"} {
		if f := configSetCmd.Flags().Lookup(name); f != nil {
			f.Changed = false
		}
	}
}

func resetConfigUnsetFlagsForTest() {
	configUnsetStateFile = false
	configUnsetUIAccent = false
	configUnsetUICodeTheme = false
	configUnsetUITheme = false
	configUnsetThreshold = false
	configUnsetFields = false
}

func useConfigPathForTest(t *testing.T, cfgPath string, asJSON bool) {
	t.Helper()

	prevConfig := configPath
	prevState := statePathFlag
	prevJSON := jsonOutput
	t.Cleanup(func() {
		configPath = prevConfig
		statePathFlag = prevState
		jsonOutput = prevJSON
		resetConfigSetFlagsForTest()
		resetConfigUnsetFlagsForTest()
	})

	configPath = cfgPath
	statePathFlag = ""
	jsonOutput = asJSON
	resetConfigSetFlagsForTest()
	resetConfigUnsetFlagsForTest()
}

func TestConfigInitCreatesConfigFile(t *testing.T) {
	tmp := t.TempDir()
	cfgPath := filepath.Join(tmp, "nested", "config.toml")
	useConfigPathForTest(t, cfgPath, true)

	if err := configInitCmd.RunE(configInitCmd, []string{}); err != nil {
		t.Fatalf("configInitCmd.RunE returned error: %v", err)
	}

	content, err := os.ReadFile(cfgPath)
	if err != nil {
		t.Fatalf("failed to read created config: %v", err)
	}
	if !strings.Contains(string(content), "# DevNest Configuration") {
		t.Fatalf("expected default config header in file, got:\n%s", string(content))
	}
}

func TestConfigSetUpdatesFields(t *testing.T) {
	tmp := t.TempDir()
	cfgPath := filepath.Join(tmp, "config.toml")
	if err := os.WriteFile(cfgPath, []byte("state_file = \"old.toml\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	useConfigPathForTest(t, cfgPath, true)

	configSetStateFile = "devnest-state.toml"
	configSetUIAccent = "39"
	configSetUICodeTheme = "dracula"
	configSetUITheme = "forest-green"
	configSetThreshold = 55
	if err := configSetFields.Set("name,id"); err != nil {
		t.Fatalf("fields Set: %v", err)
	}

	for _, name := range []string{"state-file", "ui-accent", "ui-code-theme", "ui-theme", "threshold", "fields"} {
		configSetCmd.Flags().Lookup(name).Changed = true
	}

	if err := configSetCmd.RunE(configSetCmd, []string{}); err != nil {
		t.Fatalf("configSetCmd.RunE returned error: %v", err)
	}

	cfg, err := config.LoadFrom(cfgPath)
	if err != nil {
		t.Fatalf("reload config: %v", err)
	}
	if cfg.StateFile != "devnest-state.toml" {
		t.Fatalf("expected state_file=devnest-state.toml, got %q", cfg.StateFile)
	}
	if cfg.UI.Accent != "39" {
		t.Fatalf("expected ui.accent=39, got %q", cfg.UI.Accent)
	}
	if cfg.UI.CodeTheme != "dracula" {
		t.Fatalf("expected ui.code_theme=dracula, got %q", cfg.UI.CodeTheme)
	}
	if cfg.UI.Theme != "forest-green" {
		t.Fatalf("expected ui.theme=forest-green, got %q", cfg.UI.Theme)
	}
	if cfg.SearchThreshold() != 55 {
		t.Fatalf("expected search.threshold=55, got %v", cfg.SearchThreshold())
	}
	if !reflect.DeepEqual(cfg.SearchFields(), []string{"name", "id"}) {
		t.Fatalf("expected search.fields=[name id], got %v", cfg.SearchFields())
	}
}

func TestConfigUnsetClearsFields(t *testing.T) {
	tmp := t.TempDir()
	cfgPath := filepath.Join(tmp, "config.toml")

	content := `state_file = "custom.toml"

[ui]
accent = "39"
code_theme = "dracula"
theme = "neon-tech"

[search]
threshold = 40
fields = ["name"]
`
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	useConfigPathForTest(t, cfgPath, true)

	configUnsetStateFile = true
	configUnsetUIAccent = true
	configUnsetUICodeTheme = true
	configUnsetUITheme = true
	configUnsetThreshold = true
	configUnsetFields = true

	if err := configUnsetCmd.RunE(configUnsetCmd, []string{}); err != nil {
		t.Fatalf("configUnsetCmd.RunE returned error: %v", err)
	}

	cfg, err := config.LoadFrom(cfgPath)
	if err != nil {
		t.Fatalf("reload config: %v", err)
	}
	if cfg.StateFile != "" {
		t.Fatalf("expected state_file to be cleared, got %q", cfg.StateFile)
	}
	if cfg.UI.Accent != "" || cfg.UI.CodeTheme != "" || cfg.UI.Theme != "" {
		t.Fatalf("expected ui settings to be cleared, got %+v", cfg.UI)
	}
	if cfg.Search.Threshold != nil {
		t.Fatalf("expected search.threshold to be cleared, got %v", *cfg.Search.Threshold)
	}
	if len(cfg.Search.Fields) != 0 {
		t.Fatalf("expected search.fields to be cleared, got %v", cfg.Search.Fields)
	}
}

func TestConfigSetRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		flag    string
		set     func()
		wantErr string
	}{
		{
			name:    "accent",
			flag:    "ui-accent",
			set:     func() { configSetUIAccent = "#12345" },
			wantErr: "invalid ui-accent",
		},
		{
			name:    "code theme",
			flag:    "ui-code-theme",
			set:     func() { configSetUICodeTheme = "no-such-style" },
			wantErr: "unknown code theme",
		},
		{
			name:    "theme",
			flag:    "ui-theme",
			set:     func() { configSetUITheme = "plaid" },
			wantErr: "theme not found",
		},
		{
			name:    "threshold",
			flag:    "threshold",
			set:     func() { configSetThreshold = 140 },
			wantErr: "between 0 and 100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmp := t.TempDir()
			cfgPath := filepath.Join(tmp, "config.toml")
			if err := os.WriteFile(cfgPath, []byte(""), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			useConfigPathForTest(t, cfgPath, false)

			tt.set()
			configSetCmd.Flags().Lookup(tt.flag).Changed = true

			err := configSetCmd.RunE(configSetCmd, []string{})
			if err == nil {
				t.Fatalf("expected error for %s", tt.flag)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}

			content, readErr := os.ReadFile(cfgPath)
			if readErr != nil {
				t.Fatalf("read config: %v", readErr)
			}
			if len(content) != 0 {
				t.Fatalf("expected config to stay untouched, got:\n%s", content)
			}
		})
	}
}

func TestConfigSetRequiresAField(t *testing.T) {
	tmp := t.TempDir()
	useConfigPathForTest(t, filepath.Join(tmp, "config.toml"), false)

	err := configSetCmd.RunE(configSetCmd, []string{})
	if err == nil || !strings.Contains(err.Error(), "no fields provided") {
		t.Fatalf("expected missing-field error, got %v", err)
	}
}

func TestConfigUnsetMissingFile(t *testing.T) {
	tmp := t.TempDir()
	useConfigPathForTest(t, filepath.Join(tmp, "absent.toml"), false)
	configUnsetUIAccent = true

	err := configUnsetCmd.RunE(configUnsetCmd, []string{})
	if err == nil || !strings.Contains(err.Error(), "config file not found") {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestConfigShowReportsBrokenConfig(t *testing.T) {
	tmp := t.TempDir()
	cfgPath := filepath.Join(tmp, "config.toml")
	if err := os.WriteFile(cfgPath, []byte("[search]\nthreshold = \"high\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	useConfigPathForTest(t, cfgPath, false)

	if err := runConfigShow(configCmd, nil); err == nil {
		t.Fatalf("expected error for invalid config")
	}
}
