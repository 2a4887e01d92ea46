package theme

import (
	"strings"
	"testing"
)

func TestPresets(t *testing.T) {
	all := All()
	if len(all) != 8 {
		t.Fatalf("expected 8 presets, got %d", len(all))
	}
	if all[0].ID != DefaultID {
		t.Fatalf("expected %s first, got %s", DefaultID, all[0].ID)
	}
	for _, p := range all {
		if p.AccentHex() == "" || p.MatchHex() == "" {
			t.Errorf("preset %s has unparseable colors", p.ID)
		}
	}
}

func TestLookup(t *testing.T) {
	p, ok := Lookup(" Forest-Green ")
	if !ok || p.Name != "Forest Green" {
		t.Fatalf("Lookup = %+v, %v", p, ok)
	}
	if _, ok := Lookup("solarized"); ok {
		t.Fatal("expected unknown preset to be missing")
	}
}

func TestResolve(t *testing.T) {
	if got := Resolve("", "nope", "royal-purple", "light").ID; got != "royal-purple" {
		t.Fatalf("Resolve picked %q", got)
	}
	if got := Resolve().ID; got != DefaultID {
		t.Fatalf("expected default, got %q", got)
	}
}

func TestOpposite(t *testing.T) {
	if got := Opposite(Default()); got.ID != "arctic-blue" {
		t.Fatalf("expected first light preset, got %q", got.ID)
	}
	light, _ := Lookup("light")
	if got := Opposite(light); got.ID != DefaultID {
		t.Fatalf("expected first dark preset, got %q", got.ID)
	}
}

func TestHSLHex(t *testing.T) {
	tests := []struct {
		in   HSL
		want string
	}{
		{"217 91% 60%", "#3c83f6"},
		{"120 100% 50%", "#00ff00"},
		{"0 0% 100%", "#ffffff"},
		{"215.4 16.3% 56.9%", "#7f8ea3"},
		{"bad", ""},
		{"400 10% 10%", ""},
	}
	for _, tt := range tests {
		if got := tt.in.Hex(); got != tt.want {
			t.Errorf("HSL(%q).Hex() = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseRejectsBadPresets(t *testing.T) {
	tests := []struct {
		yaml string
		want string
	}{
		{"- name: x\n", "has no id"},
		{"- id: a\n  primary: 1 1% 1%\n  accent: 1 1% 1%\n  success: 1 1% 1%\n  background: 1 1% 1%\n  foreground: 1 1% 1%\n  muted: 1 1% 1%\n- id: a\n", "duplicate"},
		{"- id: a\n  primary: red\n", "invalid hsl"},
	}
	for _, tt := range tests {
		_, err := Parse([]byte(tt.yaml))
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Errorf("Parse(%q) error = %v, want containing %q", tt.yaml, err, tt.want)
		}
	}
}
