package cli

import (
	"os/exec"
	"strings"
	"testing"

	"github.com/devnesthq/devnest/internal/catalog"
	"github.com/devnesthq/devnest/internal/ui"
)

func TestInteractivePickerMissingArgSuggestion(t *testing.T) {
	prevLookPath := fzfLookPath
	t.Cleanup(func() {
		fzfLookPath = prevLookPath
	})

	t.Run("includes install hint when fzf missing", func(t *testing.T) {
		fzfLookPath = func(string) (string, error) {
			return "", exec.ErrNotFound
		}

		suggestion := interactivePickerMissingArgSuggestion("show", "devnest show <tool>")
		if !strings.Contains(suggestion, "Install fzf") {
			t.Fatalf("expected install hint, got %q", suggestion)
		}
		if !strings.Contains(suggestion, "devnest show <tool>") {
			t.Fatalf("expected fallback usage, got %q", suggestion)
		}
	})

	t.Run("uses direct usage hint when fzf installed", func(t *testing.T) {
		fzfLookPath = func(string) (string, error) {
			return "/usr/local/bin/fzf", nil
		}

		suggestion := interactivePickerMissingArgSuggestion("show", "devnest show <tool>")
		if strings.Contains(suggestion, "Install fzf") {
			t.Fatalf("did not expect install hint when fzf is available, got %q", suggestion)
		}
		if !strings.Contains(suggestion, "devnest show <tool>") {
			t.Fatalf("expected fallback usage, got %q", suggestion)
		}
	})
}

func TestPickToolWithFZFMapsSelectionToID(t *testing.T) {
	prevRun := fzfRun
	t.Cleanup(func() {
		fzfRun = prevRun
	})

	var gotLines []string
	var gotOpts fzfPickerOptions
	fzfRun = func(lines []string, opts fzfPickerOptions) (string, bool, error) {
		gotLines = lines
		gotOpts = opts
		return lines[1], true, nil
	}

	tools := catalog.Default().All()
	id, selected, err := pickToolWithFZF(tools, map[string]bool{tools[1].ID: true}, "tool> ", "header")
	if err != nil || !selected {
		t.Fatalf("pickToolWithFZF() = (%q, %v, %v)", id, selected, err)
	}
	if id != tools[1].ID {
		t.Fatalf("selected id = %q, want %q", id, tools[1].ID)
	}
	if len(gotLines) != len(tools) {
		t.Fatalf("expected one line per tool, got %d", len(gotLines))
	}
	if gotOpts.WithNth != "2.." || gotOpts.Delimiter != "\t" {
		t.Fatalf("expected the id column to be hidden, got %+v", gotOpts)
	}
	if !strings.Contains(gotLines[1], ui.SymbolFavorite) || !strings.Contains(gotLines[1], tools[1].Name) {
		t.Fatalf("unexpected picker line %q", gotLines[1])
	}
}

func TestPickToolWithFZFCancelled(t *testing.T) {
	prevRun := fzfRun
	t.Cleanup(func() {
		fzfRun = prevRun
	})
	fzfRun = func([]string, fzfPickerOptions) (string, bool, error) {
		return "", false, nil
	}

	id, selected, err := pickToolWithFZF(catalog.Default().All(), nil, "tool> ", "")
	if err != nil || selected || id != "" {
		t.Fatalf("pickToolWithFZF() = (%q, %v, %v), want cancelled", id, selected, err)
	}
}
