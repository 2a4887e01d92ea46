package ui

import (
	"strings"
	"testing"
)

func TestTruncateWithEllipsis(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"Format, validate and beautify JSON", 20, "Format, validate..."},
		{"abcdefghij", 6, "abc..."},
		{"héllo wörld", 3, "hél"},
	}
	for _, tt := range tests {
		if got := TruncateWithEllipsis(tt.in, tt.max); got != tt.want {
			t.Errorf("TruncateWithEllipsis(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestResultsTableWidths(t *testing.T) {
	tbl := NewResultsTable(NewDisplayContextWithWidth(100), PaletteLayout)

	tool := tbl.ContentWidth("tool")
	desc := tbl.ContentWidth("description")
	if tool < ColTool.MinWidth || tool > ColTool.MaxWidth {
		t.Fatalf("tool width %d outside [%d, %d]", tool, ColTool.MinWidth, ColTool.MaxWidth)
	}
	if desc <= tool {
		t.Fatalf("expected description (%d) wider than tool (%d)", desc, tool)
	}

	narrow := NewResultsTable(NewDisplayContextWithWidth(20), PaletteLayout)
	if got := narrow.ContentWidth("description"); got != ColDescription.MinWidth {
		t.Fatalf("expected min width on narrow terminal, got %d", got)
	}
}

func TestResultsTableRender(t *testing.T) {
	tbl := NewResultsTable(NewDisplayContextWithWidth(100), PaletteLayout)
	if tbl.Render() != "" {
		t.Fatal("expected empty render without rows")
	}

	tbl.AddRow(ResultRow{Num: 1, Cells: []string{"", "*", "JSON Formatter", "Format JSON", "100"}})
	tbl.AddRow(ResultRow{Num: 2, Cells: []string{"", " ", "Base64", "Encode text", "90"}})

	out := tbl.Render()
	for _, want := range []string{"JSON Formatter", "Base64", "100", "2"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}
