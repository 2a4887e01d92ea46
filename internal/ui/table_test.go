package ui

import (
	"testing"
)

func TestTableAlignsColumns(t *testing.T) {
	tbl := NewTable(3)
	tbl.AddRow("json", "Formatters", "JSON Formatter")
	tbl.AddRow("b64", "Encoders", "Base64", "ignored")

	want := "json  Formatters  JSON Formatter\n" +
		"b64   Encoders    Base64\n"
	if got := tbl.String(); got != want {
		t.Fatalf("unexpected table:\n%q\nwant\n%q", got, want)
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{100, "100"},
		{47.3333, "47.3"},
		{80.06, "80.1"},
		{0, "0"},
	}
	for _, tt := range tests {
		if got := Score(tt.in); got != tt.want {
			t.Errorf("Score(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
