package catalog

import (
	"strings"
	"testing"
	"time"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	if got := len(c.All()); got != 7 {
		t.Fatalf("expected 7 tools, got %d", got)
	}

	wantIDs := []string{
		"json-formatter", "base64", "regex-tester", "url-encoder",
		"code-minifier", "color-picker", "markdown-previewer",
	}
	for i, id := range c.IDs() {
		if id != wantIDs[i] {
			t.Fatalf("tool %d: expected id %q, got %q", i, wantIDs[i], id)
		}
	}

	for _, tool := range c.All() {
		if tool.Name == "" || tool.Description == "" || tool.Command == "" {
			t.Errorf("tool %q is missing name, description or command", tool.ID)
		}
	}
}

func TestLookup(t *testing.T) {
	c := Default()

	tool, ok := c.Lookup("color-picker")
	if !ok {
		t.Fatal("expected color-picker to exist")
	}
	if tool.Name != "Color Picker" || tool.Category != "Converters" {
		t.Fatalf("unexpected tool: %+v", tool)
	}

	if _, ok := c.Lookup("nope"); ok {
		t.Fatal("expected unknown id lookup to fail")
	}
}

func TestByCategory(t *testing.T) {
	c := Default()

	tests := []struct {
		category string
		want     int
	}{
		{"Formatters", 2},
		{"encoders", 2},
		{"Testers", 1},
		{"Converters", 1},
		{"Minifiers", 1},
		{AllCategory, 7},
		{"", 7},
		{"Unknown", 0},
	}
	for _, tt := range tests {
		if got := len(c.ByCategory(tt.category)); got != tt.want {
			t.Errorf("ByCategory(%q) = %d tools, want %d", tt.category, got, tt.want)
		}
	}
}

func TestPopular(t *testing.T) {
	popular := Default().Popular()
	if len(popular) != 6 {
		t.Fatalf("expected 6 popular tools, got %d", len(popular))
	}
	for _, tool := range popular {
		if tool.ID == "url-encoder" {
			t.Fatal("url-encoder should not be popular")
		}
	}
}

func TestHasCategory(t *testing.T) {
	c := Default()
	if !c.HasCategory("minifiers") || !c.HasCategory("All Tools") {
		t.Fatal("expected known categories to be recognized")
	}
	if c.HasCategory("Games") {
		t.Fatal("expected unknown category to be rejected")
	}
}

func TestParseRejectsBadCatalogs(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "missing id",
			yaml: "categories: [A]\ntools:\n  - name: x\n    category: A\n",
			want: "has no id",
		},
		{
			name: "duplicate id",
			yaml: "categories: [A]\ntools:\n  - id: x\n    category: A\n  - id: x\n    category: A\n",
			want: "duplicate tool id",
		},
		{
			name: "unknown category",
			yaml: "categories: [A]\ntools:\n  - id: x\n    category: B\n",
			want: "unknown category",
		},
		{
			name: "bad yaml",
			yaml: "tools: [",
			want: "failed to parse",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestDailyTip(t *testing.T) {
	tips := Tips()
	if len(tips) == 0 {
		t.Fatal("expected embedded tips")
	}

	day := time.Date(2026, time.March, 3, 8, 0, 0, 0, time.UTC)
	got := DailyTip(day)
	want := tips[day.YearDay()%len(tips)]
	if got != want {
		t.Fatalf("DailyTip = %q, want %q", got, want)
	}

	later := time.Date(2026, time.March, 3, 23, 59, 0, 0, time.UTC)
	if DailyTip(later) != got {
		t.Fatal("expected the same tip all day")
	}
	for _, tip := range tips {
		if strings.TrimSpace(tip) == "" {
			t.Fatal("expected no blank tips")
		}
	}
}
