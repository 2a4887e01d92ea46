package resolver

import (
	"reflect"
	"testing"

	"github.com/devnesthq/devnest/internal/catalog"
)

func TestResolver(t *testing.T) {
	r := New(catalog.Default().All())

	tests := []struct {
		name  string
		ref   string
		want  string
		fuzzy bool
	}{
		{name: "exact id", ref: "json-formatter", want: "json-formatter"},
		{name: "display name", ref: "JSON Formatter", want: "json-formatter"},
		{name: "mixed case name", ref: "color PICKER", want: "color-picker"},
		{name: "command", ref: "regex", want: "regex-tester"},
		{name: "alias", ref: "md", want: "markdown-previewer"},
		{name: "surrounding space", ref: "  base64 ", want: "base64"},
		{name: "fuzzy abbreviation", ref: "mdp", want: "markdown-previewer", fuzzy: true},
		{name: "fuzzy substring", ref: "tester", want: "regex-tester", fuzzy: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			result := r.Resolve(tt.ref)
			if result.ToolID != tt.want {
				t.Fatalf("Resolve(%q) = %q (err %q), want %q", tt.ref, result.ToolID, result.Error, tt.want)
			}
			if result.Fuzzy != tt.fuzzy {
				t.Fatalf("Resolve(%q).Fuzzy = %v, want %v", tt.ref, result.Fuzzy, tt.fuzzy)
			}
			if result.Ambiguous {
				t.Fatal("expected not ambiguous")
			}
		})
	}
}

func TestResolverNotFound(t *testing.T) {
	r := New(catalog.Default().All())

	for _, ref := range []string{"zzz", "", "   "} {
		result := r.Resolve(ref)
		if result.ToolID != "" {
			t.Errorf("Resolve(%q): expected empty target, got %q", ref, result.ToolID)
		}
		if result.Error == "" {
			t.Errorf("Resolve(%q): expected error message", ref)
		}
	}
}

func TestResolverAmbiguousFuzzy(t *testing.T) {
	r := New(catalog.Default().All())

	// Both encoders contain "enc" in their names.
	result := r.Resolve("enc")
	if !result.Ambiguous {
		t.Fatalf("expected ambiguous, got %+v", result)
	}
	want := []string{"base64", "url-encoder"}
	if !reflect.DeepEqual(result.Matches, want) {
		t.Fatalf("matches = %v, want %v", result.Matches, want)
	}
}

func TestResolverSlugCollision(t *testing.T) {
	tools := []catalog.Tool{
		{ID: "one", Name: "One", Aliases: []string{"shared"}},
		{ID: "two", Name: "Two", Aliases: []string{"Shared"}},
	}
	r := New(tools)

	result := r.Resolve("shared")
	if !result.Ambiguous || len(result.Matches) != 2 {
		t.Fatalf("expected ambiguous slug match, got %+v", result)
	}

	collisions := r.FindCollisions()
	if len(collisions) != 1 || collisions[0].Slug != "shared" {
		t.Fatalf("unexpected collisions: %+v", collisions)
	}
	if len(New(catalog.Default().All()).FindCollisions()) != 0 {
		t.Fatal("expected the built-in catalog to have no slug collisions")
	}
}

func TestResolveAllAndExists(t *testing.T) {
	r := New(catalog.Default().All())

	results := r.ResolveAll([]string{"b64", "nope"})
	if results["b64"].ToolID != "base64" {
		t.Fatalf("expected b64 to resolve to base64, got %+v", results["b64"])
	}
	if results["nope"].ToolID != "" {
		t.Fatalf("expected nope to be unresolved, got %+v", results["nope"])
	}

	if !r.Exists("url-encoder") || r.Exists("url") {
		t.Fatal("Exists should only accept exact ids")
	}
}
