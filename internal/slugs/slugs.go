// Package slugs provides the slugification used to compare tool references.
//
// Tool ids in the catalog are already slugs ("json-formatter"). User input is
// slugged with the same rules so "JSON Formatter", "json_formatter" and
// "json-formatter" all compare equal.
package slugs

import (
	"strings"

	goslug "github.com/gosimple/slug"
)

// Make converts s to a lower-case, dash-separated slug.
//
// Input that slugs to nothing (only punctuation, for example) falls back to a
// lower-cased copy with spaces replaced by dashes so it still compares
// deterministically.
func Make(s string) string {
	s = strings.TrimSpace(s)
	slugged := goslug.Make(s)
	if slugged == "" {
		slugged = strings.ToLower(strings.ReplaceAll(s, " ", "-"))
	}
	return slugged
}

// Equal reports whether a and b slug to the same value.
func Equal(a, b string) bool {
	return Make(a) == Make(b)
}
