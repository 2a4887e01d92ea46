// Package resolver handles tool reference resolution.
package resolver

import (
	"sort"
	"strings"

	"github.com/devnesthq/devnest/internal/catalog"
	"github.com/devnesthq/devnest/internal/fuzzy"
	"github.com/devnesthq/devnest/internal/slugs"
)

// Resolver resolves user-typed references ("json", "Color Picker", "mdp")
// to catalog tool ids.
type Resolver struct {
	toolIDs map[string]struct{} // Set of all known tool IDs
	slugMap map[string][]string // Map from slugified id/name/alias to tool IDs
	tools   []catalog.Tool
	matcher *fuzzy.Matcher[catalog.Tool]
}

// New creates a new Resolver over the given tools.
func New(tools []catalog.Tool) *Resolver {
	return NewWithThreshold(tools, fuzzy.DefaultThreshold)
}

// NewWithThreshold creates a Resolver whose fuzzy fallback uses threshold.
func NewWithThreshold(tools []catalog.Tool, threshold float64) *Resolver {
	r := &Resolver{
		toolIDs: make(map[string]struct{}, len(tools)),
		slugMap: make(map[string][]string),
		tools:   tools,
		matcher: fuzzy.NewMatcher(fuzzy.Options{Threshold: threshold},
			func(t catalog.Tool) string { return t.Name },
			func(t catalog.Tool) string { return t.ID },
			func(t catalog.Tool) string { return t.Command },
		),
	}

	for _, t := range tools {
		r.toolIDs[t.ID] = struct{}{}

		keys := append([]string{t.ID, t.Name, t.Command}, t.Aliases...)
		for _, key := range keys {
			if key == "" {
				continue
			}
			r.addSlug(slugs.Make(key), t.ID)
		}
	}

	return r
}

func (r *Resolver) addSlug(slug, id string) {
	for _, existing := range r.slugMap[slug] {
		if existing == id {
			return
		}
	}
	r.slugMap[slug] = append(r.slugMap[slug], id)
}

// ResolveResult represents the result of a reference resolution.
type ResolveResult struct {
	// ToolID is the resolved tool id (empty if unresolved).
	ToolID string

	// Fuzzy is true when the reference only resolved through fuzzy matching.
	Fuzzy bool

	// Score is the fuzzy score of the resolved tool (100 for direct hits).
	Score float64

	// Ambiguous is true if the reference matches multiple tools equally well.
	Ambiguous bool

	// Matches contains all matching IDs (for ambiguous refs).
	Matches []string

	// Error message if resolution failed.
	Error string
}

// Resolve resolves a reference to its tool id.
//
// Resolution order: exact id, then slug of any id, name, command or alias,
// then the best fuzzy match over name, id and command.
func (r *Resolver) Resolve(ref string) ResolveResult {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ResolveResult{Error: "empty reference"}
	}

	if _, ok := r.toolIDs[ref]; ok {
		return ResolveResult{ToolID: ref, Score: fuzzy.MaxScore}
	}

	if ids := r.slugMap[slugs.Make(ref)]; len(ids) > 0 {
		if len(ids) == 1 {
			return ResolveResult{ToolID: ids[0], Score: fuzzy.MaxScore}
		}
		return ambiguous(ids)
	}

	results := r.matcher.Match(ref, r.tools)
	if len(results) == 0 {
		return ResolveResult{Error: "tool not found"}
	}

	top := results[0].Score
	var tied []string
	for _, res := range results {
		if res.Score != top {
			break
		}
		tied = append(tied, res.Item.ID)
	}
	if len(tied) > 1 {
		return ambiguous(tied)
	}

	return ResolveResult{ToolID: results[0].Item.ID, Fuzzy: true, Score: top}
}

func ambiguous(ids []string) ResolveResult {
	matches := append([]string(nil), ids...)
	sort.Strings(matches)
	return ResolveResult{
		Ambiguous: true,
		Matches:   matches,
		Error:     "ambiguous reference, multiple tools match",
	}
}

// Exists checks if a tool ID exists.
func (r *Resolver) Exists(id string) bool {
	_, ok := r.toolIDs[id]
	return ok
}

// ResolveAll resolves all references and returns a map from raw ref to result.
func (r *Resolver) ResolveAll(refs []string) map[string]ResolveResult {
	results := make(map[string]ResolveResult, len(refs))
	for _, ref := range refs {
		results[ref] = r.Resolve(ref)
	}
	return results
}

// SlugCollision is a slug claimed by more than one tool.
type SlugCollision struct {
	Slug    string
	ToolIDs []string
}

// FindCollisions lists slugs that resolve to several tools. Such references
// always come back ambiguous.
func (r *Resolver) FindCollisions() []SlugCollision {
	var collisions []SlugCollision
	for slug, ids := range r.slugMap {
		if len(ids) > 1 {
			collisions = append(collisions, SlugCollision{Slug: slug, ToolIDs: ids})
		}
	}
	sort.Slice(collisions, func(i, j int) bool {
		return collisions[i].Slug < collisions[j].Slug
	})
	return collisions
}
