// Package fuzzy scores partial, out-of-order queries against tool names and
// other short strings for the command palette.
//
// # Scoring
//
// Score compares a query and a target case-insensitively and returns a value
// in [0, 100]. The first rule that applies wins:
//
//   - exact match: 100
//   - target starts with query: 90
//   - target contains query: 80
//   - every query character appears in target, in order: a subsequence score
//     built from the longest consecutive run and the length difference
//   - otherwise: 0
//
// # Usage
//
//	results := fuzzy.SearchMultiField("jsf", tools, []fuzzy.Projector[Tool]{
//	    func(t Tool) string { return t.Name },
//	    func(t Tool) string { return t.Description },
//	}, fuzzy.DefaultThreshold)
//	for _, r := range results {
//	    for _, seg := range fuzzy.Highlight(r.Text, r.Matches) {
//	        // render seg.Text, emphasised when seg.IsMatch
//	    }
//	}
//
// An empty or all-whitespace query bypasses scoring and returns every item
// with score 100 and no match positions, in input order.
//
// Positions are rune indices. Case folding is per rune, so folding never
// changes a string's rune count and positions always index the original text.
//
// All functions are pure and safe for concurrent use.
package fuzzy
