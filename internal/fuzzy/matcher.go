package fuzzy

import (
	"sort"
	"strings"
)

// DefaultThreshold is the minimum score an item needs to appear in results.
const DefaultThreshold = 30.0

// Projector extracts comparable text from an item.
type Projector[T any] func(item T) string

// Result is a scored item.
type Result[T any] struct {
	// Item is the matched item.
	Item T

	// Score is the match score in [0, 100].
	Score float64

	// Text is the projected text that Matches index into.
	Text string

	// Matches holds the rune indices of matched characters in Text.
	// It is empty for results of an empty query.
	Matches []int
}

// Search scores every item's text against query and returns those scoring at
// least threshold, best first. Items with equal scores keep their input order.
func Search[T any](query string, items []T, textOf Projector[T], threshold float64) []Result[T] {
	if isBlank(query) {
		return passThrough(items, textOf)
	}

	results := make([]Result[T], 0, len(items))
	for _, item := range items {
		text := textOf(item)
		score := Score(query, text)
		if score < threshold {
			continue
		}
		results = append(results, Result[T]{
			Item:    item,
			Score:   score,
			Text:    text,
			Matches: MatchPositions(query, text),
		})
	}

	sortByScore(results)
	return results
}

// SearchMultiField is Search across several fields per item. Each item is
// ranked by its best field; Matches and Text come from that field alone. When
// two fields tie, the earlier one wins.
func SearchMultiField[T any](query string, items []T, fields []Projector[T], threshold float64) []Result[T] {
	if isBlank(query) {
		var first Projector[T]
		if len(fields) > 0 {
			first = fields[0]
		}
		return passThrough(items, first)
	}

	results := make([]Result[T], 0, len(items))
	for _, item := range items {
		best := Result[T]{Item: item, Matches: []int{}}
		for i, field := range fields {
			text := field(item)
			if i == 0 {
				best.Text = text
			}
			score := Score(query, text)
			if score > best.Score {
				best.Score = score
				best.Text = text
				best.Matches = MatchPositions(query, text)
			}
		}
		if best.Score >= threshold {
			results = append(results, best)
		}
	}

	sortByScore(results)
	return results
}

// Options configures a Matcher.
type Options struct {
	// Threshold is the minimum score for inclusion.
	Threshold float64
}

// DefaultOptions returns the palette defaults.
func DefaultOptions() Options {
	return Options{Threshold: DefaultThreshold}
}

// Matcher holds a fixed set of projectors and a threshold so callers can
// re-run the same search on every query change.
type Matcher[T any] struct {
	fields  []Projector[T]
	options Options
}

// NewMatcher creates a matcher over the given fields.
func NewMatcher[T any](opts Options, fields ...Projector[T]) *Matcher[T] {
	return &Matcher[T]{
		fields:  fields,
		options: opts,
	}
}

// Threshold returns the configured minimum score.
func (m *Matcher[T]) Threshold() float64 {
	return m.options.Threshold
}

// Match runs the search for query over items.
func (m *Matcher[T]) Match(query string, items []T) []Result[T] {
	if len(m.fields) == 1 {
		return Search(query, items, m.fields[0], m.options.Threshold)
	}
	return SearchMultiField(query, items, m.fields, m.options.Threshold)
}

func passThrough[T any](items []T, textOf Projector[T]) []Result[T] {
	results := make([]Result[T], len(items))
	for i, item := range items {
		results[i] = Result[T]{
			Item:    item,
			Score:   MaxScore,
			Matches: []int{},
		}
		if textOf != nil {
			results[i].Text = textOf(item)
		}
	}
	return results
}

func sortByScore[T any](results []Result[T]) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
