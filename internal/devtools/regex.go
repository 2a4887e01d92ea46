package devtools

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
)

// RegexFlags mirrors the g, i and m flags of a JavaScript regex literal.
type RegexFlags struct {
	Global     bool `json:"global"`
	IgnoreCase bool `json:"ignore_case"`
	Multiline  bool `json:"multiline"`
}

// DefaultRegexFlags returns the tester defaults: global only.
func DefaultRegexFlags() RegexFlags {
	return RegexFlags{Global: true}
}

// ParseRegexFlags parses a flag string such as "gi". Unknown or repeated
// flags are errors.
func ParseRegexFlags(s string) (RegexFlags, error) {
	var f RegexFlags
	seen := make(map[rune]bool, len(s))
	for _, r := range s {
		if seen[r] {
			return RegexFlags{}, fmt.Errorf("%w: duplicate flag %q", ErrInvalidRegex, r)
		}
		seen[r] = true
		switch r {
		case 'g':
			f.Global = true
		case 'i':
			f.IgnoreCase = true
		case 'm':
			f.Multiline = true
		default:
			return RegexFlags{}, fmt.Errorf("%w: unsupported flag %q", ErrInvalidRegex, r)
		}
	}
	return f, nil
}

// String renders the flags in canonical order.
func (f RegexFlags) String() string {
	var sb strings.Builder
	if f.Global {
		sb.WriteByte('g')
	}
	if f.IgnoreCase {
		sb.WriteByte('i')
	}
	if f.Multiline {
		sb.WriteByte('m')
	}
	return sb.String()
}

func (f RegexFlags) options() regexp2.RegexOptions {
	opts := regexp2.RegexOptions(regexp2.ECMAScript)
	if f.IgnoreCase {
		opts |= regexp2.IgnoreCase
	}
	if f.Multiline {
		opts |= regexp2.Multiline
	}
	return opts
}

// RegexGroup is one capture group of a match.
type RegexGroup struct {
	Name    string `json:"name"`
	Index   int    `json:"index"`
	Text    string `json:"text"`
	Matched bool   `json:"matched"`
}

// RegexMatch is one match of the pattern. Index counts runes from the start
// of the input.
type RegexMatch struct {
	Index  int          `json:"index"`
	Length int          `json:"length"`
	Text   string       `json:"text"`
	Groups []RegexGroup `json:"groups,omitempty"`
}

// RegexResult is the outcome of TestRegex.
type RegexResult struct {
	Pattern string       `json:"pattern"`
	Flags   string       `json:"flags"`
	Matches []RegexMatch `json:"matches"`
}

// TestRegex runs pattern over input. With the global flag every
// non-overlapping match is returned; otherwise only the first.
func TestRegex(pattern string, flags RegexFlags, input string) (*RegexResult, error) {
	re, err := regexp2.Compile(pattern, flags.options())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRegex, err)
	}
	re.MatchTimeout = regexTimeout

	result := &RegexResult{
		Pattern: pattern,
		Flags:   flags.String(),
		Matches: []RegexMatch{},
	}

	m, err := re.FindStringMatch(input)
	for m != nil && err == nil {
		result.Matches = append(result.Matches, toRegexMatch(m))
		if !flags.Global {
			break
		}
		m, err = re.FindNextMatch(m)
	}
	if err != nil {
		return nil, fmt.Errorf("regex evaluation failed: %w", err)
	}

	return result, nil
}

func toRegexMatch(m *regexp2.Match) RegexMatch {
	rm := RegexMatch{
		Index:  m.Index,
		Length: m.Length,
		Text:   m.String(),
	}
	groups := m.Groups()
	for i := 1; i < len(groups); i++ {
		g := groups[i]
		rm.Groups = append(rm.Groups, RegexGroup{
			Name:    g.Name,
			Index:   g.Index,
			Text:    g.String(),
			Matched: len(g.Captures) > 0,
		})
	}
	return rm
}

// Positions returns the rune index of every input character covered by a
// match, in increasing order.
func (r *RegexResult) Positions() []int {
	var positions []int
	for _, m := range r.Matches {
		for i := m.Index; i < m.Index+m.Length; i++ {
			positions = append(positions, i)
		}
	}
	return positions
}
