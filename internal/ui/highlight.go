package ui

import (
	"strings"

	"github.com/devnesthq/devnest/internal/fuzzy"
)

// RenderSegments joins highlight segments, styling matched ones with Match
// and the rest with base.
func RenderSegments(segments []fuzzy.Segment, base func(string) string) string {
	var sb strings.Builder
	for _, seg := range segments {
		switch {
		case seg.IsMatch:
			sb.WriteString(Match.Render(seg.Text))
		case base != nil:
			sb.WriteString(base(seg.Text))
		default:
			sb.WriteString(seg.Text)
		}
	}
	return sb.String()
}

// HighlightMatches styles the runes of text at positions.
func HighlightMatches(text string, positions []int) string {
	return RenderSegments(fuzzy.Highlight(text, positions), nil)
}
