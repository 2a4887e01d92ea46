package fuzzy

// Segment is a contiguous piece of text that is either all matched or all
// unmatched.
type Segment struct {
	Text    string
	IsMatch bool
}

// Highlight splits text into segments around the given match positions.
// Every matched rune becomes its own segment; unmatched runs between matches
// are merged. Joining the segment texts reproduces text exactly.
//
// Positions must be rune indices in increasing order, as returned by
// MatchPositions. Indices that are out of range or not past the previous one
// are ignored.
func Highlight(text string, positions []int) []Segment {
	if len(positions) == 0 {
		return []Segment{{Text: text}}
	}

	runes := []rune(text)
	segments := make([]Segment, 0, 2*len(positions)+1)
	last := 0

	for _, idx := range positions {
		if idx < last || idx >= len(runes) {
			continue
		}
		if idx > last {
			segments = append(segments, Segment{Text: string(runes[last:idx])})
		}
		segments = append(segments, Segment{Text: string(runes[idx]), IsMatch: true})
		last = idx + 1
	}

	if last < len(runes) {
		segments = append(segments, Segment{Text: string(runes[last:])})
	}
	if len(segments) == 0 {
		// Only reachable for empty text with stray positions.
		segments = append(segments, Segment{Text: text})
	}
	return segments
}
