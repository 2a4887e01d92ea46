package fuzzy

import (
	"strings"
	"unicode"
)

// Score bounds and rule values.
const (
	MaxScore    = 100.0
	PrefixScore = 90.0
	SubstrScore = 80.0

	matchWeight       = 50.0
	consecutiveWeight = 20.0
	lengthWeight      = 10.0
)

// Score returns how well query matches target, from 0 (no match) to 100
// (case-insensitive equality).
func Score(query, target string) float64 {
	queryRunes := fold(query)
	targetRunes := fold(target)

	q := string(queryRunes)
	t := string(targetRunes)

	switch {
	case t == q:
		return MaxScore
	case strings.HasPrefix(t, q):
		return PrefixScore
	case strings.Contains(t, q):
		return SubstrScore
	}

	matched, maxConsecutive := scan(queryRunes, targetRunes, nil)
	if matched < len(queryRunes) {
		return 0
	}

	// Rules 1-2 catch an empty query, so len(queryRunes) > 0 here and the
	// target holds at least as many runes.
	queryLen := float64(len(queryRunes))
	targetLen := float64(len(targetRunes))

	matchRatio := float64(matched) / queryLen
	consecutiveBonus := float64(maxConsecutive) / queryLen * consecutiveWeight
	lengthPenalty := (targetLen - queryLen) / targetLen * lengthWeight

	return clamp(matchRatio*matchWeight + consecutiveBonus - lengthPenalty)
}

// MatchPositions returns the rune indices in target of each query character
// found by a greedy left-to-right scan. The result is strictly increasing and
// never longer than the query. It does not depend on which scoring rule
// applies, so an exact match still reports its positions.
func MatchPositions(query, target string) []int {
	queryRunes := fold(query)
	positions := make([]int, 0, len(queryRunes))
	scan(queryRunes, fold(target), &positions)
	return positions
}

// scan walks target once, advancing through query on every equal rune.
// It returns the number of query runes matched and the longest run of
// consecutive target runes that matched. When positions is non-nil the
// matched target indices are appended to it.
func scan(query, target []rune, positions *[]int) (matched, maxConsecutive int) {
	consecutive := 0
	qi := 0
	for ti := 0; qi < len(query) && ti < len(target); ti++ {
		if query[qi] != target[ti] {
			consecutive = 0
			continue
		}
		matched++
		consecutive++
		if consecutive > maxConsecutive {
			maxConsecutive = consecutive
		}
		if positions != nil {
			*positions = append(*positions, ti)
		}
		qi++
	}
	return matched, maxConsecutive
}

// fold lower-cases s one rune at a time. strings.ToLower may change the rune
// count for a handful of characters; per-rune folding never does.
func fold(s string) []rune {
	runes := []rune(s)
	for i, r := range runes {
		runes[i] = unicode.ToLower(r)
	}
	return runes
}

func clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}
