package prefs

import (
	"sort"
	"time"

	"github.com/devnesthq/devnest/internal/config"
)

// MaxVisits is how many visits are kept per tool; older ones are dropped.
const MaxVisits = 100

// DefaultWindowDays is the look-back window of MostUsed and WeeklyStats.
const DefaultWindowDays = 7

// ToolCount is a tool id with a visit count.
type ToolCount struct {
	ToolID string `json:"tool_id"`
	Count  int    `json:"count"`
}

// WeeklyStats summarizes the last seven days.
type WeeklyStats struct {
	ToolUsage    map[string]int `json:"tool_usage"`
	TotalActions int            `json:"total_actions"`
	MostUsedTool string         `json:"most_used_tool"`
}

// TrackVisit records one use of id that started at start and lasted d.
func (s *Store) TrackVisit(id string, start time.Time, d time.Duration) {
	u := s.state.Usage[id]
	u.LastUsed = start
	u.TotalUses++
	u.Visits = append(u.Visits, config.Visit{At: start, DurationMs: d.Milliseconds()})
	if len(u.Visits) > MaxVisits {
		u.Visits = append([]config.Visit(nil), u.Visits[len(u.Visits)-MaxVisits:]...)
	}
	s.state.Usage[id] = u
	s.dirty = true
}

// Usage returns the history of id.
func (s *Store) Usage(id string) (config.ToolUsage, bool) {
	u, ok := s.state.Usage[id]
	return u, ok
}

// ClearUsage forgets all usage history.
func (s *Store) ClearUsage() {
	if len(s.state.Usage) == 0 {
		return
	}
	s.state.Usage = make(map[string]config.ToolUsage)
	s.dirty = true
}

// Recent returns up to limit tool ids, most recently used first.
func (s *Store) Recent(limit int) []string {
	ids := s.usedIDs()
	sort.SliceStable(ids, func(i, j int) bool {
		return s.state.Usage[ids[i]].LastUsed.After(s.state.Usage[ids[j]].LastUsed)
	})
	return truncate(ids, limit)
}

// MostUsed returns up to limit tools ranked by visits in the last days days.
// Tools without visits in the window are left out.
func (s *Store) MostUsed(limit, days int, now time.Time) []ToolCount {
	counts := s.countSince(now.AddDate(0, 0, -days))
	out := make([]ToolCount, 0, len(counts))
	for _, id := range s.usedIDs() {
		if n := counts[id]; n > 0 {
			out = append(out, ToolCount{ToolID: id, Count: n})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// WeeklyStats counts visits over the seven days before now.
func (s *Store) WeeklyStats(now time.Time) WeeklyStats {
	stats := WeeklyStats{ToolUsage: make(map[string]int)}
	best := 0
	counts := s.countSince(now.AddDate(0, 0, -DefaultWindowDays))
	for _, id := range s.usedIDs() {
		n := counts[id]
		if n == 0 {
			continue
		}
		stats.ToolUsage[id] = n
		stats.TotalActions += n
		if n > best {
			best = n
			stats.MostUsedTool = id
		}
	}
	return stats
}

func (s *Store) countSince(cutoff time.Time) map[string]int {
	counts := make(map[string]int, len(s.state.Usage))
	for id, u := range s.state.Usage {
		for _, v := range u.Visits {
			if !v.At.Before(cutoff) {
				counts[id]++
			}
		}
	}
	return counts
}

// usedIDs returns the tracked ids sorted so ties break alphabetically.
func (s *Store) usedIDs() []string {
	ids := make([]string, 0, len(s.state.Usage))
	for id := range s.state.Usage {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func truncate(ids []string, limit int) []string {
	if limit >= 0 && len(ids) > limit {
		return ids[:limit]
	}
	return ids
}
