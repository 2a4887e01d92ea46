package prefs

import (
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "state.toml"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s
}

func TestFavorites(t *testing.T) {
	s := newTestStore(t)

	if !s.AddFavorite("json-formatter") {
		t.Fatal("expected first add to succeed")
	}
	if s.AddFavorite("json-formatter") {
		t.Fatal("expected duplicate add to be a no-op")
	}
	if !s.ToggleFavorite("color-picker") {
		t.Fatal("expected toggle to star color-picker")
	}
	if got := s.Favorites(); !reflect.DeepEqual(got, []string{"json-formatter", "color-picker"}) {
		t.Fatalf("Favorites = %v", got)
	}

	if s.ToggleFavorite("json-formatter") {
		t.Fatal("expected toggle to unstar json-formatter")
	}
	if s.IsFavorite("json-formatter") || !s.IsFavorite("color-picker") {
		t.Fatalf("unexpected favorites: %v", s.Favorites())
	}
	if s.RemoveFavorite("base64") {
		t.Fatal("expected removing a non-favorite to report false")
	}

	if n := s.ClearFavorites(); n != 1 {
		t.Fatalf("ClearFavorites = %d, want 1", n)
	}
	if len(s.Favorites()) != 0 {
		t.Fatal("expected no favorites after clear")
	}
}

func TestFavoritesReturnsCopy(t *testing.T) {
	s := newTestStore(t)
	s.AddFavorite("base64")

	favs := s.Favorites()
	favs[0] = "mutated"
	if !s.IsFavorite("base64") {
		t.Fatal("Favorites leaked internal slice")
	}
}

func TestSavePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.toml")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if s.Dirty() {
		t.Fatal("fresh store should not be dirty")
	}
	s.AddFavorite("regex-tester")
	if err := s.SetActiveTheme("forest-green"); err != nil {
		t.Fatalf("SetActiveTheme: %v", err)
	}
	start := time.Date(2026, time.March, 3, 10, 0, 0, 0, time.UTC)
	s.TrackVisit("regex-tester", start, 2*time.Second)
	if !s.Dirty() {
		t.Fatal("expected store to be dirty")
	}
	if err := s.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if s.Dirty() {
		t.Fatal("expected clean store after save")
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if !reopened.IsFavorite("regex-tester") || reopened.ActiveTheme() != "forest-green" {
		t.Fatalf("expected persisted favorite and theme, got %v / %q", reopened.Favorites(), reopened.ActiveTheme())
	}
	u, ok := reopened.Usage("regex-tester")
	if !ok || u.TotalUses != 1 || u.Visits[0].DurationMs != 2000 {
		t.Fatalf("unexpected usage after reopen: %+v", u)
	}
}

func TestSetActiveThemeRequiresID(t *testing.T) {
	s := newTestStore(t)
	if err := s.SetActiveTheme("  "); err == nil {
		t.Fatal("expected error for blank theme id")
	}
}

func TestTrackVisitKeepsLastHundred(t *testing.T) {
	s := newTestStore(t)
	base := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < MaxVisits+20; i++ {
		s.TrackVisit("base64", base.Add(time.Duration(i)*time.Minute), time.Second)
	}

	u, _ := s.Usage("base64")
	if len(u.Visits) != MaxVisits {
		t.Fatalf("expected %d visits, got %d", MaxVisits, len(u.Visits))
	}
	if u.TotalUses != MaxVisits+20 {
		t.Fatalf("expected total uses to keep counting, got %d", u.TotalUses)
	}
	if !u.Visits[0].At.Equal(base.Add(20 * time.Minute)) {
		t.Fatalf("expected oldest visits to be dropped, first is %v", u.Visits[0].At)
	}
	if !u.LastUsed.Equal(base.Add(time.Duration(MaxVisits+19) * time.Minute)) {
		t.Fatalf("unexpected last used %v", u.LastUsed)
	}
}

func TestRecent(t *testing.T) {
	s := newTestStore(t)
	now := time.Date(2026, time.March, 3, 12, 0, 0, 0, time.UTC)

	s.TrackVisit("base64", now.Add(-3*time.Hour), 0)
	s.TrackVisit("color-picker", now.Add(-time.Hour), 0)
	s.TrackVisit("json-formatter", now.Add(-2*time.Hour), 0)

	if got := s.Recent(2); !reflect.DeepEqual(got, []string{"color-picker", "json-formatter"}) {
		t.Fatalf("Recent(2) = %v", got)
	}
	if got := s.Recent(10); len(got) != 3 {
		t.Fatalf("Recent(10) = %v", got)
	}
}

func TestMostUsedAndWeeklyStats(t *testing.T) {
	s := newTestStore(t)
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		s.TrackVisit("json-formatter", now.Add(-time.Duration(i)*time.Hour), 0)
	}
	for i := 0; i < 2; i++ {
		s.TrackVisit("base64", now.Add(-time.Duration(i)*24*time.Hour), 0)
	}
	// Outside the seven-day window.
	for i := 0; i < 5; i++ {
		s.TrackVisit("url-encoder", now.AddDate(0, 0, -10), 0)
	}

	top := s.MostUsed(5, DefaultWindowDays, now)
	want := []ToolCount{{"json-formatter", 3}, {"base64", 2}}
	if !reflect.DeepEqual(top, want) {
		t.Fatalf("MostUsed = %+v, want %+v", top, want)
	}

	if got := s.MostUsed(1, 30, now); len(got) != 1 || got[0].ToolID != "url-encoder" {
		t.Fatalf("MostUsed over 30 days = %+v", got)
	}

	stats := s.WeeklyStats(now)
	if stats.TotalActions != 5 || stats.MostUsedTool != "json-formatter" {
		t.Fatalf("unexpected weekly stats: %+v", stats)
	}
	if !reflect.DeepEqual(stats.ToolUsage, map[string]int{"json-formatter": 3, "base64": 2}) {
		t.Fatalf("unexpected weekly usage: %+v", stats.ToolUsage)
	}
}

func TestWeeklyStatsTieBreaksByID(t *testing.T) {
	s := newTestStore(t)
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	s.TrackVisit("regex-tester", now, 0)
	s.TrackVisit("base64", now, 0)

	if got := s.WeeklyStats(now).MostUsedTool; got != "base64" {
		t.Fatalf("expected alphabetical tie-break, got %q", got)
	}

	empty := newTestStore(t).WeeklyStats(now)
	if empty.TotalActions != 0 || empty.MostUsedTool != "" {
		t.Fatalf("expected empty stats, got %+v", empty)
	}
}

func TestClearUsage(t *testing.T) {
	s := newTestStore(t)
	s.TrackVisit("base64", time.Now(), 0)
	s.ClearUsage()
	if _, ok := s.Usage("base64"); ok {
		t.Fatal("expected usage to be cleared")
	}
	if len(s.Recent(5)) != 0 {
		t.Fatal("expected no recent tools after clear")
	}
}
