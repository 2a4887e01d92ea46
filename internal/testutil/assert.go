package testutil

import (
	"os"
	"strings"
	"testing"
)

// AssertFileExists fails the test if the file does not exist.
func (e *TestEnv) AssertFileExists(relPath string) {
	e.t.Helper()
	if _, err := os.Stat(e.Path(relPath)); os.IsNotExist(err) {
		e.t.Errorf("expected file to exist: %s", relPath)
	}
}

// AssertFileNotExists fails the test if the file exists.
func (e *TestEnv) AssertFileNotExists(relPath string) {
	e.t.Helper()
	if _, err := os.Stat(e.Path(relPath)); err == nil {
		e.t.Errorf("expected file to not exist: %s", relPath)
	}
}

// AssertFileContains fails the test if the file does not contain substr.
func (e *TestEnv) AssertFileContains(relPath, substr string) {
	e.t.Helper()
	content := e.ReadFile(relPath)
	if !strings.Contains(content, substr) {
		e.t.Errorf("expected file %s to contain %q, got:\n%s", relPath, substr, content)
	}
}

// AssertFileNotContains fails the test if the file contains substr.
func (e *TestEnv) AssertFileNotContains(relPath, substr string) {
	e.t.Helper()
	content := e.ReadFile(relPath)
	if strings.Contains(content, substr) {
		e.t.Errorf("expected file %s to not contain %q, got:\n%s", relPath, substr, content)
	}
}

// AssertFavorites checks the favorite ids reported by 'fav list'.
func (e *TestEnv) AssertFavorites(expected ...string) {
	e.t.Helper()
	result := e.RunCLI("fav", "list")
	result.MustSucceed(e.t)

	var got []string
	for _, item := range result.DataList("favorites") {
		if m, ok := item.(map[string]interface{}); ok {
			id, _ := m["id"].(string)
			got = append(got, id)
		}
	}
	if strings.Join(got, ",") != strings.Join(expected, ",") {
		e.t.Errorf("expected favorites %v, got %v", expected, got)
	}
}

// AssertHasWarning checks that the result contains a warning with the given code.
func (r *CLIResult) AssertHasWarning(t *testing.T, code string) {
	t.Helper()
	for _, w := range r.Warnings {
		if w.Code == code {
			return
		}
	}
	t.Errorf("expected warning with code %s, got warnings: %+v", code, r.Warnings)
}

// AssertNoWarnings checks that the result has no warnings.
func (r *CLIResult) AssertNoWarnings(t *testing.T) {
	t.Helper()
	if len(r.Warnings) > 0 {
		t.Errorf("expected no warnings, got: %+v", r.Warnings)
	}
}

// AssertResultCount checks the length of a list in the result data.
func (r *CLIResult) AssertResultCount(t *testing.T, key string, expected int) {
	t.Helper()
	results := r.DataList(key)
	if len(results) != expected {
		t.Errorf("expected %d %s, got %d\n%s", expected, key, len(results), r)
	}
}

// AssertFirstID checks the id of the first item in a list in the result data.
func (r *CLIResult) AssertFirstID(t *testing.T, key, expected string) {
	t.Helper()
	results := r.DataList(key)
	if len(results) == 0 {
		t.Fatalf("expected %s to be non-empty\n%s", key, r)
	}
	first, _ := results[0].(map[string]interface{})
	if id, _ := first["id"].(string); id != expected {
		t.Errorf("expected first %s to be %q, got %q\n%s", key, expected, id, r)
	}
}
