// Package testutil provides helpers for DevNest integration tests that run
// the built binary against a throwaway config and state file.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TestEnv is a temporary directory holding config.toml, state.toml and any
// input files a test needs.
type TestEnv struct {
	Dir        string
	ConfigPath string
	StatePath  string

	t      *testing.T
	config string
	state  string
	files  map[string]string
}

// NewTestEnv creates a test environment builder. Call Build to create it.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()
	return &TestEnv{
		t:     t,
		files: make(map[string]string),
	}
}

// WithConfig sets the config.toml content.
func (e *TestEnv) WithConfig(toml string) *TestEnv {
	e.config = toml
	return e
}

// WithState sets the state.toml content.
func (e *TestEnv) WithState(toml string) *TestEnv {
	e.state = toml
	return e
}

// WithFile adds a file relative to the environment directory.
func (e *TestEnv) WithFile(path, content string) *TestEnv {
	e.files[path] = content
	return e
}

// Build writes the configured files. Files left unset are not created, so
// commands see a fresh install.
func (e *TestEnv) Build() *TestEnv {
	e.t.Helper()

	e.Dir = e.t.TempDir()
	e.ConfigPath = filepath.Join(e.Dir, "config.toml")
	e.StatePath = filepath.Join(e.Dir, "state.toml")

	if e.config != "" {
		e.writeFile("config.toml", e.config)
	}
	if e.state != "" {
		e.writeFile("state.toml", e.state)
	}
	for path, content := range e.files {
		e.writeFile(path, content)
	}
	return e
}

// Path returns the absolute path of a file in the environment.
func (e *TestEnv) Path(relPath string) string {
	return filepath.Join(e.Dir, relPath)
}

// ReadFile reads a file relative to the environment directory.
func (e *TestEnv) ReadFile(relPath string) string {
	e.t.Helper()
	content, err := os.ReadFile(e.Path(relPath))
	if err != nil {
		e.t.Fatalf("failed to read %s: %v", relPath, err)
	}
	return string(content)
}

func (e *TestEnv) writeFile(relPath, content string) {
	e.t.Helper()
	fullPath := e.Path(relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		e.t.Fatalf("failed to create directory for %s: %v", relPath, err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
		e.t.Fatalf("failed to write %s: %v", relPath, err)
	}
}
