package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/devnesthq/devnest/internal/config"
)

var captureStdoutMu sync.Mutex

// captureStdout runs fn with os.Stdout redirected and returns what it wrote.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	captureStdoutMu.Lock()
	defer captureStdoutMu.Unlock()

	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	os.Stdout = w

	done := make(chan string, 1)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		_ = r.Close()
		done <- buf.String()
	}()

	defer func() {
		os.Stdout = orig
	}()
	fn()
	_ = w.Close()
	return <-done
}

// testEnv points the CLI globals at a private config and state file and
// restores them when the test ends.
type testEnv struct {
	dir       string
	statePath string
}

func newTestEnv(t *testing.T, asJSON bool) *testEnv {
	t.Helper()
	dir := t.TempDir()
	env := &testEnv{dir: dir, statePath: filepath.Join(dir, "state.toml")}

	prevConfig := configPath
	prevStateFlag := statePathFlag
	prevResolvedState := resolvedStatePath
	prevCfg := cfg
	prevJSON := jsonOutput
	prevNow := nowFunc
	prevStdin := inputStdin
	prevStdinTTY := inputStdinIsTerminal
	prevLookPath := fzfLookPath
	t.Cleanup(func() {
		configPath = prevConfig
		statePathFlag = prevStateFlag
		resolvedStatePath = prevResolvedState
		cfg = prevCfg
		jsonOutput = prevJSON
		nowFunc = prevNow
		inputStdin = prevStdin
		inputStdinIsTerminal = prevStdinTTY
		fzfLookPath = prevLookPath
	})

	configPath = filepath.Join(dir, "config.toml")
	statePathFlag = env.statePath
	resolvedStatePath = env.statePath
	cfg = &config.Config{}
	jsonOutput = asJSON
	nowFunc = func() time.Time { return time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC) }
	inputStdin = strings.NewReader("")
	inputStdinIsTerminal = func() bool { return true }
	fzfLookPath = func(string) (string, error) { return "", os.ErrNotExist }
	return env
}

// withStdin feeds s to tool commands as piped input.
func (e *testEnv) withStdin(s string) {
	inputStdin = strings.NewReader(s)
	inputStdinIsTerminal = func() bool { return false }
}

func (e *testEnv) state(t *testing.T) *config.State {
	t.Helper()
	state, err := config.LoadState(e.statePath)
	if err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	return state
}

type testResponse struct {
	OK       bool            `json:"ok"`
	Data     json.RawMessage `json:"data"`
	Error    *ErrorInfo      `json:"error"`
	Warnings []Warning       `json:"warnings"`
	Meta     *Meta           `json:"meta"`
}

func decodeResponse(t *testing.T, out string) testResponse {
	t.Helper()
	var resp testResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("expected JSON output, got parse error: %v; out=%s", err, out)
	}
	return resp
}

func (r testResponse) decodeData(t *testing.T, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(r.Data, v); err != nil {
		t.Fatalf("decode data: %v; data=%s", err, r.Data)
	}
}

func hasWarning(warnings []Warning, code string) bool {
	for _, w := range warnings {
		if w.Code == code {
			return true
		}
	}
	return false
}
