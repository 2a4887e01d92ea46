package testutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/devnesthq/devnest/internal/cli"
)

// binary is the devnest executable shared by every test in the process.
var binary struct {
	once sync.Once
	path string
	err  error
}

// CLIResult is one decoded run of the devnest binary. The envelope fields
// mirror cli.Response with Data decoded as an object.
type CLIResult struct {
	OK       bool                   `json:"ok"`
	Data     map[string]interface{} `json:"data"`
	Error    *cli.ErrorInfo         `json:"error"`
	Warnings []cli.Warning          `json:"warnings"`
	Meta     *cli.Meta              `json:"meta"`

	Stdout   string `json:"-"`
	Stderr   string `json:"-"`
	ExitCode int    `json:"-"`
}

// BuildCLI compiles ./cmd/devnest once and returns the binary path.
func BuildCLI(t *testing.T) string {
	t.Helper()
	binary.once.Do(func() {
		binary.path, binary.err = buildBinary()
	})
	if binary.err != nil {
		t.Fatalf("build devnest: %v", binary.err)
	}
	return binary.path
}

func buildBinary() (string, error) {
	gomod, err := exec.Command("go", "env", "GOMOD").Output()
	if err != nil {
		return "", fmt.Errorf("locate module: %w", err)
	}
	root := filepath.Dir(strings.TrimSpace(string(gomod)))

	dir, err := os.MkdirTemp("", "devnest-cli-bin-*")
	if err != nil {
		return "", err
	}
	name := "devnest"
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	path := filepath.Join(dir, name)

	build := exec.Command("go", "build", "-o", path, "./cmd/devnest")
	build.Dir = root
	if out, err := build.CombinedOutput(); err != nil {
		return "", fmt.Errorf("%w\n%s", err, out)
	}
	return path, nil
}

// RunCLI runs devnest --json with args against the environment's files.
func (e *TestEnv) RunCLI(args ...string) *CLIResult {
	e.t.Helper()
	return e.run("", args)
}

// RunCLIWithStdin is RunCLI with stdin piped in.
func (e *TestEnv) RunCLIWithStdin(stdin string, args ...string) *CLIResult {
	e.t.Helper()
	return e.run(stdin, args)
}

func (e *TestEnv) run(stdin string, args []string) *CLIResult {
	e.t.Helper()

	argv := append([]string{"--config", e.ConfigPath, "--state", e.StatePath, "--json"}, args...)
	cmd := exec.Command(BuildCLI(e.t), argv...)
	cmd.Dir = e.Dir
	cmd.Stdin = strings.NewReader(stdin)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	res := &CLIResult{}
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			e.t.Fatalf("run devnest %s: %v", strings.Join(args, " "), err)
		}
		res.ExitCode = exitErr.ExitCode()
	}
	if err := json.Unmarshal(stdout.Bytes(), res); err != nil {
		e.t.Fatalf("devnest %s: output is not a JSON envelope: %v\nstdout: %s\nstderr: %s",
			strings.Join(args, " "), err, stdout.String(), stderr.String())
	}
	res.Stdout = stdout.String()
	res.Stderr = stderr.String()
	return res
}

func (r *CLIResult) String() string {
	return fmt.Sprintf("exit=%d\nstdout: %s\nstderr: %s", r.ExitCode, r.Stdout, r.Stderr)
}

// MustSucceed fails the test unless the envelope reports ok.
func (r *CLIResult) MustSucceed(t *testing.T) *CLIResult {
	t.Helper()
	if !r.OK || r.ExitCode != 0 {
		t.Fatalf("expected success\n%s", r)
	}
	return r
}

// MustFail fails the test unless the command exited non-zero with code.
func (r *CLIResult) MustFail(t *testing.T, code string) *CLIResult {
	t.Helper()
	switch {
	case r.OK || r.Error == nil:
		t.Fatalf("expected failure with %s\n%s", code, r)
	case r.Error.Code != code:
		t.Fatalf("error code = %s (%s), want %s\n%s", r.Error.Code, r.Error.Message, code, r)
	case r.ExitCode == 0:
		t.Fatalf("expected a non-zero exit code for %s", code)
	}
	return r
}

// DataList returns Data[key] as a list, or nil.
func (r *CLIResult) DataList(key string) []interface{} {
	list, _ := r.Data[key].([]interface{})
	return list
}

// DataString returns Data[key] as a string, or "".
func (r *CLIResult) DataString(key string) string {
	s, _ := r.Data[key].(string)
	return s
}
