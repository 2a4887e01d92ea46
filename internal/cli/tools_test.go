package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadToolInput(t *testing.T) {
	env := newTestEnv(t, true)

	in, err := readToolInput([]string{"hello", "world"}, "")
	if err != nil || in.Text != "hello world" || in.Source != "arg" {
		t.Fatalf("args: got (%+v, %v)", in, err)
	}

	path := filepath.Join(env.dir, "input.txt")
	if err := os.WriteFile(path, []byte("from file"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	in, err = readToolInput(nil, path)
	if err != nil || in.Text != "from file" || in.Source != "file" {
		t.Fatalf("file: got (%+v, %v)", in, err)
	}

	if _, err := readToolInput([]string{"x"}, path); err == nil {
		t.Fatal("expected error when both an argument and --file are given")
	}

	if _, err := readToolInput(nil, ""); !errors.Is(err, errNoInput) {
		t.Fatalf("terminal stdin: expected errNoInput, got %v", err)
	}

	env.withStdin("piped\n")
	in, err = readToolInput(nil, "")
	if err != nil || in.Text != "piped\n" || in.Source != "stdin" {
		t.Fatalf("stdin: got (%+v, %v)", in, err)
	}
}

func TestJSONFormatCommandRecordsUsage(t *testing.T) {
	env := newTestEnv(t, true)

	out := captureStdout(t, func() {
		if err := jsonFormatCmd.RunE(jsonFormatCmd, []string{`{"a":1}`}); err != nil {
			t.Fatalf("jsonFormatCmd.RunE: %v", err)
		}
	})

	resp := decodeResponse(t, out)
	if !resp.OK {
		t.Fatalf("expected ok=true; out=%s", out)
	}
	var data struct {
		Output string `json:"output"`
	}
	resp.decodeData(t, &data)
	if data.Output != "{\n  \"a\": 1\n}" {
		t.Fatalf("output = %q", data.Output)
	}

	state := env.state(t)
	usage, ok := state.Usage[toolJSON]
	if !ok || usage.TotalUses != 1 || len(usage.Visits) != 1 {
		t.Fatalf("expected one recorded visit, got %+v", state.Usage)
	}
	if !usage.LastUsed.Equal(nowFunc()) {
		t.Fatalf("LastUsed = %v, want %v", usage.LastUsed, nowFunc())
	}
}

func TestToolErrorsStillRecordUsage(t *testing.T) {
	env := newTestEnv(t, true)

	out := captureStdout(t, func() {
		err := jsonFormatCmd.RunE(jsonFormatCmd, []string{`{"a":`})
		if !errors.Is(err, errReported) {
			t.Fatalf("expected errReported, got %v", err)
		}
	})

	resp := decodeResponse(t, out)
	if resp.OK || resp.Error == nil || resp.Error.Code != ErrInvalidJSON {
		t.Fatalf("expected INVALID_JSON error; out=%s", out)
	}
	if env.state(t).Usage[toolJSON].TotalUses != 1 {
		t.Fatal("expected usage to be recorded for rejected input")
	}
}

func TestMissingInputDoesNotRecordUsage(t *testing.T) {
	env := newTestEnv(t, true)

	out := captureStdout(t, func() {
		_ = base64EncodeCmd.RunE(base64EncodeCmd, nil)
	})

	resp := decodeResponse(t, out)
	if resp.Error == nil || resp.Error.Code != ErrMissingArgument {
		t.Fatalf("expected MISSING_ARGUMENT; out=%s", out)
	}
	if len(env.state(t).Usage) != 0 {
		t.Fatal("expected no usage without input")
	}
}

func TestUnwritableStateBecomesWarning(t *testing.T) {
	env := newTestEnv(t, true)

	// A directory in place of the state file cannot be loaded or saved.
	blocked := filepath.Join(env.dir, "blocked")
	if err := os.MkdirAll(filepath.Join(blocked, "state.toml"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	statePathFlag = filepath.Join(blocked, "state.toml")
	resolvedStatePath = statePathFlag

	out := captureStdout(t, func() {
		if err := base64EncodeCmd.RunE(base64EncodeCmd, []string{"hi"}); err != nil {
			t.Fatalf("base64EncodeCmd.RunE: %v", err)
		}
	})

	resp := decodeResponse(t, out)
	if !resp.OK {
		t.Fatalf("expected the tool to succeed; out=%s", out)
	}
	if !hasWarning(resp.Warnings, WarnUsageNotRecorded) {
		t.Fatalf("expected %s warning; out=%s", WarnUsageNotRecorded, out)
	}
}

func TestToolCommandsJSON(t *testing.T) {
	tests := []struct {
		name     string
		run      func() error
		wantOK   bool
		wantCode string
		wantData string
	}{
		{
			name:     "json get",
			run:      func() error { return jsonGetCmd.RunE(jsonGetCmd, []string{"user.name", `{"user":{"name":"ada"}}`}) },
			wantOK:   true,
			wantData: `"value":"ada"`,
		},
		{
			name:     "json get object",
			run:      func() error { return jsonGetCmd.RunE(jsonGetCmd, []string{"user", `{"user":{"name":"ada"}}`}) },
			wantOK:   true,
			wantData: `"value":{`,
		},
		{
			name:     "json get missing path",
			run:      func() error { return jsonGetCmd.RunE(jsonGetCmd, []string{"user.age", `{"user":{}}`}) },
			wantCode: ErrPathNotFound,
		},
		{
			name:     "json validate",
			run:      func() error { return jsonValidateCmd.RunE(jsonValidateCmd, []string{`[1, 2,]`}) },
			wantCode: ErrValidationFailed,
		},
		{
			name:     "base64 encode",
			run:      func() error { return base64EncodeCmd.RunE(base64EncodeCmd, []string{"Hello,", "DevNest!"}) },
			wantOK:   true,
			wantData: `"output":"SGVsbG8sIERldk5lc3Qh"`,
		},
		{
			name:     "base64 decode invalid",
			run:      func() error { return base64DecodeCmd.RunE(base64DecodeCmd, []string{"not base64!"}) },
			wantCode: ErrDecodeFailed,
		},
		{
			name:     "url encode",
			run:      func() error { return urlEncodeCmd.RunE(urlEncodeCmd, []string{"a b&c"}) },
			wantOK:   true,
			wantData: `"output":"a%20b%26c"`,
		},
		{
			name:     "url decode malformed",
			run:      func() error { return urlDecodeCmd.RunE(urlDecodeCmd, []string{"100%"}) },
			wantCode: ErrDecodeFailed,
		},
		{
			name:     "regex",
			run:      func() error { return regexCmd.RunE(regexCmd, []string{`\d+`, "order 66 shipped 12"}) },
			wantOK:   true,
			wantData: `"text":"66"`,
		},
		{
			name:     "regex invalid",
			run:      func() error { return regexCmd.RunE(regexCmd, []string{`(`, "x"}) },
			wantCode: ErrInvalidRegex,
		},
		{
			name:     "color",
			run:      func() error { return colorCmd.RunE(colorCmd, []string{"#ff0000"}) },
			wantOK:   true,
			wantData: `"hsl":"hsl(0, 100%, 50%)"`,
		},
		{
			name:     "color unknown",
			run:      func() error { return colorCmd.RunE(colorCmd, []string{"blue"}) },
			wantCode: ErrUnknownColor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			newTestEnv(t, true)

			out := captureStdout(t, func() {
				err := tt.run()
				if tt.wantOK && err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if !tt.wantOK && !errors.Is(err, errReported) {
					t.Fatalf("expected errReported, got %v", err)
				}
			})

			resp := decodeResponse(t, out)
			if resp.OK != tt.wantOK {
				t.Fatalf("ok = %v, want %v; out=%s", resp.OK, tt.wantOK, out)
			}
			if tt.wantCode != "" && (resp.Error == nil || resp.Error.Code != tt.wantCode) {
				t.Fatalf("expected error code %s; out=%s", tt.wantCode, out)
			}
			if tt.wantData != "" && !strings.Contains(strings.ReplaceAll(string(resp.Data), " ", ""), strings.ReplaceAll(tt.wantData, " ", "")) {
				t.Fatalf("expected data to contain %s; got %s", tt.wantData, resp.Data)
			}
		})
	}
}

func TestDetectCommand(t *testing.T) {
	env := newTestEnv(t, true)

	out := captureStdout(t, func() {
		if err := detectCmd.RunE(detectCmd, []string{"#1e90ff"}); err != nil {
			t.Fatalf("detectCmd.RunE: %v", err)
		}
	})
	resp := decodeResponse(t, out)
	var data struct {
		Detected      bool   `json:"detected"`
		Type          string `json:"type"`
		SuggestedTool string `json:"suggested_tool"`
		Command       string `json:"command"`
	}
	resp.decodeData(t, &data)
	if !data.Detected || data.Type != "hex-color" || data.SuggestedTool != toolColor || data.Command != "devnest color" {
		t.Fatalf("unexpected detection: %+v", data)
	}
	if len(env.state(t).Usage) != 0 {
		t.Fatal("detect should not record usage")
	}

	out = captureStdout(t, func() {
		if err := detectCmd.RunE(detectCmd, []string{"plain", "words"}); err != nil {
			t.Fatalf("detectCmd.RunE: %v", err)
		}
	})
	resp = decodeResponse(t, out)
	if !resp.OK || !hasWarning(resp.Warnings, WarnNoMatches) {
		t.Fatalf("expected ok with %s warning; out=%s", WarnNoMatches, out)
	}
}

func TestMarkdownCommandJSONIncludesHTML(t *testing.T) {
	env := newTestEnv(t, true)
	env.withStdin("# Title\n\nSome **bold** text\n")

	out := captureStdout(t, func() {
		if err := markdownCmd.RunE(markdownCmd, nil); err != nil {
			t.Fatalf("markdownCmd.RunE: %v", err)
		}
	})

	resp := decodeResponse(t, out)
	var data struct {
		HTML  string `json:"html"`
		Stats struct {
			Words int `json:"words"`
		} `json:"stats"`
	}
	resp.decodeData(t, &data)
	if !strings.Contains(data.HTML, "<h1") || !strings.Contains(data.HTML, "<strong>bold</strong>") {
		t.Fatalf("unexpected html: %q", data.HTML)
	}
	if data.Stats.Words == 0 {
		t.Fatalf("expected word count, got %+v", data.Stats)
	}
}

func TestMarkdownCommandTextSkipsRendererOffTTY(t *testing.T) {
	newTestEnv(t, false)

	prevDisplay := markdownDisplayContext
	prevRender := markdownRender
	t.Cleanup(func() {
		markdownDisplayContext = prevDisplay
		markdownRender = prevRender
	})
	rendered := false
	markdownRender = func(string, int) (string, error) {
		rendered = true
		return "rendered", nil
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "notes.md")
	if err := os.WriteFile(path, []byte("# Notes\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	out := captureStdout(t, func() {
		if err := markdownCmd.RunE(markdownCmd, []string{path}); err != nil {
			t.Fatalf("markdownCmd.RunE: %v", err)
		}
	})
	if rendered {
		t.Fatal("expected raw output when stdout is not a terminal")
	}
	if out != "# Notes\n" {
		t.Fatalf("output = %q, want raw markdown", out)
	}
}
