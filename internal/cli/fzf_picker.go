package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/devnesthq/devnest/internal/catalog"
	"github.com/devnesthq/devnest/internal/ui"
)

var (
	fzfLookPath         = exec.LookPath
	fzfStdinIsTerminal  = func() bool { return isatty.IsTerminal(os.Stdin.Fd()) }
	fzfStdoutIsTerminal = func() bool { return isatty.IsTerminal(os.Stdout.Fd()) }
	fzfRun              = runFZFPicker
)

type fzfPickerOptions struct {
	Prompt    string
	Header    string
	Delimiter string
	WithNth   string
}

func hasFZFInstalled() bool {
	_, err := fzfLookPath("fzf")
	return err == nil
}

func canUseFZFInteractive() bool {
	if isJSONOutput() {
		return false
	}
	if !fzfStdinIsTerminal() || !fzfStdoutIsTerminal() {
		return false
	}
	return hasFZFInstalled()
}

func runFZFPicker(lines []string, opts fzfPickerOptions) (string, bool, error) {
	if len(lines) == 0 {
		return "", false, nil
	}

	args := []string{
		"--layout=reverse",
		"--height=80%",
		"--border",
		"--select-1",
		"--exit-0",
	}
	if strings.TrimSpace(opts.Prompt) != "" {
		args = append(args, "--prompt", opts.Prompt)
	}
	if strings.TrimSpace(opts.Header) != "" {
		args = append(args, "--header", opts.Header)
	}
	if strings.TrimSpace(opts.Delimiter) != "" {
		args = append(args, "--delimiter", opts.Delimiter)
	}
	if strings.TrimSpace(opts.WithNth) != "" {
		args = append(args, "--with-nth", opts.WithNth)
	}

	cmd := exec.Command("fzf", args...)
	cmd.Stdin = strings.NewReader(strings.Join(lines, "\n") + "\n")

	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			if code := exitErr.ExitCode(); code == 1 || code == 130 {
				return "", false, nil
			}
		}
		return "", false, fmt.Errorf("run fzf selector: %w", err)
	}

	selection := strings.TrimSpace(stdout.String())
	if selection == "" {
		return "", false, nil
	}
	return selection, true, nil
}

// pickToolWithFZF lets the user choose one of tools. Lines carry the tool id
// as a hidden first column so the selection maps back without parsing names.
func pickToolWithFZF(tools []catalog.Tool, favorites map[string]bool, prompt, header string) (string, bool, error) {
	if len(tools) == 0 {
		return "", false, fmt.Errorf("no tools to pick from")
	}

	lines := make([]string, 0, len(tools))
	for _, tool := range tools {
		mark := " "
		if favorites[tool.ID] {
			mark = ui.SymbolFavorite
		}
		lines = append(lines, fmt.Sprintf("%s\t%s %s\t%s\t%s", tool.ID, mark, tool.Name, tool.Category, tool.Description))
	}

	selectedLine, selected, err := fzfRun(lines, fzfPickerOptions{
		Prompt:    prompt,
		Header:    header,
		Delimiter: "\t",
		WithNth:   "2..",
	})
	if err != nil || !selected {
		return "", selected, err
	}
	id, _, _ := strings.Cut(selectedLine, "\t")
	return strings.TrimSpace(id), true, nil
}

func interactivePickerMissingArgSuggestion(commandName, usage string) string {
	if hasFZFInstalled() {
		return fmt.Sprintf("Run '%s'", usage)
	}
	return fmt.Sprintf("Install fzf to enable interactive selection for bare 'devnest %s', or run '%s'", commandName, usage)
}
