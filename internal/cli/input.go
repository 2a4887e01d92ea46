package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/devnesthq/devnest/internal/ui"
)

var (
	inputStdin           io.Reader = os.Stdin
	inputStdinIsTerminal           = ui.StdinIsTerminal
	nowFunc                        = time.Now
)

// toolInput is the text a tool command operates on and where it came from.
type toolInput struct {
	Text   string
	Source string // "arg", "file" or "stdin"
}

// readToolInput takes input from the positional args, then --file, then
// piped stdin. Args are joined with single spaces.
func readToolInput(args []string, filePath string) (toolInput, error) {
	if strings.TrimSpace(filePath) != "" {
		if len(args) > 0 {
			return toolInput{}, fmt.Errorf("pass input either as an argument or with --file, not both")
		}
		data, err := os.ReadFile(filePath)
		if err != nil {
			return toolInput{}, err
		}
		return toolInput{Text: string(data), Source: "file"}, nil
	}

	if len(args) > 0 {
		return toolInput{Text: strings.Join(args, " "), Source: "arg"}, nil
	}

	if inputStdinIsTerminal() {
		return toolInput{}, errNoInput
	}
	data, err := io.ReadAll(inputStdin)
	if err != nil {
		return toolInput{}, fmt.Errorf("read stdin: %w", err)
	}
	return toolInput{Text: string(data), Source: "stdin"}, nil
}

var errNoInput = errors.New("no input provided")

// handleInputError maps a readToolInput failure to a CLI error.
func handleInputError(err error, usage string) error {
	switch {
	case errors.Is(err, errNoInput):
		return handleErrorMsg(ErrMissingArgument, "no input provided", fmt.Sprintf("Usage: %s (or pipe input on stdin, or pass --file)", usage))
	case os.IsNotExist(err):
		return handleError(ErrFileNotFound, err, "")
	default:
		return handleError(ErrFileReadError, err, "")
	}
}

// recordToolUse stores a visit for toolID lasting from start until now.
// Failing to record usage never fails the command; it becomes a warning.
func recordToolUse(toolID string, start time.Time) []Warning {
	store, err := openPrefs()
	if err != nil {
		return []Warning{usageWarning(toolID, err)}
	}
	store.TrackVisit(toolID, start, nowFunc().Sub(start))
	if err := store.Save(); err != nil {
		return []Warning{usageWarning(toolID, err)}
	}
	return nil
}

func usageWarning(toolID string, err error) Warning {
	return Warning{
		Code:    WarnUsageNotRecorded,
		Message: fmt.Sprintf("usage not recorded: %v", err),
		Ref:     toolID,
	}
}

// printOutput writes s followed by a newline unless it already ends in one.
func printOutput(s string) {
	fmt.Print(s)
	if !strings.HasSuffix(s, "\n") {
		fmt.Println()
	}
}
