package cli

import (
	"errors"
	"fmt"

	"github.com/devnesthq/devnest/internal/devtools"
)

// Catalog ids of the tools behind each command.
const (
	toolJSON     = "json-formatter"
	toolBase64   = "base64"
	toolRegex    = "regex-tester"
	toolURL      = "url-encoder"
	toolMinifier = "code-minifier"
	toolColor    = "color-picker"
	toolMarkdown = "markdown-previewer"
)

// toolOutput is what a tool produces for one input.
type toolOutput struct {
	Data interface{}
	Meta *Meta

	// Print renders Data in text mode.
	Print func()
}

// runTool reads the command input, runs fn on it and reports the result.
// A visit to toolID is recorded for every run that got input, including
// runs whose input the tool rejects.
func runTool(toolID, usage string, args []string, filePath string, fn func(input string) (*toolOutput, error)) error {
	start := nowFunc()
	in, err := readToolInput(args, filePath)
	if err != nil {
		return handleInputError(err, usage)
	}

	out, runErr := fn(in.Text)
	warnings := recordToolUse(toolID, start)
	if runErr != nil {
		if !isJSONOutput() {
			printWarnings(warnings)
		}
		return runErr
	}

	outputResult(out.Data, warnings, out.Meta, out.Print)
	return nil
}

// handleToolError maps tool sentinel errors to stable error codes.
func handleToolError(err error) error {
	switch {
	case errors.Is(err, devtools.ErrInvalidJSON):
		return handleError(ErrInvalidJSON, err, "Check for missing commas, brackets, or quotes")
	case errors.Is(err, devtools.ErrPathNotFound):
		return handleError(ErrPathNotFound, err, "Paths use gjson syntax, e.g. user.name or items.0.id")
	case errors.Is(err, devtools.ErrInvalidBase64), errors.Is(err, devtools.ErrInvalidUTF8):
		return handleError(ErrDecodeFailed, err, "Make sure the input is valid Base64 of UTF-8 text")
	case errors.Is(err, devtools.ErrMalformedURI):
		return handleError(ErrDecodeFailed, err, "Check for stray '%' characters")
	case errors.Is(err, devtools.ErrInvalidRegex):
		return handleError(ErrInvalidRegex, err, "")
	case errors.Is(err, devtools.ErrUnknownColor):
		return handleError(ErrUnknownColor, err, "Use #RRGGBB, rgb(r, g, b) or hsl(h, s%, l%)")
	default:
		return handleError(ErrInvalidInput, err, "")
	}
}

// handleValidation reports a failed validation as VALIDATION_FAILED with the
// individual problems as details.
func handleValidation(what string, res devtools.ValidationResult) error {
	msg := fmt.Sprintf("invalid %s", what)
	if len(res.Errors) > 0 {
		e := res.Errors[0]
		msg = fmt.Sprintf("invalid %s: %s", what, e.Message)
		if e.Line > 0 {
			msg = fmt.Sprintf("%s (line %d, column %d)", msg, e.Line, e.Column)
		}
	}
	suggestion := ""
	if len(res.Errors) > 0 {
		suggestion = res.Errors[0].Suggestion
	}
	return handleErrorWithDetails(ErrValidationFailed, msg, suggestion, map[string]interface{}{
		"errors": res.Errors,
	})
}
