package devtools

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// DefaultIndent is the indentation width used by FormatJSON.
const DefaultIndent = 2

const jsonSuggestion = "Check for missing commas, brackets, or quotes"

// ValidateJSON checks input and, when it is invalid, reports where parsing
// failed as a 1-based line and column.
func ValidateJSON(input string) ValidationResult {
	if gjson.Valid(input) {
		return valid()
	}

	offset, msg := locateJSONError(input)
	line, col := lineColumn(input, offset)
	return invalid(ValidationError{
		Line:       line,
		Column:     col,
		Message:    msg,
		Suggestion: jsonSuggestion,
	})
}

// locateJSONError returns the byte offset and message of the first syntax
// error in input.
func locateJSONError(input string) (int, string) {
	var v any
	err := json.Unmarshal([]byte(input), &v)
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &syntaxErr):
		// Offset points just past the offending byte.
		off := int(syntaxErr.Offset)
		if off > 0 {
			off--
		}
		return off, syntaxErr.Error()
	case err != nil:
		return 0, err.Error()
	case strings.TrimSpace(input) == "":
		return 0, "unexpected end of JSON input"
	default:
		return 0, ErrInvalidJSON.Error()
	}
}

// lineColumn converts a byte offset into a 1-based line and column.
func lineColumn(input string, offset int) (int, int) {
	if offset > len(input) {
		offset = len(input)
	}
	before := input[:offset]
	line := strings.Count(before, "\n") + 1
	col := len([]rune(before[strings.LastIndex(before, "\n")+1:])) + 1
	return line, col
}

func requireJSON(input string) error {
	if res := ValidateJSON(input); !res.Valid {
		e := res.Errors[0]
		return fmt.Errorf("%w: %s (line %d, column %d)", ErrInvalidJSON, e.Message, e.Line, e.Column)
	}
	return nil
}

// FormatJSON pretty-prints input with indent spaces per level. indent <= 0
// uses DefaultIndent.
//
// Only whitespace changes: key order, number spellings such as 1.0 or 1e2,
// and duplicate keys are kept as written rather than normalized by a
// decode/encode round trip.
func FormatJSON(input string, indent int) (string, error) {
	if err := requireJSON(input); err != nil {
		return "", err
	}
	if indent <= 0 {
		indent = DefaultIndent
	}

	out := pretty.PrettyOptions([]byte(input), &pretty.Options{
		Indent: strings.Repeat(" ", indent),
	})
	return strings.TrimRight(string(out), "\n"), nil
}

// MinifyJSON removes all insignificant whitespace from input.
func MinifyJSON(input string) (string, error) {
	if err := requireJSON(input); err != nil {
		return "", err
	}
	return string(pretty.Ugly([]byte(input))), nil
}

// GetPath returns the raw JSON value at a gjson path such as "user.name" or
// "items.#.id".
func GetPath(input, path string) (string, error) {
	if err := requireJSON(input); err != nil {
		return "", err
	}
	res := gjson.Get(input, path)
	if !res.Exists() {
		return "", fmt.Errorf("%w: %s", ErrPathNotFound, path)
	}
	return res.Raw, nil
}

// SetPath sets the value at path and returns the updated document. value is
// inserted as raw JSON when it parses as JSON, otherwise as a string.
func SetPath(input, path, value string) (string, error) {
	if err := requireJSON(input); err != nil {
		return "", err
	}

	var (
		out string
		err error
	)
	if gjson.Valid(value) {
		out, err = sjson.SetRaw(input, path, value)
	} else {
		out, err = sjson.Set(input, path, value)
	}
	if err != nil {
		return "", fmt.Errorf("failed to set %s: %w", path, err)
	}
	return out, nil
}
