// Package detect guesses what kind of content a string holds and which tool
// handles it.
package detect

import (
	"sort"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

// matchTimeout bounds each pattern test so pathological input cannot hang
// the CLI.
const matchTimeout = 250 * time.Millisecond

// Pattern recognizes one content type.
type Pattern struct {
	Type          string  `json:"type"`
	SuggestedTool string  `json:"suggested_tool"`
	ToolName      string  `json:"tool_name"`
	Confidence    float64 `json:"confidence"`
	Description   string  `json:"description"`

	re *regexp2.Regexp
}

func newPattern(typ, expr string, opts regexp2.RegexOptions, tool, toolName string, confidence float64, desc string) Pattern {
	re := regexp2.MustCompile(expr, regexp2.ECMAScript|opts)
	re.MatchTimeout = matchTimeout
	return Pattern{
		Type:          typ,
		SuggestedTool: tool,
		ToolName:      toolName,
		Confidence:    confidence,
		Description:   desc,
		re:            re,
	}
}

// Matches reports whether input looks like this pattern's content type.
// A timed-out match counts as no match.
func (p Pattern) Matches(input string) bool {
	ok, err := p.re.MatchString(input)
	return err == nil && ok
}

// Patterns is the built-in pattern list, in declaration order.
var Patterns = []Pattern{
	newPattern("json", `^\s*[\{\[]`, regexp2.None,
		"json-formatter", "JSON Formatter", 0.9, "Looks like JSON data"),
	newPattern("base64", `^[A-Za-z0-9+/]{20,}={0,2}$`, regexp2.None,
		"base64", "Base64 Encoder/Decoder", 0.7, "Looks like Base64 encoded data"),
	newPattern("url", `^https?:\/\/.+`, regexp2.None,
		"url-encoder", "URL Encoder/Decoder", 0.8, "Looks like a URL"),
	newPattern("hex-color", `^#[0-9A-Fa-f]{6}$`, regexp2.None,
		"color-picker", "Color Picker", 0.95, "Looks like a hex color code"),
	newPattern("rgb-color", `^rgb\(\s*\d+\s*,\s*\d+\s*,\s*\d+\s*\)$`, regexp2.None,
		"color-picker", "Color Picker", 0.95, "Looks like an RGB color"),
	newPattern("markdown", `^#{1,6}\s+.+|^\*\*.+\*\*|^\[.+\]\(.+\)`, regexp2.Multiline,
		"markdown-previewer", "Markdown Previewer", 0.85, "Looks like Markdown text"),
	newPattern("html", `^<[a-z][\s\S]*>`, regexp2.IgnoreCase,
		"code-minifier", "Code Minifier", 0.8, "Looks like HTML code"),
	newPattern("css", `^[.#]?[\w-]+\s*\{[\s\S]*\}`, regexp2.None,
		"code-minifier", "Code Minifier", 0.75, "Looks like CSS code"),
	newPattern("encoded-url", `%[0-9A-Fa-f]{2}`, regexp2.None,
		"url-encoder", "URL Encoder/Decoder", 0.85, "Looks like URL-encoded text"),
}

// byConfidence is Patterns ordered by descending confidence. Patterns with
// equal confidence keep declaration order.
var byConfidence = func() []Pattern {
	sorted := append([]Pattern(nil), Patterns...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Confidence > sorted[j].Confidence
	})
	return sorted
}()

// Result is a successful detection.
type Result struct {
	Pattern Pattern `json:"pattern"`
	Input   string  `json:"input"`
}

// Detect returns the highest-confidence pattern matching the trimmed input,
// or nil when the input is blank or nothing matches.
func Detect(input string) *Result {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil
	}

	for _, p := range byConfidence {
		if p.Matches(trimmed) {
			return &Result{Pattern: p, Input: trimmed}
		}
	}
	return nil
}

// ContentType returns the detected content type, or "" when unknown.
func ContentType(input string) string {
	if r := Detect(input); r != nil {
		return r.Pattern.Type
	}
	return ""
}

// SuggestedTool returns the id of the tool suited to input, or "".
func SuggestedTool(input string) string {
	if r := Detect(input); r != nil {
		return r.Pattern.SuggestedTool
	}
	return ""
}
