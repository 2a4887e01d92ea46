package devtools

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"
)

// Language selects a minifier.
type Language string

const (
	LangHTML Language = "html"
	LangCSS  Language = "css"
	LangJS   Language = "js"
)

var (
	reWhitespace   = jsRegexp(`\s+`, regexp2.None)
	reTagGap       = jsRegexp(`>\s+<`, regexp2.None)
	reBlockComment = jsRegexp(`\/\*[\s\S]*?\*\/`, regexp2.None)
	reLineComment  = jsRegexp(`\/\/.*`, regexp2.None)
	reCSSPunct     = jsRegexp(`\s*([{}:;,])\s*`, regexp2.None)
	reJSPunct      = jsRegexp(`\s*([{}();,=+\-*/<>!&|])\s*`, regexp2.None)
)

type substitution struct {
	re   *regexp2.Regexp
	repl string
}

func applyAll(input string, subs []substitution) (string, error) {
	out := input
	for _, s := range subs {
		var err error
		out, err = replaceAll(s.re, out, s.repl)
		if err != nil {
			return "", fmt.Errorf("minify: %w", err)
		}
	}
	return strings.TrimSpace(out), nil
}

// MinifyHTML collapses whitespace and removes it between tags.
func MinifyHTML(input string) (string, error) {
	return applyAll(input, []substitution{
		{reWhitespace, " "},
		{reTagGap, "><"},
	})
}

// MinifyCSS strips comments and whitespace around punctuation.
func MinifyCSS(input string) (string, error) {
	return applyAll(input, []substitution{
		{reBlockComment, ""},
		{reWhitespace, " "},
		{reCSSPunct, "$1"},
	})
}

// MinifyJS strips comments and whitespace around operators and punctuation.
// It is a text substitution, not a parser: string literals containing // or
// operator padding are rewritten too.
func MinifyJS(input string) (string, error) {
	return applyAll(input, []substitution{
		{reBlockComment, ""},
		{reLineComment, ""},
		{reWhitespace, " "},
		{reJSPunct, "$1"},
	})
}

// Minify dispatches on lang.
func Minify(lang Language, input string) (string, error) {
	switch Language(strings.ToLower(string(lang))) {
	case LangHTML:
		return MinifyHTML(input)
	case LangCSS:
		return MinifyCSS(input)
	case LangJS, "javascript":
		return MinifyJS(input)
	default:
		return "", fmt.Errorf("unsupported language %q (want html, css or js)", lang)
	}
}

// SizeReport compares input and output sizes in bytes.
type SizeReport struct {
	Original  int     `json:"original"`
	Minified  int     `json:"minified"`
	Saved     int     `json:"saved"`
	SavedPct  float64 `json:"saved_pct"`
	Formatted string  `json:"formatted"`
}

// NewSizeReport builds a SizeReport for a minification.
func NewSizeReport(original, minified string) SizeReport {
	r := SizeReport{
		Original: len(original),
		Minified: len(minified),
	}
	r.Saved = r.Original - r.Minified
	if r.Original > 0 {
		r.SavedPct = math.Round(float64(r.Saved)/float64(r.Original)*1000) / 10
	}
	r.Formatted = fmt.Sprintf("%s → %s (%s%% smaller)",
		FormatBytes(r.Original), FormatBytes(r.Minified),
		strconv.FormatFloat(r.SavedPct, 'f', -1, 64))
	return r
}

// FormatBytes renders a byte count with a binary unit, rounded to two
// decimals: 1536 → "1.5 KB".
func FormatBytes(n int) string {
	if n <= 0 {
		return "0 Bytes"
	}
	units := []string{"Bytes", "KB", "MB"}
	v := float64(n)
	i := 0
	for v >= 1024 && i < len(units)-1 {
		v /= 1024
		i++
	}
	v = math.Round(v*100) / 100
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + units[i]
}
