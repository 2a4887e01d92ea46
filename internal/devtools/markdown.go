package devtools

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var markdownRenderer = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// MarkdownToHTML renders GitHub-flavored markdown to HTML. Raw HTML in the
// input is dropped.
func MarkdownToHTML(input string) (string, error) {
	var buf bytes.Buffer
	if err := markdownRenderer.Convert([]byte(input), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return buf.String(), nil
}

// MarkdownStats holds simple size counts of a markdown source.
type MarkdownStats struct {
	Words      int `json:"words"`
	Characters int `json:"characters"`
	Lines      int `json:"lines"`
}

// CountMarkdown returns word, character and line counts of the source text.
func CountMarkdown(input string) MarkdownStats {
	if input == "" {
		return MarkdownStats{}
	}
	return MarkdownStats{
		Words:      len(strings.Fields(input)),
		Characters: utf8.RuneCountInString(input),
		Lines:      strings.Count(input, "\n") + 1,
	}
}
