package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devnesthq/devnest/internal/devtools"
	"github.com/devnesthq/devnest/internal/ui"
)

var (
	markdownHTML  bool
	markdownStats bool

	markdownDisplayContext = ui.NewDisplayContext
	markdownRender         = ui.RenderMarkdown
)

var markdownCmd = &cobra.Command{
	Use:     "markdown [file]",
	Aliases: []string{"md"},
	Short:   "Preview Markdown in the terminal or convert it to HTML",
	Long: `Render Markdown for the terminal, or convert it to HTML with --html.

GitHub Flavored Markdown is supported: tables, task lists, strikethrough and
autolinks. Single line breaks become <br> in HTML output.

Examples:
  devnest markdown README.md
  devnest markdown README.md --html > readme.html
  cat notes.md | devnest markdown --stats`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var file string
		if len(args) == 1 {
			file = args[0]
		}
		return runTool(toolMarkdown, "devnest markdown <file>", nil, file, func(input string) (*toolOutput, error) {
			stats := devtools.CountMarkdown(input)

			if markdownHTML || isJSONOutput() {
				html, err := devtools.MarkdownToHTML(input)
				if err != nil {
					return nil, handleError(ErrInternal, err, "")
				}
				return &toolOutput{
					Data: map[string]interface{}{
						"html":  html,
						"stats": stats,
					},
					Print: func() {
						printOutput(html)
						if markdownStats {
							printMarkdownStats(stats)
						}
					},
				}, nil
			}

			return &toolOutput{
				Print: func() {
					rendered := input
					display := markdownDisplayContext()
					if display.IsTTY {
						if out, err := markdownRender(input, display.TermWidth); err == nil {
							rendered = out
						}
					}
					printOutput(rendered)
					if markdownStats {
						printMarkdownStats(stats)
					}
				},
			}, nil
		})
	},
}

func printMarkdownStats(stats devtools.MarkdownStats) {
	fmt.Println(ui.Hint(fmt.Sprintf("%d words · %d characters · %d lines", stats.Words, stats.Characters, stats.Lines)))
}

func init() {
	markdownCmd.Flags().BoolVar(&markdownHTML, "html", false, "Print HTML instead of the terminal preview")
	markdownCmd.Flags().BoolVar(&markdownStats, "stats", false, "Print word, character and line counts")
	rootCmd.AddCommand(markdownCmd)
}
