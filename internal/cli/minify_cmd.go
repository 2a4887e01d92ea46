package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devnesthq/devnest/internal/devtools"
)

var minifyFile string

var minifyCmd = &cobra.Command{
	Use:   "minify",
	Short: "Minify HTML, CSS or JavaScript",
	Long: `Strip comments and whitespace from HTML, CSS or JavaScript and report
the size saved.

The minifiers are substitution based: they are fast and predictable but do
not parse the source, so string literals containing comment markers or
significant whitespace may be altered.

Examples:
  devnest minify css --file site.css
  cat index.html | devnest minify html
  devnest minify js "function add(a, b) { return a + b; }"`,
}

func newMinifyCmd(lang devtools.Language, name string) *cobra.Command {
	usage := fmt.Sprintf("devnest minify %s <source>", lang)
	return &cobra.Command{
		Use:   fmt.Sprintf("%s [source]", lang),
		Short: fmt.Sprintf("Minify %s", name),
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTool(toolMinifier, usage, args, minifyFile, func(input string) (*toolOutput, error) {
				out, err := devtools.Minify(lang, input)
				if err != nil {
					return nil, handleToolError(err)
				}
				report := devtools.NewSizeReport(input, out)
				return &toolOutput{
					Data: map[string]interface{}{
						"language": lang,
						"output":   out,
						"size":     report,
					},
					Print: func() {
						printOutput(out)
						printSizeReport(report)
					},
				}, nil
			})
		},
	}
}

func init() {
	minifyCmd.PersistentFlags().StringVar(&minifyFile, "file", "", "Read input from a file")
	minifyCmd.AddCommand(newMinifyCmd(devtools.LangHTML, "HTML"))
	minifyCmd.AddCommand(newMinifyCmd(devtools.LangCSS, "CSS"))
	jsCmd := newMinifyCmd(devtools.LangJS, "JavaScript")
	jsCmd.Aliases = []string{"javascript"}
	minifyCmd.AddCommand(jsCmd)
	rootCmd.AddCommand(minifyCmd)
}
