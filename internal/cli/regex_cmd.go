package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devnesthq/devnest/internal/devtools"
	"github.com/devnesthq/devnest/internal/ui"
)

var (
	regexFile  string
	regexFlags string
)

var regexCmd = &cobra.Command{
	Use:   "regex <pattern> [input]",
	Short: "Test a regular expression against text",
	Long: `Test a JavaScript-style regular expression against text.

Flags: g (every match), i (ignore case), m (^ and $ match at line breaks).
The default is "g". Matches are highlighted in the input; indexes count
characters, not bytes.

Examples:
  devnest regex '\d+' "order 66 shipped in 3 days"
  devnest regex '(?<user>\w+)@(?<host>[\w.]+)' --file emails.txt
  cat log.txt | devnest regex '^error' --flags gim`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pattern := args[0]
		flags, err := devtools.ParseRegexFlags(regexFlags)
		if err != nil {
			return handleError(ErrInvalidInput, err, "Valid flags are g, i and m")
		}

		return runTool(toolRegex, "devnest regex <pattern> <input>", args[1:], regexFile, func(input string) (*toolOutput, error) {
			res, err := devtools.TestRegex(pattern, flags, input)
			if err != nil {
				return nil, handleToolError(err)
			}
			return &toolOutput{
				Data:  res,
				Meta:  &Meta{Count: len(res.Matches)},
				Print: func() { printRegexResult(res, input) },
			}, nil
		})
	},
}

func printRegexResult(res *devtools.RegexResult, input string) {
	if len(res.Matches) == 0 {
		fmt.Printf("No matches for /%s/%s.\n", res.Pattern, res.Flags)
		return
	}

	printOutput(ui.HighlightMatches(input, res.Positions()))
	fmt.Println()
	fmt.Println(ui.Header(fmt.Sprintf("%s for /%s/%s", ui.Count(len(res.Matches), "match", "matches"), res.Pattern, res.Flags)))
	for i, m := range res.Matches {
		fmt.Printf("  %d. %q at %d\n", i+1, m.Text, m.Index)
		for _, g := range m.Groups {
			name := g.Name
			if !g.Matched {
				fmt.Printf("       %s: %s\n", name, ui.Hint("(no match)"))
				continue
			}
			fmt.Printf("       %s: %q\n", name, g.Text)
		}
	}
}

func init() {
	regexCmd.Flags().StringVar(&regexFile, "file", "", "Read input from a file")
	regexCmd.Flags().StringVar(&regexFlags, "flags", devtools.DefaultRegexFlags().String(), "Regex flags: any of g, i, m")
	rootCmd.AddCommand(regexCmd)
}
