package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/devnesthq/devnest/internal/devtools"
	"github.com/devnesthq/devnest/internal/ui"
)

var (
	jsonFile   string
	jsonIndent int
)

var jsonCmd = &cobra.Command{
	Use:   "json",
	Short: "Format, validate and query JSON",
	Long: `Format, validate, minify and query JSON documents.

Input comes from the last argument, --file, or stdin.

Examples:
  devnest json format '{"a":1,"b":[1,2]}'
  cat data.json | devnest json validate
  devnest json minify --file data.json
  devnest json get user.name --file data.json
  devnest json set user.age 42 --file data.json`,
}

var jsonFormatCmd = &cobra.Command{
	Use:   "format [input]",
	Short: "Pretty-print JSON",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTool(toolJSON, "devnest json format <json>", args, jsonFile, func(input string) (*toolOutput, error) {
			out, err := devtools.FormatJSON(input, jsonIndent)
			if err != nil {
				return nil, handleToolError(err)
			}
			return &toolOutput{
				Data:  map[string]interface{}{"output": out},
				Print: func() { printOutput(out) },
			}, nil
		})
	},
}

var jsonValidateCmd = &cobra.Command{
	Use:   "validate [input]",
	Short: "Check that input is valid JSON",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTool(toolJSON, "devnest json validate <json>", args, jsonFile, func(input string) (*toolOutput, error) {
			res := devtools.ValidateJSON(input)
			if !res.Valid {
				return nil, handleValidation("JSON", res)
			}
			return &toolOutput{
				Data:  res,
				Print: func() { fmt.Println(ui.Success("Valid JSON")) },
			}, nil
		})
	},
}

var jsonMinifyCmd = &cobra.Command{
	Use:   "minify [input]",
	Short: "Remove insignificant whitespace from JSON",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTool(toolJSON, "devnest json minify <json>", args, jsonFile, func(input string) (*toolOutput, error) {
			out, err := devtools.MinifyJSON(input)
			if err != nil {
				return nil, handleToolError(err)
			}
			report := devtools.NewSizeReport(input, out)
			return &toolOutput{
				Data: map[string]interface{}{"output": out, "size": report},
				Print: func() {
					printOutput(out)
					printSizeReport(report)
				},
			}, nil
		})
	},
}

var jsonGetCmd = &cobra.Command{
	Use:   "get <path> [input]",
	Short: "Print the value at a path",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		return runTool(toolJSON, "devnest json get <path> <json>", args[1:], jsonFile, func(input string) (*toolOutput, error) {
			value, err := devtools.GetPath(input, path)
			if err != nil {
				return nil, handleToolError(err)
			}
			return &toolOutput{
				Data:  map[string]interface{}{"path": path, "value": json.RawMessage(value)},
				Print: func() { printOutput(value) },
			}, nil
		})
	},
}

var jsonSetCmd = &cobra.Command{
	Use:   "set <path> <value> [input]",
	Short: "Set the value at a path",
	Long: `Set the value at a path and print the updated document.

The value is inserted as JSON when it parses as JSON (42, true, {"a":1},
"quoted"), otherwise as a string.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, value := args[0], args[1]
		return runTool(toolJSON, "devnest json set <path> <value> <json>", args[2:], jsonFile, func(input string) (*toolOutput, error) {
			out, err := devtools.SetPath(input, path, value)
			if err != nil {
				return nil, handleToolError(err)
			}
			return &toolOutput{
				Data:  map[string]interface{}{"path": path, "output": out},
				Print: func() { printOutput(out) },
			}, nil
		})
	},
}

// printSizeReport goes to stderr so the minified output stays pipeable.
func printSizeReport(report devtools.SizeReport) {
	fmt.Fprintln(os.Stderr, ui.Hint(report.Formatted))
}

func init() {
	jsonCmd.PersistentFlags().StringVar(&jsonFile, "file", "", "Read input from a file")
	jsonFormatCmd.Flags().IntVar(&jsonIndent, "indent", devtools.DefaultIndent, "Spaces per indent level")

	jsonCmd.AddCommand(jsonFormatCmd)
	jsonCmd.AddCommand(jsonValidateCmd)
	jsonCmd.AddCommand(jsonMinifyCmd)
	jsonCmd.AddCommand(jsonGetCmd)
	jsonCmd.AddCommand(jsonSetCmd)
	rootCmd.AddCommand(jsonCmd)
}
