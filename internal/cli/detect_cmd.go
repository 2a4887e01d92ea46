package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devnesthq/devnest/internal/catalog"
	"github.com/devnesthq/devnest/internal/detect"
	"github.com/devnesthq/devnest/internal/ui"
)

var detectFile string

var detectCmd = &cobra.Command{
	Use:   "detect [input]",
	Short: "Guess what kind of content the input is and suggest a tool",
	Long: `Guess the content type of the input (JSON, Base64, URL, color, Markdown,
HTML, CSS or URL-encoded text) and suggest the tool for it.

Examples:
  devnest detect '{"id": 7}'
  pbpaste | devnest detect
  devnest detect --file snippet.txt`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := readToolInput(args, detectFile)
		if err != nil {
			return handleInputError(err, "devnest detect <input>")
		}

		res := detect.Detect(in.Text)
		if res == nil {
			if isJSONOutput() {
				outputSuccessWithWarnings(map[string]interface{}{"detected": false}, []Warning{{
					Code:    WarnNoMatches,
					Message: "no known content type detected",
				}}, nil)
				return nil
			}
			fmt.Println("No known content type detected.")
			fmt.Println(ui.Hint("Run 'devnest search' to browse tools."))
			return nil
		}

		data := map[string]interface{}{
			"detected":       true,
			"type":           res.Pattern.Type,
			"description":    res.Pattern.Description,
			"confidence":     res.Pattern.Confidence,
			"suggested_tool": res.Pattern.SuggestedTool,
			"tool_name":      res.Pattern.ToolName,
		}
		if tool, ok := catalog.Default().Lookup(res.Pattern.SuggestedTool); ok {
			data["command"] = "devnest " + tool.Command
		}

		outputResult(data, nil, nil, func() {
			fmt.Printf("%s (%.0f%% confidence)\n", ui.Header(res.Pattern.Description), res.Pattern.Confidence*100)
			fmt.Printf("Try %s: %s\n", ui.ToolID(res.Pattern.ToolName), fmt.Sprint(data["command"]))
		})
		return nil
	},
}

func init() {
	detectCmd.Flags().StringVar(&detectFile, "file", "", "Read input from a file")
	rootCmd.AddCommand(detectCmd)
}
