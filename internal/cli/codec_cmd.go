package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devnesthq/devnest/internal/devtools"
	"github.com/devnesthq/devnest/internal/ui"
)

var (
	base64File string
	urlFile    string
)

var base64Cmd = &cobra.Command{
	Use:     "base64",
	Aliases: []string{"b64"},
	Short:   "Encode and decode Base64",
	Long: `Encode UTF-8 text to Base64 and decode it back.

Examples:
  devnest base64 encode "hello world"
  echo aGVsbG8= | devnest base64 decode
  devnest base64 validate --file token.txt`,
}

var base64EncodeCmd = &cobra.Command{
	Use:   "encode [text]",
	Short: "Encode text to Base64",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTool(toolBase64, "devnest base64 encode <text>", args, base64File, func(input string) (*toolOutput, error) {
			out := devtools.EncodeBase64(input)
			return textOutput(out), nil
		})
	},
}

var base64DecodeCmd = &cobra.Command{
	Use:   "decode [base64]",
	Short: "Decode Base64 to text",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTool(toolBase64, "devnest base64 decode <base64>", args, base64File, func(input string) (*toolOutput, error) {
			out, err := devtools.DecodeBase64(input)
			if err != nil {
				return nil, handleToolError(err)
			}
			return textOutput(out), nil
		})
	},
}

var base64ValidateCmd = &cobra.Command{
	Use:   "validate [base64]",
	Short: "Check that input is valid Base64",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTool(toolBase64, "devnest base64 validate <base64>", args, base64File, func(input string) (*toolOutput, error) {
			res := devtools.ValidateBase64(input)
			if !res.Valid {
				return nil, handleValidation("Base64", res)
			}
			return &toolOutput{
				Data:  res,
				Print: func() { fmt.Println(ui.Success("Valid Base64")) },
			}, nil
		})
	},
}

var urlCmd = &cobra.Command{
	Use:   "url",
	Short: "Percent-encode and decode URL components",
	Long: `Percent-encode text for use in a URL component and decode it back.

Letters, digits and - _ . ! ~ * ' ( ) are left as is; everything else is
encoded as UTF-8 bytes.

Examples:
  devnest url encode "a b&c=d"
  devnest url decode "a%20b%26c%3Dd"
  devnest url validate https://example.com/path`,
}

var urlEncodeCmd = &cobra.Command{
	Use:   "encode [text]",
	Short: "Percent-encode text",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTool(toolURL, "devnest url encode <text>", args, urlFile, func(input string) (*toolOutput, error) {
			return textOutput(devtools.EncodeURLComponent(input)), nil
		})
	},
}

var urlDecodeCmd = &cobra.Command{
	Use:   "decode [text]",
	Short: "Decode percent-encoded text",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTool(toolURL, "devnest url decode <text>", args, urlFile, func(input string) (*toolOutput, error) {
			out, err := devtools.DecodeURLComponent(input)
			if err != nil {
				return nil, handleToolError(err)
			}
			return textOutput(out), nil
		})
	},
}

var urlValidateCmd = &cobra.Command{
	Use:   "validate [url]",
	Short: "Check that input is an absolute http(s) URL",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTool(toolURL, "devnest url validate <url>", args, urlFile, func(input string) (*toolOutput, error) {
			res := devtools.ValidateURL(input)
			if !res.Valid {
				return nil, handleValidation("URL", res)
			}
			return &toolOutput{
				Data:  res,
				Print: func() { fmt.Println(ui.Success("Valid URL")) },
			}, nil
		})
	},
}

// textOutput is the common result of a transform: one output string.
func textOutput(out string) *toolOutput {
	return &toolOutput{
		Data:  map[string]interface{}{"output": out},
		Print: func() { printOutput(out) },
	}
}

func init() {
	base64Cmd.PersistentFlags().StringVar(&base64File, "file", "", "Read input from a file")
	base64Cmd.AddCommand(base64EncodeCmd)
	base64Cmd.AddCommand(base64DecodeCmd)
	base64Cmd.AddCommand(base64ValidateCmd)
	rootCmd.AddCommand(base64Cmd)

	urlCmd.PersistentFlags().StringVar(&urlFile, "file", "", "Read input from a file")
	urlCmd.AddCommand(urlEncodeCmd)
	urlCmd.AddCommand(urlDecodeCmd)
	urlCmd.AddCommand(urlValidateCmd)
	rootCmd.AddCommand(urlCmd)
}
