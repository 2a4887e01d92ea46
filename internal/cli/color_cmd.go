package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/devnesthq/devnest/internal/devtools"
	"github.com/devnesthq/devnest/internal/ui"
)

var colorCmd = &cobra.Command{
	Use:   "color <value>",
	Short: "Convert a color between hex, RGB and HSL",
	Long: `Convert a color between hex, RGB and HSL.

Accepts #RRGGBB (the # is optional), rgb(r, g, b) and hsl(h, s%, l%).

Examples:
  devnest color "#3b82f6"
  devnest color 3b82f6
  devnest color "rgb(59, 130, 246)"
  devnest color "hsl(217, 91%, 60%)"`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTool(toolColor, "devnest color <value>", args, "", func(input string) (*toolOutput, error) {
			formats, err := devtools.ConvertColor(input)
			if err != nil {
				return nil, handleToolError(err)
			}
			return &toolOutput{
				Data:  formats,
				Print: func() { printColor(formats) },
			}, nil
		})
	},
}

func printColor(f *devtools.ColorFormats) {
	swatch := lipgloss.NewStyle().Background(lipgloss.Color(f.Hex)).Render("      ")
	fmt.Printf("%s  %s\n", swatch, ui.Bold.Render(f.Hex))
	fmt.Printf("hex  %s\n", f.Hex)
	fmt.Printf("rgb  %s\n", f.RGB)
	fmt.Printf("hsl  %s\n", f.HSL)
}

func init() {
	rootCmd.AddCommand(colorCmd)
}
