package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devnesthq/devnest/internal/catalog"
	"github.com/devnesthq/devnest/internal/ui"
)

var (
	listCategory  categoryValue
	listPopular   bool
	listFavorites bool
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tools by category",
	Long: `List the tools in the catalog. Favorites are marked with a star.

Examples:
  devnest list
  devnest list --category formatters
  devnest list --popular
  devnest list --favorites`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openPrefs()
		if err != nil {
			return handleError(ErrStateError, err, "")
		}
		favorites := favoriteSet(store.Favorites())

		c := catalog.Default()
		tools := filterTools(c.ByCategory(listCategory.name), func(t catalog.Tool) bool {
			if listPopular && !t.Popular {
				return false
			}
			if listFavorites && !favorites[t.ID] {
				return false
			}
			return true
		})

		views := make([]toolView, len(tools))
		for i, t := range tools {
			views[i] = newToolView(t, favorites[t.ID])
		}

		if isJSONOutput() {
			categories := append([]string{catalog.AllCategory}, c.Categories...)
			outputSuccess(map[string]interface{}{
				"categories": categories,
				"tools":      views,
			}, &Meta{Count: len(views)})
			return nil
		}

		if len(views) == 0 {
			if listFavorites {
				fmt.Println("No favorites yet.")
				fmt.Println(ui.Hint("Star a tool with 'devnest fav add <tool>'."))
				return nil
			}
			fmt.Println("No tools match.")
			return nil
		}

		printToolList(views, ui.NewDisplayContext())
		return nil
	},
}

func filterTools(tools []catalog.Tool, keep func(catalog.Tool) bool) []catalog.Tool {
	out := tools[:0:0]
	for _, t := range tools {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

func printToolList(views []toolView, display *ui.DisplayContext) {
	tbl := ui.NewResultsTable(display, ui.ToolListLayout)
	toolWidth := tbl.ContentWidth("tool")
	descWidth := tbl.ContentWidth("description")
	for _, v := range views {
		tbl.AddRow(ui.ResultRow{
			Cells: []string{
				ui.Star(v.Favorite),
				ui.TruncateWithEllipsis(v.Name, toolWidth),
				v.Category,
				ui.TruncateWithEllipsis(v.Description, descWidth),
			},
		})
	}
	fmt.Println(tbl.Render())
	fmt.Println(ui.Hint(fmt.Sprintf("%s. Run 'devnest show <tool>' for details.", ui.Count(len(views), "tool", "tools"))))
}

func init() {
	listCmd.Flags().VarP(&listCategory, "category", "c", "Only list tools in this category")
	listCmd.Flags().BoolVar(&listPopular, "popular", false, "Only list popular tools")
	listCmd.Flags().BoolVar(&listFavorites, "favorites", false, "Only list favorite tools")
	rootCmd.AddCommand(listCmd)
}
