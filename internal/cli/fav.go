package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devnesthq/devnest/internal/catalog"
	"github.com/devnesthq/devnest/internal/prefs"
	"github.com/devnesthq/devnest/internal/ui"
)

var favCmd = &cobra.Command{
	Use:     "fav",
	Aliases: []string{"favorites"},
	Short:   "Manage favorite tools",
	Long: `Star tools you use often. Favorites are marked in search and list output
and kept in state.toml.

Examples:
  devnest fav add json
  devnest fav toggle "color picker"
  devnest fav list
  devnest fav clear`,
	Args: cobra.NoArgs,
	RunE: runFavList,
}

var favListCmd = &cobra.Command{
	Use:   "list",
	Short: "List favorite tools in the order they were starred",
	Args:  cobra.NoArgs,
	RunE:  runFavList,
}

func runFavList(cmd *cobra.Command, args []string) error {
	store, err := openPrefs()
	if err != nil {
		return handleError(ErrStateError, err, "")
	}

	c := catalog.Default()
	views := make([]toolView, 0)
	var warnings []Warning
	for _, id := range store.Favorites() {
		tool, ok := c.Lookup(id)
		if !ok {
			warnings = append(warnings, Warning{
				Code:    WarnUnknownTool,
				Message: fmt.Sprintf("favorite %q is not a known tool", id),
				Ref:     id,
			})
			continue
		}
		views = append(views, newToolView(tool, true))
	}

	if isJSONOutput() {
		outputSuccessWithWarnings(map[string]interface{}{"favorites": views}, warnings, &Meta{Count: len(views)})
		return nil
	}

	printWarnings(warnings)
	if len(views) == 0 {
		fmt.Println("No favorites yet.")
		fmt.Println(ui.Hint("Star a tool with 'devnest fav add <tool>'."))
		return nil
	}
	printToolList(views, ui.NewDisplayContext())
	return nil
}

// favAction applies a change to the favorite state of one tool and reports
// whether the tool is starred afterwards and whether anything changed.
type favAction func(store *prefs.Store, id string) (starred, changed bool)

func newFavCmd(use, short string, action favAction) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <tool>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tool, warnings, err := resolveToolRef(args[0])
			if err != nil {
				return err
			}

			store, err := openPrefs()
			if err != nil {
				return handleError(ErrStateError, err, "")
			}
			starred, changed := action(store, tool.ID)
			if err := store.Save(); err != nil {
				return handleError(ErrFileWriteError, err, "")
			}

			data := map[string]interface{}{
				"id":        tool.ID,
				"favorite":  starred,
				"changed":   changed,
				"favorites": store.Favorites(),
			}
			outputResult(data, warnings, nil, func() {
				switch {
				case !changed && starred:
					fmt.Printf("%s is already a favorite\n", tool.Name)
				case !changed:
					fmt.Printf("%s is not a favorite\n", tool.Name)
				case starred:
					fmt.Println(ui.Successf("Starred %s", tool.Name))
				default:
					fmt.Println(ui.Successf("Unstarred %s", tool.Name))
				}
			})
			return nil
		},
	}
}

var favClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all favorites",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openPrefs()
		if err != nil {
			return handleError(ErrStateError, err, "")
		}
		removed := store.ClearFavorites()
		if err := store.Save(); err != nil {
			return handleError(ErrFileWriteError, err, "")
		}
		outputResult(map[string]interface{}{"removed": removed}, nil, nil, func() {
			fmt.Println(ui.Successf("Cleared %s", ui.Count(removed, "favorite", "favorites")))
		})
		return nil
	},
}

func init() {
	favCmd.AddCommand(favListCmd)
	favCmd.AddCommand(newFavCmd("add", "Star a tool", func(s *prefs.Store, id string) (bool, bool) {
		return true, s.AddFavorite(id)
	}))
	favCmd.AddCommand(newFavCmd("remove", "Unstar a tool", func(s *prefs.Store, id string) (bool, bool) {
		return false, s.RemoveFavorite(id)
	}))
	favCmd.AddCommand(newFavCmd("toggle", "Star or unstar a tool", func(s *prefs.Store, id string) (bool, bool) {
		return s.ToggleFavorite(id), true
	}))
	favCmd.AddCommand(favClearCmd)
	rootCmd.AddCommand(favCmd)
}
