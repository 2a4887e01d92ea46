package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/devnesthq/devnest/internal/catalog"
	"github.com/devnesthq/devnest/internal/resolver"
	"github.com/devnesthq/devnest/internal/ui"
)

var showCmd = &cobra.Command{
	Use:   "show [tool]",
	Short: "Show details for a tool",
	Long: `Show a tool's description, category, command and your usage of it.

The reference may be an id, a name, a command, an alias, or a fuzzy
abbreviation ("b64", "md prev"). With no argument in an interactive terminal,
opens an fzf picker when fzf is installed.

Examples:
  devnest show json-formatter
  devnest show "Color Picker"
  devnest show rgx`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			if !canUseFZFInteractive() {
				return handleErrorMsg(ErrMissingArgument, "specify a tool", interactivePickerMissingArgSuggestion("show", "devnest show <tool>"))
			}
			store, err := openPrefs()
			if err != nil {
				return handleError(ErrStateError, err, "")
			}
			id, selected, err := pickToolWithFZF(catalog.Default().All(), favoriteSet(store.Favorites()), "show> ", "Select a tool (Esc to cancel)")
			if err != nil {
				return handleError(ErrInternal, err, "")
			}
			if !selected {
				return nil
			}
			return showTool(id)
		}

		tool, warnings, err := resolveToolRef(args[0])
		if err != nil {
			return err
		}
		return showToolWithWarnings(tool.ID, warnings)
	},
}

type toolUsageView struct {
	TotalUses    int        `json:"total_uses"`
	LastUsed     *time.Time `json:"last_used,omitempty"`
	VisitsInWeek int        `json:"visits_in_week"`
}

func showTool(id string) error {
	return showToolWithWarnings(id, nil)
}

func showToolWithWarnings(id string, warnings []Warning) error {
	tool, ok := catalog.Default().Lookup(id)
	if !ok {
		return handleErrorMsg(ErrToolNotFound, fmt.Sprintf("tool not found: %s", id), "Run 'devnest list' to see all tools")
	}

	store, err := openPrefs()
	if err != nil {
		return handleError(ErrStateError, err, "")
	}

	usage := toolUsageView{}
	if u, ok := store.Usage(tool.ID); ok {
		usage.TotalUses = u.TotalUses
		if !u.LastUsed.IsZero() {
			last := u.LastUsed
			usage.LastUsed = &last
		}
	}
	usage.VisitsInWeek = store.WeeklyStats(nowFunc()).ToolUsage[tool.ID]

	data := map[string]interface{}{
		"tool":  newToolView(tool, store.IsFavorite(tool.ID)),
		"usage": usage,
	}

	outputResult(data, warnings, nil, func() {
		fmt.Printf("%s %s\n", ui.Star(store.IsFavorite(tool.ID)), ui.Header(tool.Name))
		fmt.Printf("  id:          %s\n", ui.ToolID(tool.ID))
		fmt.Printf("  category:    %s\n", tool.Category)
		fmt.Printf("  description: %s\n", tool.Description)
		fmt.Printf("  command:     devnest %s\n", tool.Command)
		if len(tool.Aliases) > 0 {
			fmt.Printf("  aliases:     %s\n", strings.Join(tool.Aliases, ", "))
		}
		if usage.TotalUses > 0 {
			fmt.Printf("  used:        %d times, %d this week\n", usage.TotalUses, usage.VisitsInWeek)
		}
		if usage.LastUsed != nil {
			fmt.Printf("  last used:   %s\n", usage.LastUsed.Local().Format("2006-01-02 15:04"))
		}
	})
	return nil
}

// resolveToolRef resolves a user reference to a catalog tool. A fuzzy
// resolution succeeds with a warning naming the chosen tool.
func resolveToolRef(ref string) (catalog.Tool, []Warning, error) {
	c := catalog.Default()
	r := resolver.NewWithThreshold(c.All(), getConfig().SearchThreshold())
	res := r.Resolve(ref)

	if res.Ambiguous {
		return catalog.Tool{}, nil, handleErrorWithDetails(
			ErrRefAmbiguous,
			fmt.Sprintf("reference %q matches several tools: %s", ref, strings.Join(res.Matches, ", ")),
			"Use the full tool id",
			map[string]interface{}{"matches": res.Matches},
		)
	}
	if res.ToolID == "" {
		return catalog.Tool{}, nil, handleErrorMsg(
			ErrToolNotFound,
			fmt.Sprintf("tool not found: %s", ref),
			fmt.Sprintf("Run 'devnest search %s' to browse close matches", ref),
		)
	}

	tool, _ := c.Lookup(res.ToolID)
	var warnings []Warning
	if res.Fuzzy {
		warnings = append(warnings, Warning{
			Code:    WarnFuzzyResolved,
			Message: fmt.Sprintf("%q resolved to %s (score %s)", ref, tool.ID, ui.Score(res.Score)),
			Ref:     ref,
		})
	}
	return tool, warnings, nil
}

func init() {
	rootCmd.AddCommand(showCmd)
}
