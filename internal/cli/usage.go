package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/devnesthq/devnest/internal/catalog"
	"github.com/devnesthq/devnest/internal/prefs"
	"github.com/devnesthq/devnest/internal/ui"
)

var (
	usageLimit int
	usageDays  int
)

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show recently and frequently used tools",
	Long: `Show which tools you use. Every tool command records a visit in
state.toml; the last 100 visits per tool are kept.

Examples:
  devnest usage recent
  devnest usage top --days 30
  devnest usage week
  devnest usage clear`,
	Args: cobra.NoArgs,
	RunE: runUsageWeek,
}

var usageRecentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recently used tools, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if usageLimit < 1 {
			return handleErrorMsg(ErrInvalidInput, "--limit must be >= 1", "")
		}
		store, err := openPrefs()
		if err != nil {
			return handleError(ErrStateError, err, "")
		}

		type recentView struct {
			toolView
			LastUsed  string `json:"last_used"`
			TotalUses int    `json:"total_uses"`
		}

		c := catalog.Default()
		favorites := favoriteSet(store.Favorites())
		views := make([]recentView, 0)
		for _, id := range store.Recent(usageLimit) {
			tool, ok := c.Lookup(id)
			if !ok {
				continue
			}
			u, _ := store.Usage(id)
			views = append(views, recentView{
				toolView:  newToolView(tool, favorites[id]),
				LastUsed:  u.LastUsed.UTC().Format(time.RFC3339),
				TotalUses: u.TotalUses,
			})
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"recent": views}, &Meta{Count: len(views)})
			return nil
		}
		if len(views) == 0 {
			fmt.Println("No tools used yet.")
			return nil
		}
		tbl := ui.NewTable(3)
		for _, v := range views {
			u, _ := store.Usage(v.ID)
			tbl.AddRow(ui.Star(v.Favorite)+" "+v.Name, ui.Hint(u.LastUsed.Local().Format("2006-01-02 15:04")), ui.Hint(fmt.Sprintf("%d uses", v.TotalUses)))
		}
		fmt.Print(tbl.String())
		return nil
	},
}

var usageTopCmd = &cobra.Command{
	Use:   "top",
	Short: "List the most used tools in a recent window",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if usageLimit < 1 {
			return handleErrorMsg(ErrInvalidInput, "--limit must be >= 1", "")
		}
		if usageDays < 1 {
			return handleErrorMsg(ErrInvalidInput, "--days must be >= 1", "")
		}
		store, err := openPrefs()
		if err != nil {
			return handleError(ErrStateError, err, "")
		}

		top := store.MostUsed(usageLimit, usageDays, nowFunc())
		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"days": usageDays,
				"top":  top,
			}, &Meta{Count: len(top)})
			return nil
		}
		if len(top) == 0 {
			fmt.Printf("No tools used in the last %d days.\n", usageDays)
			return nil
		}
		printToolCounts(top)
		return nil
	},
}

var usageWeekCmd = &cobra.Command{
	Use:   "week",
	Short: "Summarize the last seven days",
	Args:  cobra.NoArgs,
	RunE:  runUsageWeek,
}

func runUsageWeek(cmd *cobra.Command, args []string) error {
	store, err := openPrefs()
	if err != nil {
		return handleError(ErrStateError, err, "")
	}
	stats := store.WeeklyStats(nowFunc())

	if isJSONOutput() {
		outputSuccess(stats, &Meta{Count: stats.TotalActions})
		return nil
	}
	if stats.TotalActions == 0 {
		fmt.Println("No tools used in the last 7 days.")
		return nil
	}
	fmt.Println(ui.Header(fmt.Sprintf("This week: %s", ui.Count(stats.TotalActions, "use", "uses"))))
	if name := toolName(stats.MostUsedTool); name != "" {
		fmt.Printf("Most used: %s\n\n", ui.ToolID(name))
	}
	printToolCounts(store.MostUsed(len(stats.ToolUsage), prefs.DefaultWindowDays, nowFunc()))
	return nil
}

var usageClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget all usage history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openPrefs()
		if err != nil {
			return handleError(ErrStateError, err, "")
		}
		store.ClearUsage()
		if err := store.Save(); err != nil {
			return handleError(ErrFileWriteError, err, "")
		}
		outputResult(map[string]interface{}{"cleared": true}, nil, nil, func() {
			fmt.Println(ui.Success("Cleared usage history"))
		})
		return nil
	},
}

func printToolCounts(counts []prefs.ToolCount) {
	tbl := ui.NewTable(2)
	for _, tc := range counts {
		name := toolName(tc.ToolID)
		if name == "" {
			name = tc.ToolID
		}
		tbl.AddRow(name, ui.Hint(fmt.Sprintf("%d", tc.Count)))
	}
	fmt.Print(tbl.String())
}

func toolName(id string) string {
	if tool, ok := catalog.Default().Lookup(id); ok {
		return tool.Name
	}
	return ""
}

func init() {
	usageCmd.PersistentFlags().IntVarP(&usageLimit, "limit", "n", 5, "Maximum number of tools")
	usageTopCmd.Flags().IntVar(&usageDays, "days", prefs.DefaultWindowDays, "Look-back window in days")

	usageCmd.AddCommand(usageRecentCmd)
	usageCmd.AddCommand(usageTopCmd)
	usageCmd.AddCommand(usageWeekCmd)
	usageCmd.AddCommand(usageClearCmd)
	rootCmd.AddCommand(usageCmd)
}
