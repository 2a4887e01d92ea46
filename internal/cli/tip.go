package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/devnesthq/devnest/internal/catalog"
	"github.com/devnesthq/devnest/internal/ui"
)

var (
	tipDate string
	tipAll  bool
)

var tipCmd = &cobra.Command{
	Use:   "tip",
	Short: "Show the tip of the day",
	Long: `Show the tip of the day. The tip changes daily and cycles through the list.

Examples:
  devnest tip
  devnest tip --date 2026-12-24
  devnest tip --all`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if tipAll {
			tips := catalog.Tips()
			outputResult(map[string]interface{}{"tips": tips}, nil, &Meta{Count: len(tips)}, func() {
				for i, tip := range tips {
					fmt.Printf("%2d. %s\n", i+1, tip)
				}
			})
			return nil
		}

		day := nowFunc()
		if tipDate != "" {
			parsed, err := time.ParseInLocation("2006-01-02", tipDate, time.Local)
			if err != nil {
				return handleErrorMsg(ErrInvalidInput, fmt.Sprintf("invalid date %q", tipDate), "Use YYYY-MM-DD")
			}
			day = parsed
		}

		tip := catalog.DailyTip(day)
		outputResult(map[string]interface{}{
			"date": day.Format("2006-01-02"),
			"tip":  tip,
		}, nil, nil, func() {
			fmt.Printf("%s %s\n", ui.AccentBold.Render("Tip:"), tip)
		})
		return nil
	},
}

func init() {
	tipCmd.Flags().StringVar(&tipDate, "date", "", "Show the tip for a day (YYYY-MM-DD)")
	tipCmd.Flags().BoolVar(&tipAll, "all", false, "List every tip")
	rootCmd.AddCommand(tipCmd)
}
