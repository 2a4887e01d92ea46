package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/devnesthq/devnest/internal/fuzzy"
	"github.com/devnesthq/devnest/internal/theme"
	"github.com/devnesthq/devnest/internal/ui"
)

type themeView struct {
	theme.Preset
	AccentHex string `json:"accent_hex"`
	MatchHex  string `json:"match_hex"`
	Active    bool   `json:"active"`
}

func newThemeView(p theme.Preset, activeID string) themeView {
	return themeView{
		Preset:    p,
		AccentHex: p.AccentHex(),
		MatchHex:  p.MatchHex(),
		Active:    p.ID == activeID,
	}
}

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Pick a color theme",
	Long: `Pick one of the built-in color themes. The theme's primary color becomes
the accent and its accent color highlights fuzzy matches. An explicit
ui.accent in config.toml still wins over the theme accent.

Examples:
  devnest theme list
  devnest theme use forest
  devnest theme toggle`,
	Args: cobra.NoArgs,
	RunE: runThemeShow,
}

var themeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List built-in themes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		active, err := currentTheme()
		if err != nil {
			return handleError(ErrStateError, err, "")
		}

		presets := theme.All()
		views := make([]themeView, len(presets))
		for i, p := range presets {
			views[i] = newThemeView(p, active.ID)
		}

		outputResult(map[string]interface{}{
			"active": active.ID,
			"themes": views,
		}, nil, &Meta{Count: len(views)}, func() {
			tbl := ui.NewTable(4)
			for _, v := range views {
				marker := " "
				if v.Active {
					marker = ui.Accent.Render("●")
				}
				tbl.AddRow(marker+" "+themeSwatch(v.Preset), v.ID, v.Name, ui.Hint(v.Description))
			}
			fmt.Print(tbl.String())
		})
		return nil
	},
}

var themeUseCmd = &cobra.Command{
	Use:   "use <theme>",
	Short: "Switch to a theme",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		preset, ok := findTheme(args[0])
		if !ok {
			return handleErrorMsg(ErrThemeNotFound, fmt.Sprintf("theme not found: %s", args[0]), fmt.Sprintf("Available themes: %s", strings.Join(themeIDs(), ", ")))
		}
		return activateTheme(preset)
	},
}

var themeToggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Switch between a dark and a light theme",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		current, err := currentTheme()
		if err != nil {
			return handleError(ErrStateError, err, "")
		}
		return activateTheme(theme.Opposite(current))
	},
}

var themeShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the active theme",
	Args:  cobra.NoArgs,
	RunE:  runThemeShow,
}

func runThemeShow(cmd *cobra.Command, args []string) error {
	active, err := currentTheme()
	if err != nil {
		return handleError(ErrStateError, err, "")
	}
	view := newThemeView(active, active.ID)
	outputResult(view, nil, nil, func() {
		fmt.Printf("%s %s\n", themeSwatch(active), ui.Header(active.Name))
		fmt.Printf("  id:     %s\n", active.ID)
		fmt.Printf("  accent: %s\n", view.AccentHex)
		fmt.Printf("  match:  %s\n", view.MatchHex)
		fmt.Printf("  mode:   %s\n", themeMode(active))
	})
	return nil
}

func activateTheme(preset theme.Preset) error {
	store, err := openPrefs()
	if err != nil {
		return handleError(ErrStateError, err, "")
	}
	if err := store.SetActiveTheme(preset.ID); err != nil {
		return handleError(ErrInvalidInput, err, "")
	}
	if err := store.Save(); err != nil {
		return handleError(ErrFileWriteError, err, "")
	}
	applyTheme(getConfig(), preset.ID)

	outputResult(newThemeView(preset, preset.ID), nil, nil, func() {
		fmt.Println(ui.Successf("Switched to %s (%s)", ui.AccentBold.Render(preset.Name), themeMode(preset)))
	})
	return nil
}

// currentTheme returns the preset in effect: the one saved in state, then
// ui.theme from config, then the default.
func currentTheme() (theme.Preset, error) {
	store, err := openPrefs()
	if err != nil {
		return theme.Preset{}, err
	}
	return theme.Resolve(store.ActiveTheme(), getConfig().UI.Theme), nil
}

// findTheme matches an exact id first, then the best fuzzy match on names.
func findTheme(ref string) (theme.Preset, bool) {
	if p, ok := theme.Lookup(ref); ok {
		return p, true
	}
	results := fuzzy.SearchMultiField(ref, theme.All(), []fuzzy.Projector[theme.Preset]{
		func(p theme.Preset) string { return p.Name },
		func(p theme.Preset) string { return p.ID },
	}, getConfig().SearchThreshold())
	if len(results) == 0 || strings.TrimSpace(ref) == "" {
		return theme.Preset{}, false
	}
	return results[0].Item, true
}

func themeIDs() []string {
	presets := theme.All()
	ids := make([]string, len(presets))
	for i, p := range presets {
		ids[i] = p.ID
	}
	return ids
}

func themeSwatch(p theme.Preset) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(p.AccentHex())).Render("  ") +
		lipgloss.NewStyle().Background(lipgloss.Color(p.MatchHex())).Render("  ")
}

func themeMode(p theme.Preset) string {
	if p.Dark {
		return "dark"
	}
	return "light"
}

func init() {
	themeCmd.AddCommand(themeListCmd)
	themeCmd.AddCommand(themeUseCmd)
	themeCmd.AddCommand(themeToggleCmd)
	themeCmd.AddCommand(themeShowCmd)
	rootCmd.AddCommand(themeCmd)
}
