// Package cli implements the command-line interface.
package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/devnesthq/devnest/internal/config"
	"github.com/devnesthq/devnest/internal/prefs"
	"github.com/devnesthq/devnest/internal/theme"
	"github.com/devnesthq/devnest/internal/ui"
)

var (
	// Global flags
	configPath    string
	statePathFlag string

	// Resolved values
	resolvedConfigPath string
	resolvedStatePath  string
	cfg                *config.Config
)

// errReported is returned after an error was already written as JSON so
// Execute exits non-zero without printing it twice.
var errReported = errors.New("error already reported")

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "devnest",
	Short: "DevNest - developer utilities with a fuzzy command palette",
	Long: `DevNest bundles everyday developer utilities behind a fuzzy command palette:
JSON formatting, Base64 and URL encoding, regex testing, code minification,
color conversion and Markdown preview.

Run 'devnest search' to find a tool, or call a tool directly.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch cmd.Name() {
		case "completion", "help", "version":
			return nil
		}
		// config subcommands load the file themselves so a broken config can be repaired.
		if isConfigCommand(cmd) {
			return nil
		}

		var err error
		cfg, resolvedConfigPath, err = loadGlobalConfigWithPath()
		if err != nil {
			if isJSONOutput() {
				outputError(ErrConfigInvalid, err.Error(), nil, "Run 'devnest config show' to inspect the config file")
				return errReported
			}
			return fmt.Errorf("failed to load config: %w", err)
		}
		resolvedStatePath = config.ResolveStatePath(statePathFlag, resolvedConfigPath, cfg)

		applyTheme(cfg, activeThemeFromState(resolvedStatePath))
		ui.ConfigureMarkdownCodeTheme(cfg.UI.CodeTheme)
		return nil
	},
}

// Execute runs the CLI.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errReported) {
		fmt.Fprintln(os.Stderr, ui.Error(err.Error()))
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&statePathFlag, "state", "", "Path to state file (overrides state_file in config)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for agent/script use)")
}

func isConfigCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c == configCmd {
			return true
		}
	}
	return false
}

// getConfig returns the loaded config.
func getConfig() *config.Config {
	if cfg == nil {
		return &config.Config{}
	}
	return cfg
}

// getStatePath returns the resolved state path.
func getStatePath() string {
	if resolvedStatePath == "" {
		return config.ResolveStatePath(statePathFlag, config.ResolveConfigPath(configPath), getConfig())
	}
	return resolvedStatePath
}

// openPrefs opens the preference store at the resolved state path.
func openPrefs() (*prefs.Store, error) {
	return prefs.Open(getStatePath())
}

func loadGlobalConfigWithPath() (*config.Config, string, error) {
	resolvedPath := config.ResolveConfigPath(configPath)

	var loadedCfg *config.Config
	var err error
	if strings.TrimSpace(configPath) != "" {
		loadedCfg, err = config.LoadFrom(configPath)
	} else {
		loadedCfg, err = config.Load()
	}
	if err != nil {
		return nil, "", err
	}
	if loadedCfg == nil {
		loadedCfg = &config.Config{}
	}

	return loadedCfg, resolvedPath, nil
}

// activeThemeFromState returns the theme chosen with 'devnest theme use'.
// A missing or unreadable state file means no choice was made.
func activeThemeFromState(statePath string) string {
	state, err := config.LoadState(statePath)
	if err != nil {
		return ""
	}
	return state.ActiveTheme
}

// applyTheme configures terminal colors. An explicit ui.accent wins over the
// preset accent; the preset is picked from state first, then ui.theme.
func applyTheme(c *config.Config, activeTheme string) theme.Preset {
	preset := theme.Resolve(activeTheme, c.UI.Theme)

	accent := strings.TrimSpace(c.UI.Accent)
	if accent == "" {
		accent = preset.AccentHex()
	}
	ui.ConfigureTheme(accent)
	ui.ConfigureMatchColor(preset.MatchHex())
	return preset
}
