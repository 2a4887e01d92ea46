package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/devnesthq/devnest/internal/config"
	"github.com/devnesthq/devnest/internal/theme"
	"github.com/devnesthq/devnest/internal/ui"
)

type globalConfigContext struct {
	cfg          *config.Config
	configPath   string
	statePath    string
	configExists bool
}

var (
	configSetStateFile   string
	configSetUIAccent    string
	configSetUICodeTheme string
	configSetUITheme     string
	configSetThreshold   float64
	configSetFields      fieldsValue

	configUnsetStateFile   bool
	configUnsetUIAccent    bool
	configUnsetUICodeTheme bool
	configUnsetUITheme     bool
	configUnsetThreshold   bool
	configUnsetFields      bool
)

func loadGlobalConfigContextAllowMissing() (*globalConfigContext, error) {
	resolvedPath := config.ResolveConfigPath(configPath)
	loadedCfg, exists, err := config.LoadAllowMissing(resolvedPath)
	if err != nil {
		return nil, err
	}
	if loadedCfg == nil {
		loadedCfg = &config.Config{}
	}

	return &globalConfigContext{
		cfg:          loadedCfg,
		configPath:   resolvedPath,
		statePath:    config.ResolveStatePath(statePathFlag, resolvedPath, loadedCfg),
		configExists: exists,
	}, nil
}

func configData(ctx *globalConfigContext) map[string]interface{} {
	var threshold interface{}
	if ctx.cfg.Search.Threshold != nil {
		threshold = *ctx.cfg.Search.Threshold
	}

	return map[string]interface{}{
		"config_path": ctx.configPath,
		"state_path":  ctx.statePath,
		"exists":      ctx.configExists,
		"state_file":  strings.TrimSpace(ctx.cfg.StateFile),
		"ui": map[string]interface{}{
			"accent":     strings.TrimSpace(ctx.cfg.UI.Accent),
			"code_theme": strings.TrimSpace(ctx.cfg.UI.CodeTheme),
			"theme":      strings.TrimSpace(ctx.cfg.UI.Theme),
		},
		"search": map[string]interface{}{
			"threshold":           threshold,
			"fields":              ctx.cfg.Search.Fields,
			"effective_threshold": ctx.cfg.SearchThreshold(),
			"effective_fields":    ctx.cfg.SearchFields(),
		},
	}
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	ctx, err := loadGlobalConfigContextAllowMissing()
	if err != nil {
		return handleError(ErrConfigInvalid, err, "")
	}

	if isJSONOutput() {
		outputSuccess(configData(ctx), nil)
		return nil
	}

	if !ctx.configExists {
		fmt.Printf("Config file does not exist: %s\n", ctx.configPath)
		fmt.Println("Run 'devnest config init' to create it.")
		return nil
	}

	fmt.Printf("config: %s\n", ctx.configPath)
	fmt.Printf("state:  %s\n", ctx.statePath)

	if v := strings.TrimSpace(ctx.cfg.StateFile); v != "" {
		fmt.Printf("state_file: %s\n", v)
	}
	if v := strings.TrimSpace(ctx.cfg.UI.Accent); v != "" {
		fmt.Printf("ui.accent: %s\n", v)
	}
	if v := strings.TrimSpace(ctx.cfg.UI.CodeTheme); v != "" {
		fmt.Printf("ui.code_theme: %s\n", v)
	}
	if v := strings.TrimSpace(ctx.cfg.UI.Theme); v != "" {
		fmt.Printf("ui.theme: %s\n", v)
	}
	fmt.Printf("search.threshold: %s\n", ui.Score(ctx.cfg.SearchThreshold()))
	fmt.Printf("search.fields: %s\n", strings.Join(ctx.cfg.SearchFields(), ", "))
	return nil
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage global DevNest config.toml settings",
	Long: `Manage global DevNest config.toml settings.

Use this to initialize, inspect, and edit machine-level configuration.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default global config.toml if missing",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		targetPath := config.ResolveConfigPath(configPath)
		_, statErr := os.Stat(targetPath)
		existed := statErr == nil
		if statErr != nil && !os.IsNotExist(statErr) {
			return handleError(ErrFileReadError, statErr, "")
		}

		createdPath, err := config.CreateDefaultAt(targetPath)
		if err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"config_path": createdPath,
				"created":     !existed,
			}, nil)
			return nil
		}

		if existed {
			fmt.Printf("Config already exists: %s\n", createdPath)
		} else {
			fmt.Printf("Created config: %s\n", createdPath)
		}
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config and state file paths",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := loadGlobalConfigContextAllowMissing()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}
		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"config_path": ctx.configPath,
				"state_path":  ctx.statePath,
				"exists":      ctx.configExists,
			}, nil)
			return nil
		}
		fmt.Println(ctx.configPath)
		fmt.Println(ctx.statePath)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set one or more global config.toml fields",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := loadGlobalConfigContextAllowMissing()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}

		changed := make([]string, 0, 6)

		if cmd.Flags().Changed("state-file") {
			value := strings.TrimSpace(configSetStateFile)
			if value == "" {
				return handleErrorMsg(ErrInvalidInput, "state-file cannot be empty; use 'devnest config unset --state-file' to clear it", "")
			}
			ctx.cfg.StateFile = value
			changed = append(changed, "state_file")
		}

		if cmd.Flags().Changed("ui-accent") {
			value := strings.TrimSpace(configSetUIAccent)
			if !ui.IsValidColor(value) {
				return handleErrorMsg(ErrInvalidInput, fmt.Sprintf("invalid ui-accent %q", value), "Use an ANSI color 0-255 or #RRGGBB; 'devnest config unset --ui-accent' clears it")
			}
			ctx.cfg.UI.Accent = value
			changed = append(changed, "ui.accent")
		}

		if cmd.Flags().Changed("ui-code-theme") {
			value := strings.TrimSpace(configSetUICodeTheme)
			if !ui.IsCodeTheme(value) {
				return handleErrorMsg(ErrInvalidInput, fmt.Sprintf("unknown code theme %q", value), fmt.Sprintf("Available: %s", strings.Join(ui.CodeThemes(), ", ")))
			}
			ctx.cfg.UI.CodeTheme = value
			changed = append(changed, "ui.code_theme")
		}

		if cmd.Flags().Changed("ui-theme") {
			preset, ok := theme.Lookup(configSetUITheme)
			if !ok {
				return handleErrorMsg(ErrThemeNotFound, fmt.Sprintf("theme not found: %s", configSetUITheme), fmt.Sprintf("Available themes: %s", strings.Join(themeIDs(), ", ")))
			}
			ctx.cfg.UI.Theme = preset.ID
			changed = append(changed, "ui.theme")
		}

		if cmd.Flags().Changed("threshold") {
			if err := config.ValidateThreshold(configSetThreshold); err != nil {
				return handleError(ErrInvalidInput, err, "")
			}
			value := configSetThreshold
			ctx.cfg.Search.Threshold = &value
			changed = append(changed, "search.threshold")
		}

		if cmd.Flags().Changed("fields") {
			ctx.cfg.Search.Fields = append([]string(nil), configSetFields.fields...)
			changed = append(changed, "search.fields")
		}

		if len(changed) == 0 {
			return handleErrorMsg(ErrMissingArgument, "no fields provided; set at least one --state-file/--ui-accent/--ui-code-theme/--ui-theme/--threshold/--fields", "")
		}

		if err := config.SaveTo(ctx.configPath, ctx.cfg); err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		ctx.configExists = true
		ctx.statePath = config.ResolveStatePath(statePathFlag, ctx.configPath, ctx.cfg)
		if isJSONOutput() {
			data := configData(ctx)
			data["changed"] = changed
			outputSuccess(data, nil)
			return nil
		}

		fmt.Printf("Updated config: %s\n", ctx.configPath)
		fmt.Printf("changed: %s\n", strings.Join(changed, ", "))
		return nil
	},
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset",
	Short: "Clear one or more global config.toml fields",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := loadGlobalConfigContextAllowMissing()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}
		if !ctx.configExists {
			return handleErrorMsg(ErrFileNotFound, fmt.Sprintf("config file not found: %s", ctx.configPath), "Run 'devnest config init' first")
		}

		changed := make([]string, 0, 6)
		if configUnsetStateFile {
			ctx.cfg.StateFile = ""
			changed = append(changed, "state_file")
		}
		if configUnsetUIAccent {
			ctx.cfg.UI.Accent = ""
			changed = append(changed, "ui.accent")
		}
		if configUnsetUICodeTheme {
			ctx.cfg.UI.CodeTheme = ""
			changed = append(changed, "ui.code_theme")
		}
		if configUnsetUITheme {
			ctx.cfg.UI.Theme = ""
			changed = append(changed, "ui.theme")
		}
		if configUnsetThreshold {
			ctx.cfg.Search.Threshold = nil
			changed = append(changed, "search.threshold")
		}
		if configUnsetFields {
			ctx.cfg.Search.Fields = nil
			changed = append(changed, "search.fields")
		}

		if len(changed) == 0 {
			return handleErrorMsg(ErrMissingArgument, "no fields selected; pass one or more unset flags", "")
		}

		if err := config.SaveTo(ctx.configPath, ctx.cfg); err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		ctx.statePath = config.ResolveStatePath(statePathFlag, ctx.configPath, ctx.cfg)
		if isJSONOutput() {
			data := configData(ctx)
			data["changed"] = changed
			outputSuccess(data, nil)
			return nil
		}

		fmt.Printf("Updated config: %s\n", ctx.configPath)
		fmt.Printf("cleared: %s\n", strings.Join(changed, ", "))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configUnsetCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current global config.toml values",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	})

	configSetCmd.Flags().StringVar(&configSetStateFile, "state-file", "", "Set state.toml path (absolute or relative to config directory)")
	configSetCmd.Flags().StringVar(&configSetUIAccent, "ui-accent", "", "Set UI accent color (ANSI 0-255 or #RRGGBB)")
	configSetCmd.Flags().StringVar(&configSetUICodeTheme, "ui-code-theme", "", "Set markdown code theme name")
	configSetCmd.Flags().StringVar(&configSetUITheme, "ui-theme", "", "Set the default color theme preset")
	configSetCmd.Flags().Float64Var(&configSetThreshold, "threshold", config.DefaultThreshold, "Set the palette minimum score (0-100)")
	configSetCmd.Flags().Var(&configSetFields, "fields", "Set the searched fields (comma-separated: name, description, category, id)")

	configUnsetCmd.Flags().BoolVar(&configUnsetStateFile, "state-file", false, "Clear state_file")
	configUnsetCmd.Flags().BoolVar(&configUnsetUIAccent, "ui-accent", false, "Clear ui.accent")
	configUnsetCmd.Flags().BoolVar(&configUnsetUICodeTheme, "ui-code-theme", false, "Clear ui.code_theme")
	configUnsetCmd.Flags().BoolVar(&configUnsetUITheme, "ui-theme", false, "Clear ui.theme")
	configUnsetCmd.Flags().BoolVar(&configUnsetThreshold, "threshold", false, "Clear search.threshold")
	configUnsetCmd.Flags().BoolVar(&configUnsetFields, "fields", false, "Clear search.fields")

	rootCmd.AddCommand(configCmd)
}
