package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/devnesthq/devnest/internal/catalog"
	"github.com/devnesthq/devnest/internal/config"
	"github.com/devnesthq/devnest/internal/fuzzy"
	"github.com/devnesthq/devnest/internal/ui"
)

const debugEnv = "DEVNEST_DEBUG"

var (
	searchThreshold float64
	searchFields    fieldsValue
	searchCategory  categoryValue
	searchLimit     int
	searchNoPick    bool
)

type toolView struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Icon        string   `json:"icon,omitempty"`
	Command     string   `json:"command"`
	Popular     bool     `json:"popular"`
	Favorite    bool     `json:"favorite"`
	Aliases     []string `json:"aliases,omitempty"`
}

func newToolView(tool catalog.Tool, favorite bool) toolView {
	return toolView{
		ID:          tool.ID,
		Name:        tool.Name,
		Description: tool.Description,
		Category:    tool.Category,
		Icon:        tool.Icon,
		Command:     tool.Command,
		Popular:     tool.Popular,
		Favorite:    favorite,
		Aliases:     tool.Aliases,
	}
}

type searchResultView struct {
	toolView
	Score       float64 `json:"score"`
	MatchedText string  `json:"matched_text,omitempty"`
	Matches     []int   `json:"matches"`
}

var searchCmd = &cobra.Command{
	Use:     "search [query]",
	Aliases: []string{"s", "palette"},
	Short:   "Fuzzy-search the tool palette",
	Long: `Fuzzy-search tools by name and description, best match first.

Exact, prefix and substring matches rank first. Otherwise the characters of
the query must appear in order; longer consecutive runs score higher and
longer names slightly lower. Tools scoring below the threshold are hidden.
With no query in an interactive terminal, opens an fzf picker when fzf is
installed.

Set DEVNEST_DEBUG=1 to print per-field scores to stderr.

Examples:
  devnest search json
  devnest search b64 --fields name,id
  devnest search enc --category encoders --threshold 50
  devnest search --limit 3 fmt`,
	Args: cobra.ArbitraryArgs,
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	start := time.Now()
	query := strings.Join(args, " ")

	c := getConfig()
	threshold := c.SearchThreshold()
	if cmd.Flags().Changed("threshold") {
		if err := config.ValidateThreshold(searchThreshold); err != nil {
			return handleError(ErrInvalidInput, err, "")
		}
		threshold = searchThreshold
	}
	fields := c.SearchFields()
	if cmd.Flags().Changed("fields") {
		fields = searchFields.fields
	}
	if searchLimit < 0 {
		return handleErrorMsg(ErrInvalidInput, "--limit must be >= 0", "")
	}

	store, err := openPrefs()
	if err != nil {
		return handleError(ErrStateError, err, "")
	}
	favorites := favoriteSet(store.Favorites())

	tools := catalog.Default().ByCategory(searchCategory.name)

	if strings.TrimSpace(query) == "" && !searchNoPick && canUseFZFInteractive() {
		id, selected, err := pickToolWithFZF(tools, favorites, "tool> ", "Select a tool (Esc to cancel)")
		if err != nil {
			return handleError(ErrInternal, err, "Run 'devnest search <query>' for non-interactive output")
		}
		if !selected {
			return nil
		}
		return showTool(id)
	}

	results := searchTools(query, tools, fields, threshold)
	if searchLimit > 0 && len(results) > searchLimit {
		results = results[:searchLimit]
	}

	views := make([]searchResultView, len(results))
	for i, r := range results {
		views[i] = searchResultView{
			toolView:    newToolView(r.Item, favorites[r.Item.ID]),
			Score:       r.Score,
			MatchedText: r.Text,
			Matches:     r.Matches,
		}
	}

	elapsed := time.Since(start).Milliseconds()
	if isJSONOutput() {
		outputSuccess(map[string]interface{}{
			"query":     query,
			"threshold": threshold,
			"fields":    fields,
			"category":  searchCategory.name,
			"results":   views,
		}, &Meta{Count: len(views), QueryTimeMs: elapsed})
		return nil
	}

	if len(views) == 0 {
		fmt.Printf("No tools match %q.\n", query)
		fmt.Println(ui.Hint("Try a shorter query or lower --threshold."))
		return nil
	}

	printSearchResults(views, ui.NewDisplayContext())
	return nil
}

func printSearchResults(views []searchResultView, display *ui.DisplayContext) {
	tbl := ui.NewResultsTable(display, ui.PaletteLayout)
	toolWidth := tbl.ContentWidth("tool")
	descWidth := tbl.ContentWidth("description")

	for i, v := range views {
		name := v.Name
		desc := v.Description
		switch v.MatchedText {
		case v.Name:
			name = highlightTruncated(v.Name, v.Matches, toolWidth)
			desc = ui.TruncateWithEllipsis(desc, descWidth)
		case v.Description:
			name = ui.TruncateWithEllipsis(name, toolWidth)
			desc = highlightTruncated(v.Description, v.Matches, descWidth)
		default:
			name = ui.TruncateWithEllipsis(name, toolWidth)
			desc = ui.TruncateWithEllipsis(desc, descWidth)
		}
		tbl.AddRow(ui.ResultRow{
			Num:   i + 1,
			Cells: []string{"", ui.Star(v.Favorite), name, desc, ui.Score(v.Score)},
		})
	}
	fmt.Println(tbl.Render())
}

// highlightTruncated truncates text to width and highlights the positions
// that survive truncation.
func highlightTruncated(text string, positions []int, width int) string {
	truncated := ui.TruncateWithEllipsis(text, width)
	if truncated == text {
		return ui.HighlightMatches(text, positions)
	}
	visible := len([]rune(truncated)) - len("...")
	kept := make([]int, 0, len(positions))
	for _, p := range positions {
		if p < visible {
			kept = append(kept, p)
		}
	}
	return ui.HighlightMatches(truncated, kept)
}

// searchTools runs the palette match over tools using the named fields.
func searchTools(query string, tools []catalog.Tool, fields []string, threshold float64) []fuzzy.Result[catalog.Tool] {
	var names []string
	var projectors []fuzzy.Projector[catalog.Tool]
	for _, f := range fields {
		if p := toolProjector(f); p != nil {
			names = append(names, f)
			projectors = append(projectors, p)
		}
	}
	if len(projectors) == 0 {
		names = append(names, config.FieldName)
		projectors = append(projectors, toolProjector(config.FieldName))
	}

	if debugEnabled() && query != "" {
		for _, tool := range tools {
			for i, p := range projectors {
				debugf("%s %s=%q score=%.1f", tool.ID, names[i], p(tool), fuzzy.Score(query, p(tool)))
			}
		}
	}

	m := fuzzy.NewMatcher(fuzzy.Options{Threshold: threshold}, projectors...)
	return m.Match(query, tools)
}

func toolProjector(field string) fuzzy.Projector[catalog.Tool] {
	switch field {
	case config.FieldName:
		return func(t catalog.Tool) string { return t.Name }
	case config.FieldDescription:
		return func(t catalog.Tool) string { return t.Description }
	case config.FieldCategory:
		return func(t catalog.Tool) string { return t.Category }
	case config.FieldID:
		return func(t catalog.Tool) string { return t.ID }
	default:
		return nil
	}
}

func favoriteSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func debugEnabled() bool {
	return os.Getenv(debugEnv) == "1"
}

func debugf(format string, a ...interface{}) {
	if debugEnabled() {
		fmt.Fprintf(os.Stderr, "[DEBUG] "+format+"\n", a...)
	}
}

func init() {
	searchCmd.Flags().Float64VarP(&searchThreshold, "threshold", "t", config.DefaultThreshold, "Minimum score (0-100); defaults to search.threshold from config")
	searchCmd.Flags().VarP(&searchFields, "fields", "f", "Comma-separated fields to match: name, description, category, id")
	searchCmd.Flags().VarP(&searchCategory, "category", "c", "Only search tools in this category")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "Maximum number of results (0 = all)")
	searchCmd.Flags().BoolVar(&searchNoPick, "no-pick", false, "Never open the fzf picker")
	rootCmd.AddCommand(searchCmd)
}
