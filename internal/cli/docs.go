package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	builtindocs "github.com/devnesthq/devnest/docs"
	"github.com/devnesthq/devnest/internal/fuzzy"
	"github.com/devnesthq/devnest/internal/slugs"
	"github.com/devnesthq/devnest/internal/ui"
)

const docsIndexPath = "index.yaml"

var (
	docsSearchLimit   int
	docsSearchSection string

	docsFS             fs.FS = builtindocs.FS
	docsDisplayContext       = ui.NewDisplayContext
	docsMarkdownRender       = ui.RenderMarkdown
)

type docsSectionView struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	TopicCount int    `json:"topic_count"`
}

type docsTopicView struct {
	Section string `json:"section"`
	ID      string `json:"id"`
	Title   string `json:"title"`
	Path    string `json:"path"`
}

type docsSearchMatchView struct {
	Section string `json:"section"`
	Topic   string `json:"topic"`
	Title   string `json:"title"`
	Line    int    `json:"line"`
	Snippet string `json:"snippet"`
}

// docsSection is one entry of index.yaml with its topics in declared order.
type docsSection struct {
	ID     string
	Title  string
	Topics []docsTopicView
}

var docsCmd = &cobra.Command{
	Use:   "docs [section] [topic]",
	Short: "Read the bundled guides and reference pages",
	Long: `Read documentation bundled into the devnest binary.

With no arguments in a terminal with fzf installed, 'devnest docs' opens a
topic picker. Topic names are matched fuzzily, so 'devnest docs guide pal'
opens the palette guide. For command usage, use 'devnest help <command>'.

Examples:
  devnest docs
  devnest docs guide
  devnest docs reference config
  devnest docs search threshold`,
	Args: cobra.RangeArgs(0, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sections, err := loadDocsSections(docsFS)
		if err != nil {
			return handleError(ErrInternal, err, "Rebuild devnest so bundled docs are available")
		}

		if len(args) == 0 {
			if canUseFZFInteractive() {
				topic, ok, err := pickDocsTopicWithFZF(sections)
				if err != nil {
					return handleError(ErrInternal, err, "Run 'devnest docs list' for non-interactive output")
				}
				if !ok {
					return nil
				}
				return outputDocsTopicContent(topic)
			}
			return outputDocsSections(sections)
		}

		section, ok := findDocsSection(sections, args[0])
		if !ok {
			return docsSectionNotFound(args, sections)
		}
		if len(args) == 1 {
			return outputDocsTopics(section)
		}

		topic, ok := findDocsTopic(section.Topics, args[1])
		if !ok {
			ids := make([]string, len(section.Topics))
			for i, t := range section.Topics {
				ids[i] = t.ID
			}
			return handleErrorMsg(ErrInvalidInput,
				fmt.Sprintf("unknown topic %q in section %q", args[1], section.ID),
				fmt.Sprintf("Available: %s", strings.Join(ids, ", ")))
		}
		return outputDocsTopicContent(topic)
	},
}

var docsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List docs sections",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sections, err := loadDocsSections(docsFS)
		if err != nil {
			return handleError(ErrInternal, err, "Rebuild devnest so bundled docs are available")
		}
		return outputDocsSections(sections)
	},
}

var docsSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the bundled docs for a phrase",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.TrimSpace(strings.Join(args, " "))
		if query == "" {
			return handleErrorMsg(ErrMissingArgument, "specify a search query", "Usage: devnest docs search <query>")
		}
		if docsSearchLimit < 1 {
			return handleErrorMsg(ErrInvalidInput, "--limit must be >= 1", "")
		}

		sections, err := loadDocsSections(docsFS)
		if err != nil {
			return handleError(ErrInternal, err, "")
		}
		if docsSearchSection != "" {
			section, ok := findDocsSection(sections, docsSearchSection)
			if !ok {
				return docsSectionNotFound([]string{docsSearchSection}, sections)
			}
			sections = []docsSection{section}
		}

		matches, err := searchDocs(docsFS, sections, query, docsSearchLimit)
		if err != nil {
			return handleError(ErrFileReadError, err, "")
		}

		outputResult(map[string]interface{}{
			"query":   query,
			"matches": matches,
		}, nil, &Meta{Count: len(matches)}, func() {
			if len(matches) == 0 {
				fmt.Printf("No docs matched %q.\n", query)
				return
			}
			for _, m := range matches {
				fmt.Printf("%s %s\n", ui.ToolID(fmt.Sprintf("%s/%s:%d", m.Section, m.Topic, m.Line)), m.Snippet)
			}
		})
		return nil
	},
}

func outputDocsSections(sections []docsSection) error {
	views := make([]docsSectionView, len(sections))
	for i, s := range sections {
		views[i] = docsSectionView{ID: s.ID, Title: s.Title, TopicCount: len(s.Topics)}
	}

	outputResult(map[string]interface{}{"sections": views}, nil, &Meta{Count: len(views)}, func() {
		tbl := ui.NewTable(3)
		for _, v := range views {
			tbl.AddRow("devnest docs "+v.ID, v.Title, ui.Hint(ui.Count(v.TopicCount, "topic", "topics")))
		}
		fmt.Print(tbl.String())
		fmt.Println()
		fmt.Println(ui.Hint("Search with 'devnest docs search <query>'; command usage is in 'devnest help <command>'."))
	})
	return nil
}

func outputDocsTopics(section docsSection) error {
	outputResult(map[string]interface{}{
		"section": section.ID,
		"title":   section.Title,
		"topics":  section.Topics,
	}, nil, &Meta{Count: len(section.Topics)}, func() {
		fmt.Println(ui.Header(section.Title))
		tbl := ui.NewTable(2)
		for _, t := range section.Topics {
			tbl.AddRow(fmt.Sprintf("devnest docs %s %s", section.ID, t.ID), t.Title)
		}
		fmt.Print(tbl.String())
	})
	return nil
}

func outputDocsTopicContent(topic docsTopicView) error {
	content, err := fs.ReadFile(docsFS, topic.Path)
	if err != nil {
		return handleError(ErrFileReadError, err, "")
	}

	if isJSONOutput() {
		outputSuccess(map[string]interface{}{
			"section": topic.Section,
			"topic":   topic.ID,
			"title":   topic.Title,
			"path":    topic.Path,
			"content": string(content),
		}, nil)
		return nil
	}

	rendered := string(content)
	display := docsDisplayContext()
	if display.IsTTY {
		if out, renderErr := docsMarkdownRender(rendered, display.TermWidth); renderErr == nil {
			rendered = out
		}
	}
	printOutput(rendered)
	return nil
}

// pickDocsTopicWithFZF offers every topic of every section in one list.
func pickDocsTopicWithFZF(sections []docsSection) (docsTopicView, bool, error) {
	var lines []string
	byKey := make(map[string]docsTopicView)
	for _, s := range sections {
		for _, t := range s.Topics {
			key := s.ID + "/" + t.ID
			byKey[key] = t
			lines = append(lines, fmt.Sprintf("%s\t%s\t%s", key, s.Title, t.Title))
		}
	}

	selectedLine, selected, err := fzfRun(lines, fzfPickerOptions{
		Prompt:    "docs> ",
		Header:    "Select a topic (Esc to cancel)",
		Delimiter: "\t",
		WithNth:   "2..",
	})
	if err != nil || !selected {
		return docsTopicView{}, false, err
	}
	key, _, _ := strings.Cut(selectedLine, "\t")
	topic, ok := byKey[strings.TrimSpace(key)]
	if !ok {
		return docsTopicView{}, false, fmt.Errorf("selected unknown docs topic %q", key)
	}
	return topic, true, nil
}

func docsSectionNotFound(args []string, sections []docsSection) error {
	if cmdPath, ok := resolveCLICommandPath(args); ok {
		return handleErrorMsg(ErrInvalidInput,
			fmt.Sprintf("%q is a command, not a docs section", cmdPath),
			fmt.Sprintf("Use 'devnest help %s' for command documentation", cmdPath))
	}

	return handleErrorMsg(ErrInvalidInput,
		fmt.Sprintf("unknown docs section: %s", args[0]),
		fmt.Sprintf("Available sections: %s", strings.Join(sortedDocsSectionIDs(sections), ", ")))
}

// loadDocsSections reads index.yaml. Sections and topics keep the order they
// are declared in, which is why the index is walked as a yaml.Node.
func loadDocsSections(fsys fs.FS) ([]docsSection, error) {
	raw, err := fs.ReadFile(fsys, docsIndexPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("docs index not found: %s", docsIndexPath)
		}
		return nil, fmt.Errorf("read docs index: %w", err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(raw, &root); err != nil {
		return nil, fmt.Errorf("parse docs index: %w", err)
	}
	if len(root.Content) == 0 || root.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parse docs index: top-level YAML must be a mapping")
	}

	var sectionsNode *yaml.Node
	top := root.Content[0]
	for i := 0; i+1 < len(top.Content); i += 2 {
		if key := top.Content[i].Value; key == "sections" {
			sectionsNode = top.Content[i+1]
		} else {
			return nil, fmt.Errorf("parse docs index: unknown top-level field %q", key)
		}
	}
	if sectionsNode == nil || sectionsNode.Kind != yaml.MappingNode || len(sectionsNode.Content) == 0 {
		return nil, fmt.Errorf("docs index has no sections")
	}

	sections := make([]docsSection, 0, len(sectionsNode.Content)/2)
	for i := 0; i+1 < len(sectionsNode.Content); i += 2 {
		section, err := decodeDocsSection(fsys, sectionsNode.Content[i].Value, sectionsNode.Content[i+1])
		if err != nil {
			return nil, err
		}
		sections = append(sections, section)
	}
	return sections, nil
}

func decodeDocsSection(fsys fs.FS, id string, node *yaml.Node) (docsSection, error) {
	if slugs.Make(id) != id {
		return docsSection{}, fmt.Errorf("section id %q must be a slug", id)
	}

	var meta struct {
		Title  string    `yaml:"title"`
		Topics yaml.Node `yaml:"topics"`
	}
	if err := node.Decode(&meta); err != nil {
		return docsSection{}, fmt.Errorf("section %q: %w", id, err)
	}
	if meta.Topics.Kind != yaml.MappingNode || len(meta.Topics.Content) == 0 {
		return docsSection{}, fmt.Errorf("section %q has no topics", id)
	}

	section := docsSection{ID: id, Title: strings.TrimSpace(meta.Title)}
	if section.Title == "" {
		section.Title = titleFromSlug(id)
	}

	for i := 0; i+1 < len(meta.Topics.Content); i += 2 {
		topicID := meta.Topics.Content[i].Value
		if slugs.Make(topicID) != topicID {
			return docsSection{}, fmt.Errorf("topic id %q in section %q must be a slug", topicID, id)
		}

		var topicMeta struct {
			Title string `yaml:"title"`
			Path  string `yaml:"path"`
		}
		if err := meta.Topics.Content[i+1].Decode(&topicMeta); err != nil {
			return docsSection{}, fmt.Errorf("topic %q in section %q: %w", topicID, id, err)
		}

		relPath := path.Clean(strings.TrimSpace(topicMeta.Path))
		if relPath == "." || path.IsAbs(relPath) || strings.HasPrefix(relPath, "..") || path.Ext(relPath) != ".md" {
			return docsSection{}, fmt.Errorf("topic %q in section %q: path %q must be a relative .md file", topicID, id, topicMeta.Path)
		}
		fsPath := path.Join(id, relPath)
		if _, err := fs.Stat(fsys, fsPath); err != nil {
			return docsSection{}, fmt.Errorf("topic %q in section %q points to missing file %q", topicID, id, fsPath)
		}

		title := strings.TrimSpace(topicMeta.Title)
		if title == "" {
			title = extractDocsTitle(fsys, fsPath, topicID)
		}
		section.Topics = append(section.Topics, docsTopicView{
			Section: id,
			ID:      topicID,
			Title:   title,
			Path:    fsPath,
		})
	}
	return section, nil
}

func findDocsSection(sections []docsSection, raw string) (docsSection, bool) {
	needle := slugs.Make(raw)
	for _, s := range sections {
		if s.ID == needle {
			return s, true
		}
	}
	return docsSection{}, false
}

// findDocsTopic matches a topic id first, then the best fuzzy match on ids
// and titles.
func findDocsTopic(topics []docsTopicView, raw string) (docsTopicView, bool) {
	needle := slugs.Make(strings.TrimSuffix(strings.TrimSpace(raw), ".md"))
	for _, t := range topics {
		if t.ID == needle {
			return t, true
		}
	}
	if strings.TrimSpace(raw) == "" {
		return docsTopicView{}, false
	}

	results := fuzzy.SearchMultiField(raw, topics, []fuzzy.Projector[docsTopicView]{
		func(t docsTopicView) string { return t.ID },
		func(t docsTopicView) string { return t.Title },
	}, fuzzy.DefaultThreshold)
	if len(results) == 0 {
		return docsTopicView{}, false
	}
	return results[0].Item, true
}

// searchDocs returns lines containing query, case-insensitively, in section
// and topic order.
func searchDocs(fsys fs.FS, sections []docsSection, query string, limit int) ([]docsSearchMatchView, error) {
	queryLower := strings.ToLower(query)
	matches := make([]docsSearchMatchView, 0)
	for _, s := range sections {
		for _, t := range s.Topics {
			content, err := fs.ReadFile(fsys, t.Path)
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", t.Path, err)
			}
			for i, line := range strings.Split(string(content), "\n") {
				if !strings.Contains(strings.ToLower(line), queryLower) {
					continue
				}
				matches = append(matches, docsSearchMatchView{
					Section: s.ID,
					Topic:   t.ID,
					Title:   t.Title,
					Line:    i + 1,
					Snippet: ui.TruncateWithEllipsis(strings.TrimSpace(line), 120),
				})
				if len(matches) >= limit {
					return matches, nil
				}
			}
		}
	}
	return matches, nil
}

func extractDocsTitle(fsys fs.FS, fsPath, fallback string) string {
	f, err := fsys.Open(fsPath)
	if err != nil {
		return titleFromSlug(fallback)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if title, ok := strings.CutPrefix(line, "# "); ok && strings.TrimSpace(title) != "" {
			return strings.TrimSpace(title)
		}
	}
	return titleFromSlug(fallback)
}

func titleFromSlug(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '-' || r == '_' })
	for i, part := range parts {
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, " ")
}

// resolveCLICommandPath finds the longest prefix of args naming a command,
// so 'devnest docs json format' can point at 'devnest help json format'.
func resolveCLICommandPath(args []string) (string, bool) {
	for i := len(args); i >= 1; i-- {
		cmd, rest, err := rootCmd.Find(args[:i])
		if err != nil || cmd == rootCmd || cmd.Name() == "docs" || len(rest) > 0 {
			continue
		}
		return strings.Join(args[:i], " "), true
	}
	return "", false
}

func init() {
	docsSearchCmd.Flags().IntVarP(&docsSearchLimit, "limit", "n", 20, "Maximum number of matches")
	docsSearchCmd.Flags().StringVarP(&docsSearchSection, "section", "s", "", "Only search one section")

	docsCmd.AddCommand(docsListCmd)
	docsCmd.AddCommand(docsSearchCmd)
	rootCmd.AddCommand(docsCmd)
}

func sortedDocsSectionIDs(sections []docsSection) []string {
	ids := make([]string, len(sections))
	for i, s := range sections {
		ids[i] = s.ID
	}
	sort.Strings(ids)
	return ids
}
