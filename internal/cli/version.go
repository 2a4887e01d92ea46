package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/devnesthq/devnest/internal/buildinfo"
	"github.com/devnesthq/devnest/internal/catalog"
	"github.com/devnesthq/devnest/internal/theme"
	"github.com/devnesthq/devnest/internal/ui"
)

// versionInfo describes the running binary and the content compiled into it.
type versionInfo struct {
	Version  string      `json:"version"`
	Commit   string      `json:"commit,omitempty"`
	Built    string      `json:"built,omitempty"`
	Dirty    bool        `json:"dirty"`
	Go       string      `json:"go"`
	Platform string      `json:"platform"`
	Bundled  bundledInfo `json:"bundled"`
}

type bundledInfo struct {
	Tools      int `json:"tools"`
	Themes     int `json:"themes"`
	Tips       int `json:"tips"`
	DocsTopics int `json:"docs_topics"`
}

const shortCommitLen = 12

var readBuildInfo = debug.ReadBuildInfo

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the devnest version and bundled content",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := currentVersionInfo()
		outputResult(info, nil, nil, func() {
			line := "devnest " + ui.AccentBold.Render(info.Version)
			if info.Commit != "" {
				line += " " + ui.Hint(info.Commit)
				if info.Dirty {
					line += ui.Hint("+dirty")
				}
			}
			fmt.Println(line)
			if info.Built != "" {
				fmt.Printf("built:    %s\n", info.Built)
			}
			fmt.Printf("runtime:  %s %s\n", info.Go, info.Platform)
			fmt.Printf("bundled:  %d tools, %d themes, %d tips, %d docs topics\n",
				info.Bundled.Tools, info.Bundled.Themes, info.Bundled.Tips, info.Bundled.DocsTopics)
		})
		return nil
	},
}

// currentVersionInfo prefers values stamped with -ldflags and fills the gaps
// from the module build info.
func currentVersionInfo() versionInfo {
	info := versionInfo{
		Version:  buildinfo.Version,
		Commit:   buildinfo.Commit,
		Built:    buildinfo.Date,
		Go:       runtime.Version(),
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
		Bundled:  currentBundledInfo(),
	}

	if bi, ok := readBuildInfo(); ok && bi != nil {
		vcs := make(map[string]string, len(bi.Settings))
		for _, s := range bi.Settings {
			vcs[s.Key] = s.Value
		}
		if info.Version == "" && bi.Main.Version != "(devel)" {
			info.Version = bi.Main.Version
		}
		if info.Commit == "" {
			info.Commit = vcs["vcs.revision"]
		}
		if info.Built == "" {
			info.Built = vcs["vcs.time"]
		}
		info.Dirty = vcs["vcs.modified"] == "true"
		if bi.GoVersion != "" {
			info.Go = bi.GoVersion
		}
	}

	if info.Version == "" {
		info.Version = "devel"
	}
	if len(info.Commit) > shortCommitLen {
		info.Commit = info.Commit[:shortCommitLen]
	}
	return info
}

func currentBundledInfo() bundledInfo {
	b := bundledInfo{
		Tools:  len(catalog.Default().All()),
		Themes: len(theme.All()),
		Tips:   len(catalog.Tips()),
	}
	if sections, err := loadDocsSections(docsFS); err == nil {
		for _, s := range sections {
			b.DocsTopics += len(s.Topics)
		}
	}
	return b
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
