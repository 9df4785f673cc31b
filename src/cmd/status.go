package cmd

import (
	"github.com/spf13/cobra"

	"github.com/CodingWithCalvin/starkup.cli/src/internal/asdf"
	"github.com/CodingWithCalvin/starkup.cli/src/internal/manifest"
	"github.com/CodingWithCalvin/starkup.cli/src/internal/path"
	"github.com/CodingWithCalvin/starkup.cli/src/internal/ui"
	"github.com/CodingWithCalvin/starkup.cli/src/internal/version"
)

// Status indicators
const (
	matchIndicator    = "✓"
	mismatchIndicator = "✗"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show pinned tools and the versions on PATH",
	Long: `List each pinned tool with the version its binary reports.

The asdf bin and shims directories are searched even if your current shell
has not picked them up yet.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, m, err := loadEnvironment()
		if err != nil {
			return err
		}
		onPath := path.Contains(cfg.Path, cfg.ShimsDir())
		cfg.Path = path.Extend(cfg.Path, cfg.BinDir(), cfg.ShimsDir())

		client := asdf.NewClient(newRunner(logger), cfg)
		installed, err := client.Installed()
		if err != nil {
			return err
		}

		ui.Header("Toolchain:")
		switch {
		case installed && onPath:
			ui.Printf("  %s %s %s\n", ui.Highlight("asdf"), m.Asdf.Version, ui.Dim(cfg.DisplayPath(cfg.AsdfDir)))
		case installed:
			ui.Printf("  %s %s %s\n", ui.Highlight("asdf"), m.Asdf.Version, ui.Dim(cfg.DisplayPath(cfg.AsdfDir)+", shims not on PATH in this shell"))
		default:
			ui.Printf("  %s %s %s\n", ui.Highlight("asdf"), m.Asdf.Version, ui.Dim("not installed"))
		}

		ctx := commandContext(cmd)
		for _, tool := range m.Tools {
			reported, err := client.ToolVersion(ctx, tool.Binary)
			if err != nil {
				reported = ""
			}
			printToolLine(tool, reported)
		}
		return nil
	},
}

// printToolLine prints one pinned tool. A tool reporting its pinned version
// is shown in green with a check; anything else gets a cross and what was found.
func printToolLine(tool manifest.Tool, reported string) {
	found := version.Extract(reported)

	switch {
	case reported == "":
		ui.Printf("  %s %s %s %s\n", ui.Highlight(tool.DisplayName()), tool.Version, mismatchIndicator, ui.Dim("not found"))
	case version.Matches(reported, tool.Version):
		ui.Printf("  %s %s %s\n", ui.Highlight(tool.DisplayName()), ui.ActiveVersion(tool.Version), matchIndicator)
	default:
		ui.Printf("  %s %s %s %s\n", ui.Highlight(tool.DisplayName()), tool.Version, mismatchIndicator, ui.Dim("found "+found))
	}
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
