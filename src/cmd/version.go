package cmd

import (
	"github.com/spf13/cobra"

	"github.com/CodingWithCalvin/starkup.cli/src/internal/ui"
)

// Version is set at build time via -ldflags "-X ...cmd.Version=v1.2.3".
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the starkup version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ui.Printf("starkup %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
