package cmd

import (
	"github.com/spf13/cobra"

	"github.com/CodingWithCalvin/starkup.cli/src/internal/bootstrap"
	"github.com/CodingWithCalvin/starkup.cli/src/internal/runner"
	"github.com/CodingWithCalvin/starkup.cli/src/internal/ui"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show what install would do",
	Long: `Show the commands and file changes 'starkup install' would make from the
current state, without running anything.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, m, err := loadEnvironment()
		if err != nil {
			return err
		}

		b := bootstrap.New(bootstrap.Options{
			Config:   cfg,
			Manifest: m,
			Runner:   &runner.DryRun{},
			Log:      logger,
		})

		cmds, err := b.Plan()
		if err != nil {
			return err
		}
		_, persist, err := b.PlannedOutcome()
		if err != nil {
			return err
		}

		ui.Header("Commands:")
		for _, c := range cmds {
			ui.Printf("  $ %s\n", c)
		}

		ui.Header("\nPATH:")
		ui.Printf("  %s\n", ui.Dim(b.PlannedPath()))
		ui.Printf("  %s\n", persist)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
}
