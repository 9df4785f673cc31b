package cmd

import (
	"github.com/spf13/cobra"

	"github.com/CodingWithCalvin/starkup.cli/src/internal/bootstrap"
	"github.com/CodingWithCalvin/starkup.cli/src/internal/config"
	"github.com/CodingWithCalvin/starkup.cli/src/internal/path"
	"github.com/CodingWithCalvin/starkup.cli/src/internal/runner"
	"github.com/CodingWithCalvin/starkup.cli/src/internal/ui"
)

var (
	installDryRun   bool
	installRCFile   string
	installProgress bool
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install asdf and the pinned toolchain",
	Long: `Install asdf and the pinned Starknet toolchain.

This command:
  - Clones asdf into ~/.asdf if it is not there yet
  - Adds ~/.asdf/bin and ~/.asdf/shims to PATH, persisting the change to
    $GITHUB_ENV when CI is set, or to your shell startup file otherwise
  - Adds, installs and selects each pinned tool, then prints its version

Any failing command stops the run; starkup exits with that command's status.

Example:
  starkup install
  starkup install --dry-run
  starkup install --rc-file ~/.zshrc`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, m, err := loadEnvironment()
		if err != nil {
			return err
		}
		if installRCFile != "" {
			cfg.RCFile = config.ExpandHome(installRCFile, cfg.Home)
		}

		run := newRunner(logger)
		if installDryRun {
			run = &runner.DryRun{Out: ui.Output()}
		}

		kind := ui.ReporterAuto
		if installProgress {
			kind = ui.ReporterProgress
		}

		b := bootstrap.New(bootstrap.Options{
			Config:   cfg,
			Manifest: m,
			Runner:   run,
			Reporter: ui.NewReporter(kind, bootstrap.StepCount(m)),
			Out:      ui.Output(),
			Log:      logger,
			DryRun:   installDryRun,
		})

		if installDryRun {
			ui.Header("Dry run: no files will be changed")
		} else {
			ui.Header("Bootstrapping the Starknet toolchain...")
		}

		result, err := b.Run(commandContext(cmd))
		if err != nil {
			return err
		}

		ui.Success("Toolchain ready!")
		if result.Persisted == path.OutcomeProfilePatched && !installDryRun {
			ui.Info("\nNext steps:")
			ui.Info("  1. Restart your terminal, or run: . %s", ui.Highlight(cfg.RCFile))
			ui.Info("  2. Run: scarb --version")
		}
		return nil
	},
}

func init() {
	installCmd.Flags().BoolVarP(&installDryRun, "dry-run", "n", false, "Print the commands instead of running them")
	installCmd.Flags().StringVar(&installRCFile, "rc-file", "", "Shell startup file to patch (default ~/.bashrc, or $STARKUP_RC_FILE)")
	installCmd.Flags().BoolVar(&installProgress, "progress", false, "Show a single progress bar instead of per-step output")
	rootCmd.AddCommand(installCmd)
}
