package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/CodingWithCalvin/starkup.cli/src/internal/bootstrap"
	"github.com/CodingWithCalvin/starkup.cli/src/internal/config"
	"github.com/CodingWithCalvin/starkup.cli/src/internal/constants"
	"github.com/CodingWithCalvin/starkup.cli/src/internal/logging"
	"github.com/CodingWithCalvin/starkup.cli/src/internal/manifest"
	"github.com/CodingWithCalvin/starkup.cli/src/internal/runner"
	"github.com/CodingWithCalvin/starkup.cli/src/internal/ui"
)

var (
	configFile string
	verbose    bool
	noColor    bool

	logger *zap.Logger
)

// Seams replaced by tests.
var (
	getenv    = os.Getenv
	newRunner = func(log *zap.Logger) runner.Runner {
		return runner.NewExec(os.Stderr, log)
	}
)

var rootCmd = &cobra.Command{
	Use:   "starkup",
	Short: "Bootstrap asdf and the Starknet toolchain",
	Long: `starkup installs the asdf version manager and pins the Starknet toolchain
(Scarb and Starknet Foundry) through it.

It clones asdf into ~/.asdf when missing, adds asdf to your PATH (your
~/.bashrc, or $GITHUB_ENV under CI), then adds, installs and selects each
pinned tool.

Example:
  starkup install
  starkup plan
  starkup doctor`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if noColor {
			ui.DisableColor()
		}

		var err error
		logger, err = logging.New(verbose)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute runs the CLI and exits with the failing command's status.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		// step failures were already shown by the reporter
		var stepErr *bootstrap.StepError
		if !errors.As(err, &stepErr) {
			ui.Error("%v", err)
		}
		os.Exit(exitCode(err))
	}
}

// exitCode maps err to a process exit status: the failing external
// command's status when there is one, otherwise 1.
func exitCode(err error) int {
	if code, ok := runner.ExitCode(err); ok && code > 0 && code < 256 {
		return code
	}
	return 1
}

// commandContext returns the command's context, or Background when the
// command was invoked without one (as in tests).
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// loadEnvironment reads the environment and the toolchain manifest.
func loadEnvironment() (*config.Config, *manifest.Manifest, error) {
	cfg, err := config.Load(getenv)
	if err != nil {
		return nil, nil, err
	}

	path := configFile
	if path == "" {
		path = getenv(constants.EnvConfig)
	}
	if path == "" {
		return cfg, manifest.Default().Clone(), nil
	}

	m, err := manifest.Load(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, m, nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Toolchain manifest overriding the pinned versions (or $"+constants.EnvConfig+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every command starkup runs")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
}
