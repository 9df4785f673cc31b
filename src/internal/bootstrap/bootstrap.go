// Package bootstrap installs asdf and the pinned toolchain: clone asdf if it
// is missing, put its directories on PATH, persist that PATH for later
// shells, then add, install and select each pinned tool. Steps run in order
// and the first failure ends the run.
package bootstrap

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/CodingWithCalvin/starkup.cli/src/internal/asdf"
	"github.com/CodingWithCalvin/starkup.cli/src/internal/config"
	"github.com/CodingWithCalvin/starkup.cli/src/internal/logging"
	"github.com/CodingWithCalvin/starkup.cli/src/internal/manifest"
	"github.com/CodingWithCalvin/starkup.cli/src/internal/path"
	"github.com/CodingWithCalvin/starkup.cli/src/internal/runner"
	"github.com/CodingWithCalvin/starkup.cli/src/internal/ui"
	"github.com/CodingWithCalvin/starkup.cli/src/internal/version"
)

// Options configures a Bootstrapper.
type Options struct {
	Config   *config.Config
	Manifest *manifest.Manifest
	Runner   runner.Runner
	// Reporter receives step events; nil uses ui.PlainReporter
	Reporter ui.Reporter
	// Out receives each tool's --version output and completion line
	Out io.Writer
	Log *zap.Logger
	// DryRun skips file writes; pair it with runner.DryRun
	DryRun bool
}

// ToolResult describes one installed tool.
type ToolResult struct {
	Tool manifest.Tool
	// Version is the installed version after resolving a partial pin
	Version string
	// Reported is the trimmed --version output
	Reported string
	// Matched is true when Reported contains Version
	Matched bool
}

// Result summarizes a run. On failure it holds what completed before the
// failing step.
type Result struct {
	Cloned    bool
	Path      string
	Persisted path.Outcome
	Tools     []ToolResult
}

// Bootstrapper runs the bootstrap sequence.
type Bootstrapper struct {
	cfg      *config.Config
	manifest *manifest.Manifest
	run      runner.Runner
	asdf     *asdf.Client
	reporter ui.Reporter
	out      io.Writer
	log      *zap.Logger
	dryRun   bool
}

// New creates a Bootstrapper. Config, Manifest and Runner are required.
func New(opts Options) *Bootstrapper {
	reporter := opts.Reporter
	if reporter == nil {
		reporter = ui.PlainReporter{}
	}
	out := opts.Out
	if out == nil {
		out = io.Discard
	}

	return &Bootstrapper{
		cfg:      opts.Config,
		manifest: opts.Manifest,
		run:      opts.Runner,
		asdf:     asdf.NewClient(opts.Runner, opts.Config),
		reporter: reporter,
		out:      out,
		log:      logging.OrNop(opts.Log),
		dryRun:   opts.DryRun,
	}
}

// StepCount is the number of reporter steps a run over m goes through:
// asdf, PATH, then one per tool.
func StepCount(m *manifest.Manifest) int {
	return 2 + len(m.Tools)
}

// Steps is StepCount for this Bootstrapper's manifest.
func (b *Bootstrapper) Steps() int {
	return StepCount(b.manifest)
}

// Run executes the full sequence.
func (b *Bootstrapper) Run(ctx context.Context) (*Result, error) {
	result := &Result{}

	cloned, err := b.ensureAsdf(ctx)
	if err != nil {
		return result, err
	}
	result.Cloned = cloned

	b.cfg.Path = path.Extend(b.cfg.Path, b.cfg.BinDir(), b.cfg.ShimsDir())
	result.Path = b.cfg.Path
	b.log.Debug("extended PATH", zap.String("path", b.cfg.Path))

	outcome, err := b.persistPath()
	if err != nil {
		return result, err
	}
	result.Persisted = outcome

	for _, tool := range b.manifest.Tools {
		tr, err := b.installTool(ctx, tool)
		if err != nil {
			return result, err
		}
		result.Tools = append(result.Tools, tr)
	}

	return result, nil
}

func (b *Bootstrapper) ensureAsdf(ctx context.Context) (bool, error) {
	pin := b.manifest.Asdf
	step := fmt.Sprintf("Installing asdf %s", pin.Version)
	b.reporter.Start(step)

	cloned, err := b.asdf.EnsureInstalled(ctx, pin)
	if err != nil {
		return false, b.fail(KindClone, step, err)
	}

	if cloned {
		b.reporter.Done(fmt.Sprintf("Cloned asdf %s into %s", pin.Version, b.cfg.DisplayPath(b.cfg.AsdfDir)))
	} else {
		b.reporter.Done(fmt.Sprintf("asdf already present at %s", b.cfg.DisplayPath(b.cfg.AsdfDir)))
	}
	return cloned, nil
}

func (b *Bootstrapper) persistPath() (path.Outcome, error) {
	step := "Configuring PATH"
	b.reporter.Start(step)

	if b.dryRun {
		outcome, err := b.plannedOutcome()
		if err != nil {
			return "", b.fail(KindShellConfig, step, err)
		}
		b.reporter.Done(b.describeOutcome(outcome) + " (dry run)")
		return outcome, nil
	}

	outcome, err := path.Persist(b.cfg, b.cfg.Path)
	if err != nil {
		return "", b.fail(KindShellConfig, step, err)
	}
	b.reporter.Done(b.describeOutcome(outcome))
	return outcome, nil
}

// plannedOutcome computes what Persist would do without writing anything.
func (b *Bootstrapper) plannedOutcome() (path.Outcome, error) {
	if b.cfg.CI {
		if b.cfg.CIEnvFile == "" {
			return "", path.ErrNoCIEnvFile
		}
		return path.OutcomeCIEnv, nil
	}
	found, err := path.HasInitReference(b.cfg.RCFile)
	if err != nil {
		return "", err
	}
	if found {
		return path.OutcomeProfileUnchanged, nil
	}
	return path.OutcomeProfilePatched, nil
}

func (b *Bootstrapper) describeOutcome(outcome path.Outcome) string {
	switch outcome {
	case path.OutcomeCIEnv:
		return fmt.Sprintf("Added PATH to %s", b.cfg.CIEnvFile)
	case path.OutcomeProfilePatched:
		return fmt.Sprintf("Added asdf to %s", b.cfg.DisplayPath(b.cfg.RCFile))
	default:
		return fmt.Sprintf("%s already sources asdf", b.cfg.DisplayPath(b.cfg.RCFile))
	}
}

func (b *Bootstrapper) installTool(ctx context.Context, tool manifest.Tool) (ToolResult, error) {
	name := tool.DisplayName()
	step := fmt.Sprintf("Installing %s %s", name, tool.Version)
	b.reporter.Start(step)

	if err := b.asdf.PluginAdd(ctx, tool.Plugin); err != nil {
		return ToolResult{}, b.fail(KindToolInstall, step, err)
	}

	ver, err := b.resolveVersion(ctx, tool)
	if err != nil {
		return ToolResult{}, b.fail(KindToolInstall, step, err)
	}

	if err := b.asdf.Install(ctx, tool.Plugin, ver); err != nil {
		return ToolResult{}, b.fail(KindToolInstall, step, err)
	}
	if err := b.asdf.Global(ctx, tool.Plugin, ver); err != nil {
		return ToolResult{}, b.fail(KindToolInstall, step, err)
	}

	reported, err := b.asdf.ToolVersion(ctx, tool.Binary)
	if err != nil {
		return ToolResult{}, b.fail(KindVersionQuery, step, err)
	}
	b.reporter.Done(fmt.Sprintf("Installed %s %s", name, ver))

	tr := ToolResult{Tool: tool, Version: ver, Reported: reported}
	if reported != "" {
		fmt.Fprintln(b.out, reported)
		tr.Matched = version.Matches(reported, ver)
		if !tr.Matched {
			ui.Warning("%s reports %q, expected version %s", tool.Binary, firstLine(reported), ver)
		}
	}
	fmt.Fprintf(b.out, "Finished installing %s\n", name)

	return tr, nil
}

// resolveVersion turns a partial pin such as "2.8" into the newest matching
// version the plugin offers. Full pins are returned untouched.
func (b *Bootstrapper) resolveVersion(ctx context.Context, tool manifest.Tool) (string, error) {
	if !version.IsPartialVersion(tool.Version) {
		return normalizePin(tool.Version), nil
	}

	available, err := b.asdf.ListAll(ctx, tool.Plugin)
	if err != nil {
		return "", err
	}
	if b.dryRun && len(available) == 0 {
		return tool.Version, nil
	}

	resolved, err := version.ResolvePartialVersion(tool.Version, available)
	if err != nil {
		return "", fmt.Errorf("%s: %w", tool.Plugin, err)
	}
	b.log.Debug("resolved partial version",
		zap.String("plugin", tool.Plugin),
		zap.String("pin", tool.Version),
		zap.String("version", resolved),
	)
	return resolved, nil
}

func (b *Bootstrapper) fail(kind Kind, step string, err error) error {
	b.reporter.Fail(step, err)
	b.log.Debug("step failed", zap.String("kind", string(kind)), zap.String("step", step), zap.Error(err))
	return &StepError{Kind: kind, Step: step, Err: err}
}

// normalizePin drops the "v" prefix asdf plugins do not use in version names.
func normalizePin(v string) string {
	return strings.TrimPrefix(v, "v")
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
