package bootstrap

import (
	"github.com/CodingWithCalvin/starkup.cli/src/internal/path"
	"github.com/CodingWithCalvin/starkup.cli/src/internal/runner"
	"github.com/CodingWithCalvin/starkup.cli/src/internal/version"
)

// Plan returns the commands Run would execute from the current state,
// without executing anything. A partial pin is shown as written, preceded
// by the `asdf list all` used to resolve it.
func (b *Bootstrapper) Plan() ([]runner.Command, error) {
	var cmds []runner.Command

	installed, err := b.asdf.Installed()
	if err != nil {
		return nil, &StepError{Kind: KindClone, Step: "Checking asdf", Err: err}
	}
	if !installed {
		cmds = append(cmds, b.asdf.CloneCommand(b.manifest.Asdf))
	}

	for _, tool := range b.manifest.Tools {
		ver := normalizePin(tool.Version)
		cmds = append(cmds, b.asdf.PluginAddCommand(tool.Plugin))
		if version.IsPartialVersion(ver) {
			cmds = append(cmds, b.asdf.ListAllCommand(tool.Plugin))
		}
		cmds = append(cmds,
			b.asdf.InstallCommand(tool.Plugin, ver),
			b.asdf.GlobalCommand(tool.Plugin, ver),
			b.asdf.VersionCommand(tool.Binary),
		)
	}

	return cmds, nil
}

// PlannedPath is the PATH value Run would persist.
func (b *Bootstrapper) PlannedPath() string {
	return path.Extend(b.cfg.Path, b.cfg.BinDir(), b.cfg.ShimsDir())
}

// PlannedOutcome reports how Run would persist PATH, without writing.
func (b *Bootstrapper) PlannedOutcome() (path.Outcome, string, error) {
	outcome, err := b.plannedOutcome()
	if err != nil {
		return "", "", &StepError{Kind: KindShellConfig, Step: "Checking shell config", Err: err}
	}
	return outcome, b.describeOutcome(outcome), nil
}
