// Package asdf drives the asdf version manager through a runner.Runner.
package asdf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/CodingWithCalvin/starkup.cli/src/internal/config"
	"github.com/CodingWithCalvin/starkup.cli/src/internal/constants"
	"github.com/CodingWithCalvin/starkup.cli/src/internal/manifest"
	"github.com/CodingWithCalvin/starkup.cli/src/internal/runner"
)

// alreadyAdded is what `asdf plugin add` prints (exit status 2) when the
// plugin is registered already.
const alreadyAdded = "already added"

// Client runs asdf commands with the environment described by cfg.
// cfg.Path is read on every call, so PATH changes made after construction
// apply to later commands.
type Client struct {
	run runner.Runner
	cfg *config.Config
}

// NewClient creates a Client.
func NewClient(run runner.Runner, cfg *config.Config) *Client {
	return &Client{run: run, cfg: cfg}
}

// CloneCommand is the git invocation that installs asdf.
func (c *Client) CloneCommand(pin manifest.AsdfPin) runner.Command {
	return c.command(constants.GitBinary, "clone", pin.Repo, c.cfg.AsdfDir, "--branch", pin.Version)
}

// Installed reports whether the asdf directory exists.
func (c *Client) Installed() (bool, error) {
	info, err := os.Stat(c.cfg.AsdfDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check %s: %w", c.cfg.AsdfDir, err)
	}
	if !info.IsDir() {
		return false, fmt.Errorf("%s exists but is not a directory", c.cfg.AsdfDir)
	}
	return true, nil
}

// EnsureInstalled clones asdf at the pinned tag unless its directory already
// exists. Returns whether a clone ran.
func (c *Client) EnsureInstalled(ctx context.Context, pin manifest.AsdfPin) (bool, error) {
	installed, err := c.Installed()
	if err != nil {
		return false, err
	}
	if installed {
		return false, nil
	}

	if _, err := c.run.Run(ctx, c.CloneCommand(pin)); err != nil {
		return false, fmt.Errorf("failed to clone asdf %s: %w", pin.Version, err)
	}
	return true, nil
}

// PluginAddCommand is `asdf plugin add <plugin>`.
func (c *Client) PluginAddCommand(plugin string) runner.Command {
	return c.asdf("plugin", "add", plugin)
}

// InstallCommand is `asdf install <plugin> <version>`.
func (c *Client) InstallCommand(plugin, version string) runner.Command {
	return c.asdf("install", plugin, version)
}

// GlobalCommand is `asdf global <plugin> <version>`.
func (c *Client) GlobalCommand(plugin, version string) runner.Command {
	return c.asdf("global", plugin, version)
}

// VersionCommand is `<binary> --version`.
func (c *Client) VersionCommand(binary string) runner.Command {
	return c.command(binary, "--version")
}

// PluginAdd registers a plugin. A plugin that is already registered is not
// an error, so reruns are safe.
func (c *Client) PluginAdd(ctx context.Context, plugin string) error {
	_, err := c.run.Run(ctx, c.PluginAddCommand(plugin))
	if err == nil {
		return nil
	}

	var exitErr *runner.ExitError
	if errors.As(err, &exitErr) && strings.Contains(exitErr.Output(), alreadyAdded) {
		return nil
	}
	return fmt.Errorf("failed to add plugin %s: %w", plugin, err)
}

// Install installs a version of a plugin's tool.
func (c *Client) Install(ctx context.Context, plugin, version string) error {
	if _, err := c.run.Run(ctx, c.InstallCommand(plugin, version)); err != nil {
		return fmt.Errorf("failed to install %s %s: %w", plugin, version, err)
	}
	return nil
}

// Global selects a version as the user-wide default.
func (c *Client) Global(ctx context.Context, plugin, version string) error {
	if _, err := c.run.Run(ctx, c.GlobalCommand(plugin, version)); err != nil {
		return fmt.Errorf("failed to set global %s %s: %w", plugin, version, err)
	}
	return nil
}

// ListAllCommand is `asdf list all <plugin>`.
func (c *Client) ListAllCommand(plugin string) runner.Command {
	return c.asdf("list", "all", plugin)
}

// ListAll returns every version a plugin can install, oldest first as asdf
// prints them.
func (c *Client) ListAll(ctx context.Context, plugin string) ([]string, error) {
	out, err := c.run.Run(ctx, c.ListAllCommand(plugin))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s versions: %w", plugin, err)
	}
	return strings.Fields(string(out)), nil
}

// ToolVersion runs `<binary> --version` and returns its trimmed output.
func (c *Client) ToolVersion(ctx context.Context, binary string) (string, error) {
	out, err := c.run.Run(ctx, c.VersionCommand(binary))
	if err != nil {
		return "", fmt.Errorf("failed to query %s version: %w", binary, err)
	}
	return strings.TrimSpace(string(out)), nil
}

func (c *Client) asdf(args ...string) runner.Command {
	return c.command(constants.AsdfBinary, args...)
}

func (c *Client) command(name string, args ...string) runner.Command {
	return runner.New(c.cfg.Environ(os.Environ()), name, args...)
}
