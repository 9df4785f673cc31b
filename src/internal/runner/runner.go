// Package runner executes external commands. Bootstrap steps depend on the
// Runner interface so tests can assert on the exact command sequence.
package runner

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/CodingWithCalvin/starkup.cli/src/internal/constants"
)

// Command is a single external process invocation.
type Command struct {
	Name string
	Args []string
	// Env is the full child environment; nil inherits the current process's
	Env []string
	Dir string
}

// New builds a Command with the given environment.
func New(env []string, name string, args ...string) Command {
	return Command{Name: name, Args: args, Env: env}
}

// String renders the command as it would be typed in a shell.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, quote(c.Name))
	for _, a := range c.Args {
		parts = append(parts, quote(a))
	}
	return strings.Join(parts, " ")
}

// PathValue returns the PATH the command will be resolved against: the last
// PATH entry in Env, or "" when Env does not set one.
func (c Command) PathValue() (string, bool) {
	prefix := constants.EnvPath + "="
	for i := len(c.Env) - 1; i >= 0; i-- {
		if strings.HasPrefix(c.Env[i], prefix) {
			return c.Env[i][len(prefix):], true
		}
	}
	return "", false
}

func quote(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\"'$\\") {
		return fmt.Sprintf("%q", s)
	}
	return s
}

// Runner executes a command and captures its standard output.
type Runner interface {
	Run(ctx context.Context, cmd Command) ([]byte, error)
}

// ExitError reports a command that ran and exited non-zero.
type ExitError struct {
	Cmd Command
	// Code is the exit status; a child killed by signal n reports 128+n
	Code int
	// Signal names the terminating signal, if any
	Signal string
	Stdout string
	Stderr string
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("`%s` exited with status %d", e.Cmd, e.Code)
	if e.Signal != "" {
		msg = fmt.Sprintf("`%s` was terminated (%s)", e.Cmd, e.Signal)
	}
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

// Output is the command's stdout and stderr, for matching known messages.
func (e *ExitError) Output() string {
	return strings.TrimSpace(e.Stdout + "\n" + e.Stderr)
}

// ExitCode extracts the exit status carried by err. A command that could not
// be found maps to 127, as in POSIX shells. ok is false when err carries no
// status.
func ExitCode(err error) (code int, ok bool) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code, true
	}
	if errors.Is(err, exec.ErrNotFound) {
		return 127, true
	}
	return 0, false
}
