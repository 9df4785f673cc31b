package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/CodingWithCalvin/starkup.cli/src/internal/constants"
	"github.com/CodingWithCalvin/starkup.cli/src/internal/logging"
)

// waitDelay bounds how long Run waits for the child's output pipes to close
// after the context is cancelled and the child killed.
const waitDelay = 3 * time.Second

// Exec runs commands as real child processes.
type Exec struct {
	// Stderr receives the child's stderr as it is produced; nil discards it
	Stderr io.Writer
	log    *zap.Logger
}

// NewExec creates an Exec runner. stderr may be nil.
func NewExec(stderr io.Writer, log *zap.Logger) *Exec {
	return &Exec{Stderr: stderr, log: logging.OrNop(log)}
}

// Run executes cmd, blocking until it exits, and returns its stdout.
func (e *Exec) Run(ctx context.Context, cmd Command) ([]byte, error) {
	pathValue, ok := cmd.PathValue()
	if !ok {
		pathValue = os.Getenv(constants.EnvPath)
	}

	bin, err := LookPath(cmd.Name, pathValue)
	if err != nil {
		e.log.Debug("command not found", zap.String("cmd", cmd.String()), zap.String("path", pathValue))
		return nil, err
	}

	c := exec.CommandContext(ctx, bin, cmd.Args...)
	c.Env = cmd.Env
	c.Dir = cmd.Dir
	c.WaitDelay = waitDelay
	setupProcessGroup(c)

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	if e.Stderr != nil {
		c.Stderr = io.MultiWriter(&stderr, e.Stderr)
	} else {
		c.Stderr = &stderr
	}

	start := time.Now()
	err = c.Run()
	e.log.Debug("ran command",
		zap.String("cmd", cmd.String()),
		zap.String("bin", bin),
		zap.Duration("took", time.Since(start)),
		zap.Error(err),
	)

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result := &ExitError{
				Cmd:    cmd,
				Code:   exitErr.ExitCode(),
				Stdout: strings.TrimSpace(stdout.String()),
				Stderr: strings.TrimSpace(stderr.String()),
			}
			if code, sig, ok := signalStatus(exitErr.ProcessState); ok {
				result.Code, result.Signal = code, sig
			} else if result.Code < 0 {
				result.Code = 1
			}
			return stdout.Bytes(), result
		}
		return stdout.Bytes(), fmt.Errorf("failed to run `%s`: %w", cmd, err)
	}

	return stdout.Bytes(), nil
}

// LookPath resolves name against an explicit PATH value rather than the
// current process's PATH, so a PATH extended for child processes also
// applies to finding them. Names containing a separator are returned as-is.
func LookPath(name, pathValue string) (string, error) {
	if strings.ContainsRune(name, filepath.Separator) || strings.ContainsRune(name, '/') {
		if isExecutable(name) {
			return name, nil
		}
		return "", fmt.Errorf("%s: %w", name, exec.ErrNotFound)
	}

	for _, dir := range filepath.SplitList(pathValue) {
		if dir == "" {
			continue
		}
		for _, candidate := range candidates(filepath.Join(dir, name)) {
			if isExecutable(candidate) {
				return candidate, nil
			}
		}
	}

	return "", fmt.Errorf("%s: %w", name, exec.ErrNotFound)
}

func candidates(p string) []string {
	if runtime.GOOS != constants.OSWindows || filepath.Ext(p) != "" {
		return []string{p}
	}
	return []string{p + ".exe", p + ".cmd", p + ".bat"}
}

func isExecutable(p string) bool {
	info, err := os.Stat(p)
	if err != nil || info.IsDir() {
		return false
	}
	if runtime.GOOS == constants.OSWindows {
		return true
	}
	return info.Mode().Perm()&0111 != 0
}
