// Package doctor checks the prerequisites for a bootstrap run.
package doctor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/CodingWithCalvin/starkup.cli/src/internal/config"
	"github.com/CodingWithCalvin/starkup.cli/src/internal/constants"
	"github.com/CodingWithCalvin/starkup.cli/src/internal/runner"
)

// Check is the outcome of one prerequisite check.
type Check struct {
	Name   string
	OK     bool
	Detail string
}

// CheckAvailability checks if the given tools are resolvable on pathValue.
// Returns a map of tool name to availability status.
func CheckAvailability(pathValue string, tools ...string) map[string]bool {
	result := make(map[string]bool, len(tools))
	for _, tool := range tools {
		_, err := runner.LookPath(tool, pathValue)
		result[tool] = err == nil
	}
	return result
}

// Run performs all checks against cfg.
func Run(cfg *config.Config) []Check {
	checks := []Check{gitCheck(cfg)}

	if cfg.CI {
		checks = append(checks, ciEnvCheck(cfg))
	} else {
		checks = append(checks, fileCheck("shell startup file", cfg.RCFile, cfg))
	}

	checks = append(checks, asdfCheck(cfg))
	return checks
}

// Failed reports whether any check failed.
func Failed(checks []Check) bool {
	for _, c := range checks {
		if !c.OK {
			return true
		}
	}
	return false
}

func gitCheck(cfg *config.Config) Check {
	if CheckAvailability(cfg.Path, constants.GitBinary)[constants.GitBinary] {
		return Check{Name: "git", OK: true, Detail: "found on PATH"}
	}
	return Check{Name: "git", Detail: "not found on PATH; required to clone asdf"}
}

func ciEnvCheck(cfg *config.Config) Check {
	if cfg.CIEnvFile == "" {
		return Check{Name: "CI env file", Detail: constants.EnvGitHubEnv + " is not set"}
	}
	return fileCheck("CI env file", cfg.CIEnvFile, cfg)
}

// fileCheck verifies that p can be appended to, or created if missing.
func fileCheck(name, p string, cfg *config.Config) Check {
	target := p
	if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
		target = filepath.Dir(p)
	}

	if err := Writable(target); err != nil {
		return Check{Name: name, Detail: fmt.Sprintf("%s: %v", cfg.DisplayPath(target), err)}
	}
	return Check{Name: name, OK: true, Detail: cfg.DisplayPath(p)}
}

func asdfCheck(cfg *config.Config) Check {
	info, err := os.Stat(cfg.AsdfDir)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// the parent must accept the clone
		if werr := Writable(filepath.Dir(cfg.AsdfDir)); werr != nil {
			return Check{Name: "asdf", Detail: fmt.Sprintf("cannot clone into %s: %v", cfg.DisplayPath(cfg.AsdfDir), werr)}
		}
		return Check{Name: "asdf", OK: true, Detail: "will be cloned into " + cfg.DisplayPath(cfg.AsdfDir)}
	case err != nil:
		return Check{Name: "asdf", Detail: err.Error()}
	case !info.IsDir():
		return Check{Name: "asdf", Detail: cfg.DisplayPath(cfg.AsdfDir) + " is not a directory"}
	default:
		return Check{Name: "asdf", OK: true, Detail: "present at " + cfg.DisplayPath(cfg.AsdfDir)}
	}
}
