// Package config captures everything starkup reads from the process
// environment into a single value that is passed to each bootstrap step.
package config

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/CodingWithCalvin/starkup.cli/src/internal/constants"
)

// ErrNoHome is returned when HOME is unset.
var ErrNoHome = errors.New("HOME is not set")

// Config is the bootstrap environment.
type Config struct {
	// Home is the user's home directory
	Home string
	// AsdfDir is where asdf is cloned (~/.asdf unless STARKUP_ASDF_DIR is set)
	AsdfDir string
	// CI is true when the CI variable is non-empty
	CI bool
	// CIEnvFile is the file CI persists environment changes to (GITHUB_ENV)
	CIEnvFile string
	// Path is the search path child processes see; extended in place by the
	// bootstrapper
	Path string
	// RCFile is the shell startup file patched outside CI
	RCFile string
}

// Load builds a Config from an environment lookup function.
// Pass os.Getenv for the real environment; tests pass a map lookup.
func Load(getenv func(string) string) (*Config, error) {
	home := getenv(constants.EnvHome)
	if home == "" {
		return nil, ErrNoHome
	}

	asdfDir := getenv(constants.EnvAsdfDir)
	if asdfDir == "" {
		asdfDir = filepath.Join(home, constants.AsdfDirName)
	}

	rcFile := getenv(constants.EnvRCFile)
	if rcFile == "" {
		rcFile = filepath.Join(home, constants.DefaultRCFile)
	}

	return &Config{
		Home:      home,
		AsdfDir:   ExpandHome(asdfDir, home),
		CI:        getenv(constants.EnvCI) != "",
		CIEnvFile: getenv(constants.EnvGitHubEnv),
		Path:      getenv(constants.EnvPath),
		RCFile:    ExpandHome(rcFile, home),
	}, nil
}

// MapEnv adapts a map to the lookup function Load expects.
func MapEnv(env map[string]string) func(string) string {
	return func(key string) string { return env[key] }
}

// BinDir is asdf's bin directory.
func (c *Config) BinDir() string {
	return filepath.Join(c.AsdfDir, constants.AsdfBinDir)
}

// ShimsDir is asdf's shims directory.
func (c *Config) ShimsDir() string {
	return filepath.Join(c.AsdfDir, constants.AsdfShimsDir)
}

// Environ returns base with PATH and ASDF_DIR replaced by the Config's values,
// for use as a child process environment.
func (c *Config) Environ(base []string) []string {
	env := make([]string, 0, len(base)+2)
	for _, kv := range base {
		if strings.HasPrefix(kv, constants.EnvPath+"=") || strings.HasPrefix(kv, constants.EnvAsdfChild+"=") {
			continue
		}
		env = append(env, kv)
	}
	env = append(env, constants.EnvPath+"="+c.Path)
	env = append(env, constants.EnvAsdfChild+"="+c.AsdfDir)
	return env
}

// DisplayPath renders p relative to the home directory as "~/...", which is
// also the form written into the shell startup file.
func (c *Config) DisplayPath(p string) string {
	rel, err := filepath.Rel(c.Home, p)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return p
	}
	if rel == "." {
		return "~"
	}
	return "~/" + filepath.ToSlash(rel)
}

// ExpandHome replaces a leading "~" in p with home.
func ExpandHome(p, home string) string {
	if p == "~" {
		return home
	}
	if strings.HasPrefix(p, "~/") {
		return filepath.Join(home, p[2:])
	}
	return p
}
