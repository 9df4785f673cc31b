// Package path extends the search path with asdf's directories and persists
// that change for later shells: into the CI environment file when running
// under CI, otherwise into the user's shell startup file.
package path

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/CodingWithCalvin/starkup.cli/src/internal/config"
	"github.com/CodingWithCalvin/starkup.cli/src/internal/constants"
)

// InitMarker is the text whose presence in the startup file means asdf is
// already sourced there.
const InitMarker = constants.AsdfInitScript

// ErrNoCIEnvFile is returned when CI is set but GITHUB_ENV is not.
var ErrNoCIEnvFile = errors.New("CI is set but GITHUB_ENV is empty")

// Outcome describes what Persist changed.
type Outcome string

const (
	// OutcomeCIEnv means a PATH line was appended to the CI environment file
	OutcomeCIEnv Outcome = "ci-env"
	// OutcomeProfilePatched means the sourcing lines were appended to the startup file
	OutcomeProfilePatched Outcome = "profile-patched"
	// OutcomeProfileUnchanged means the startup file already sources asdf
	OutcomeProfileUnchanged Outcome = "profile-unchanged"
)

// Extend appends each dir to the search path value current, skipping dirs
// that are already present. An empty current yields just the dirs.
func Extend(current string, dirs ...string) string {
	var entries []string
	if current != "" {
		entries = filepath.SplitList(current)
	}

	present := make(map[string]bool, len(entries))
	for _, e := range entries {
		present[filepath.Clean(e)] = true
	}

	for _, d := range dirs {
		if d == "" || present[filepath.Clean(d)] {
			continue
		}
		entries = append(entries, d)
		present[filepath.Clean(d)] = true
	}

	return strings.Join(entries, string(os.PathListSeparator))
}

// Contains reports whether dir is an entry of the search path value.
func Contains(pathValue, dir string) bool {
	for _, e := range filepath.SplitList(pathValue) {
		if e != "" && filepath.Clean(e) == filepath.Clean(dir) {
			return true
		}
	}
	return false
}

// CILine is the line appended to the CI environment file.
func CILine(pathValue string) string {
	return constants.EnvPath + "=" + pathValue + "\n"
}

// PersistCI appends a PATH assignment to the CI environment file.
func PersistCI(file, pathValue string) error {
	if file == "" {
		return ErrNoCIEnvFile
	}
	return appendFile(file, CILine(pathValue))
}

// SourceLines returns the lines appended to the startup file. Each begins
// with a newline so they never join a final line that lacks one.
func SourceLines(cfg *config.Config) []string {
	initScript := cfg.DisplayPath(filepath.Join(cfg.AsdfDir, constants.AsdfInitScript))
	completion := cfg.DisplayPath(filepath.Join(cfg.AsdfDir, filepath.FromSlash(constants.AsdfCompletionBash)))
	return []string{
		"\n. " + initScript,
		"\n. " + completion,
	}
}

// HasInitReference reports whether rcFile already mentions asdf's init script.
// A missing file counts as not referencing it. Any other read failure is
// returned rather than being treated as absent.
func HasInitReference(rcFile string) (bool, error) {
	data, err := os.ReadFile(rcFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read %s: %w", rcFile, err)
	}
	return bytes.Contains(data, []byte(InitMarker)), nil
}

// PatchProfile appends the sourcing lines to the startup file unless it
// already references asdf. Returns whether the file changed.
func PatchProfile(cfg *config.Config) (bool, error) {
	found, err := HasInitReference(cfg.RCFile)
	if err != nil {
		return false, err
	}
	if found {
		return false, nil
	}

	if err := appendFile(cfg.RCFile, strings.Join(SourceLines(cfg), "")); err != nil {
		return false, err
	}
	return true, nil
}

// Persist records pathValue for future shells and reports what it changed.
func Persist(cfg *config.Config, pathValue string) (Outcome, error) {
	if cfg.CI {
		if err := PersistCI(cfg.CIEnvFile, pathValue); err != nil {
			return "", err
		}
		return OutcomeCIEnv, nil
	}

	changed, err := PatchProfile(cfg)
	if err != nil {
		return "", err
	}
	if changed {
		return OutcomeProfilePatched, nil
	}
	return OutcomeProfileUnchanged, nil
}

func appendFile(name, text string) error {
	f, err := os.OpenFile(name, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", name, err)
	}

	if _, err := f.WriteString(text); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return f.Close()
}
