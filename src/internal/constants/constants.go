// Package constants holds names shared across starkup packages.
package constants

// Environment variables read by starkup.
const (
	EnvHome      = "HOME"
	EnvPath      = "PATH"
	EnvCI        = "CI"
	EnvGitHubEnv = "GITHUB_ENV"
	EnvRCFile    = "STARKUP_RC_FILE"
	EnvConfig    = "STARKUP_CONFIG"
	EnvAsdfDir   = "STARKUP_ASDF_DIR"
)

// EnvAsdfChild is asdf's own directory variable. starkup sets it for the
// commands it runs and never reads it from the parent environment.
const EnvAsdfChild = "ASDF_DIR"

// asdf layout, relative to the asdf directory.
const (
	AsdfDirName        = ".asdf"
	AsdfBinDir         = "bin"
	AsdfShimsDir       = "shims"
	AsdfInitScript     = "asdf.sh"
	AsdfCompletionBash = "completions/asdf.bash"
	AsdfBinary         = "asdf"
	GitBinary          = "git"
)

// DefaultRCFile is the shell startup file patched outside CI, relative to HOME.
const DefaultRCFile = ".bashrc"

// OS names for runtime.GOOS checks.
const (
	OSWindows = "windows"
	OSDarwin  = "darwin"
	OSLinux   = "linux"
)
