package bootstrap

import "fmt"

// Kind classifies where a bootstrap run failed.
type Kind string

const (
	// KindClone covers checking for and cloning the asdf directory
	KindClone Kind = "clone"
	// KindShellConfig covers persisting PATH to the CI env file or startup file
	KindShellConfig Kind = "shell-config"
	// KindToolInstall covers plugin add, install and global
	KindToolInstall Kind = "tool-install"
	// KindVersionQuery covers running a tool's --version
	KindVersionQuery Kind = "version-query"
)

// StepError is returned by Run for the first step that fails.
type StepError struct {
	Kind Kind
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
