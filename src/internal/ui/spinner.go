package ui

import (
	"time"

	"github.com/briandowns/spinner"
)

// Spinner shows an animated line while a step runs.
type Spinner struct {
	s *spinner.Spinner
}

// NewSpinner creates a stopped spinner with the given message.
func NewSpinner(message string) *Spinner {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(Output()))
	s.Suffix = " " + message
	return &Spinner{s: s}
}

// Start begins animating.
func (s *Spinner) Start() {
	s.s.Start()
}

// Success stops the spinner and prints a success line.
func (s *Spinner) Success(message string) {
	s.s.Stop()
	Success("%s", message)
}

// Error stops the spinner and prints an error line.
func (s *Spinner) Error(message string) {
	s.s.Stop()
	Error("%s", message)
}
