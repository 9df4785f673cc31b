package ui

import (
	"github.com/schollz/progressbar/v3"
)

// ReporterKind selects how step progress is shown.
type ReporterKind string

const (
	// ReporterAuto uses spinners on a terminal and plain lines otherwise
	ReporterAuto ReporterKind = "auto"
	// ReporterSpinner animates each step
	ReporterSpinner ReporterKind = "spinner"
	// ReporterPlain prints one line per step event; suited to CI logs
	ReporterPlain ReporterKind = "plain"
	// ReporterProgress shows a single bar across all steps
	ReporterProgress ReporterKind = "progress"
)

// Reporter receives step lifecycle events.
type Reporter interface {
	Start(step string)
	Done(step string)
	Fail(step string, err error)
}

// NewReporter returns a reporter of the given kind for a run of total steps.
func NewReporter(kind ReporterKind, total int) Reporter {
	if kind == ReporterAuto || kind == "" {
		kind = ReporterPlain
		if IsInteractive() {
			kind = ReporterSpinner
		}
	}

	switch kind {
	case ReporterSpinner:
		return &spinnerReporter{}
	case ReporterProgress:
		return newProgressReporter(total)
	default:
		return PlainReporter{}
	}
}

// PlainReporter prints a line for every event.
type PlainReporter struct{}

func (PlainReporter) Start(step string) { Progress("%s...", step) }

func (PlainReporter) Done(step string) { Success("%s", step) }

func (PlainReporter) Fail(step string, err error) { Error("%s: %v", step, err) }

type spinnerReporter struct {
	current *Spinner
}

func (r *spinnerReporter) Start(step string) {
	r.current = NewSpinner(step + "...")
	r.current.Start()
}

func (r *spinnerReporter) Done(step string) {
	if r.current == nil {
		Success("%s", step)
		return
	}
	r.current.Success(step)
	r.current = nil
}

func (r *spinnerReporter) Fail(step string, err error) {
	if r.current == nil {
		Error("%s: %v", step, err)
		return
	}
	r.current.Error(step + ": " + err.Error())
	r.current = nil
}

type progressReporter struct {
	bar *progressbar.ProgressBar
}

func newProgressReporter(total int) *progressReporter {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(Output()),
		progressbar.OptionSetDescription("Bootstrapping"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionOnCompletion(func() { Printf("\n") }),
	)
	return &progressReporter{bar: bar}
}

func (r *progressReporter) Start(step string) {
	r.bar.Describe(step)
}

func (r *progressReporter) Done(string) {
	_ = r.bar.Add(1)
}

func (r *progressReporter) Fail(step string, err error) {
	_ = r.bar.Exit()
	Printf("\n")
	Error("%s: %v", step, err)
}
