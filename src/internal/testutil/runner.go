// Package testutil holds fakes shared by package tests.
package testutil

import (
	"context"
	"sync"

	"github.com/CodingWithCalvin/starkup.cli/src/internal/runner"
)

// Response scripts the result of a recorded command.
type Response struct {
	Output string
	Err    error
	// Do runs before the response is returned, for simulating side effects
	// such as git creating the clone directory
	Do func(cmd runner.Command) error
}

// Recorder is a runner.Runner that records every command and returns
// scripted responses. Responses are matched first by the full command
// string, then by command name; unmatched commands succeed with no output.
type Recorder struct {
	mu        sync.Mutex
	calls     []runner.Command
	responses map[string]Response
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{responses: make(map[string]Response)}
}

// On registers a response for a full command string ("asdf install scarb 2.8.1")
// or a bare command name ("snforge").
func (r *Recorder) On(key string, resp Response) *Recorder {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses[key] = resp
	return r
}

// Run implements runner.Runner.
func (r *Recorder) Run(_ context.Context, cmd runner.Command) ([]byte, error) {
	r.mu.Lock()
	r.calls = append(r.calls, cmd)
	resp, ok := r.responses[cmd.String()]
	if !ok {
		resp = r.responses[cmd.Name]
	}
	r.mu.Unlock()

	if resp.Do != nil {
		if err := resp.Do(cmd); err != nil {
			return nil, err
		}
	}
	if resp.Output == "" && resp.Err == nil {
		return nil, nil
	}
	return []byte(resp.Output), resp.Err
}

// Calls returns the recorded commands in order.
func (r *Recorder) Calls() []runner.Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]runner.Command(nil), r.calls...)
}

// Commands returns the recorded commands rendered as strings.
func (r *Recorder) Commands() []string {
	calls := r.Calls()
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.String()
	}
	return out
}
