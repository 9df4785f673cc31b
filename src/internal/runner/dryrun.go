package runner

import (
	"context"
	"fmt"
	"io"
)

// DryRun prints each command instead of running it.
type DryRun struct {
	Out io.Writer
}

// Run writes "$ <cmd>" to Out and returns empty output.
func (d *DryRun) Run(_ context.Context, cmd Command) ([]byte, error) {
	if d.Out != nil {
		fmt.Fprintf(d.Out, "  $ %s\n", cmd)
	}
	return nil, nil
}
