//go:build windows

package runner

import (
	"os"
	"os/exec"
)

// setupProcessGroup is a no-op on windows; cancellation kills the child only
// and WaitDelay bounds the wait for anything it left behind.
func setupProcessGroup(*exec.Cmd) {}

func signalStatus(*os.ProcessState) (int, string, bool) {
	return 0, "", false
}
