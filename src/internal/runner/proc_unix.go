//go:build !windows

package runner

import (
	"errors"
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// setupProcessGroup runs the child in its own process group so cancelling
// also reaches the processes it spawns (asdf runs curl, tar and plugin scripts).
func setupProcessGroup(c *exec.Cmd) {
	if c.SysProcAttr == nil {
		c.SysProcAttr = &syscall.SysProcAttr{}
	}
	c.SysProcAttr.Setpgid = true
	c.Cancel = func() error {
		return killProcessGroup(c)
	}
}

// killProcessGroup sends SIGKILL to the child's whole process group.
func killProcessGroup(c *exec.Cmd) error {
	if c.Process == nil {
		return nil
	}

	// the group id equals the child's pid because of Setpgid
	if err := unix.Kill(-c.Process.Pid, unix.SIGKILL); err != nil && !errors.Is(err, unix.ESRCH) {
		return c.Process.Kill()
	}
	return nil
}

// signalStatus reports the shell-style status (128+n) of a child that was
// terminated by signal n.
func signalStatus(state *os.ProcessState) (code int, signal string, ok bool) {
	if state == nil {
		return 0, "", false
	}
	ws, isWait := state.Sys().(syscall.WaitStatus)
	if !isWait || !ws.Signaled() {
		return 0, "", false
	}
	return 128 + int(ws.Signal()), ws.Signal().String(), true
}
