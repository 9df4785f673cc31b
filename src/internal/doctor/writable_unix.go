//go:build !windows

package doctor

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Writable reports whether the current user may write to p.
func Writable(p string) error {
	if err := unix.Access(p, unix.W_OK); err != nil {
		return fmt.Errorf("not writable: %w", err)
	}
	return nil
}
