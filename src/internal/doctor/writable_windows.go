//go:build windows

package doctor

import (
	"errors"
	"os"
)

// Writable reports whether p exists. asdf does not support Windows, so no
// access check beyond that is attempted.
func Writable(p string) error {
	if _, err := os.Stat(p); err != nil {
		return err
	}
	return errors.New("asdf is not supported on windows")
}
