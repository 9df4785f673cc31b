package manifest

import (
	"fmt"
	"sync"
)

var (
	defaultManifest     *Manifest
	defaultManifestOnce sync.Once
)

// Default returns the embedded manifest.
// It is parsed once and reused for all subsequent calls; callers must not
// modify the returned value (use Clone).
func Default() *Manifest {
	defaultManifestOnce.Do(func() {
		m, err := Parse(defaultYAML)
		if err != nil {
			// default.yaml ships with the binary, so this is a build defect
			panic(fmt.Sprintf("embedded manifest: %v", err))
		}
		defaultManifest = m
	})
	return defaultManifest
}

// Clone returns a deep copy of the manifest.
func (m *Manifest) Clone() *Manifest {
	c := *m
	c.Tools = append([]Tool(nil), m.Tools...)
	return &c
}

// ResetDefault clears the cached default manifest.
// This is primarily useful for testing.
func ResetDefault() {
	defaultManifestOnce = sync.Once{}
	defaultManifest = nil
}
