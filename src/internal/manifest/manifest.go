// Package manifest describes the pinned toolchain: which asdf revision to clone
// and which plugins to install at which versions.
package manifest

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// ErrInvalid is returned when a manifest is missing required fields.
var ErrInvalid = errors.New("invalid manifest")

// AsdfPin identifies the asdf source to clone.
type AsdfPin struct {
	Repo    string `yaml:"repo"`
	Version string `yaml:"version"`
}

// Tool is a single asdf-managed tool.
type Tool struct {
	Name    string `yaml:"name"`
	Plugin  string `yaml:"plugin"`
	Version string `yaml:"version"`
	// Binary is the executable queried with --version after install
	Binary string `yaml:"binary"`
	// Display is used in the "Finished installing" line
	Display string `yaml:"display"`
}

// DisplayName returns Display, falling back to Name and then Plugin.
func (t Tool) DisplayName() string {
	switch {
	case t.Display != "":
		return t.Display
	case t.Name != "":
		return t.Name
	default:
		return t.Plugin
	}
}

// Manifest is the full pinned toolchain.
type Manifest struct {
	Asdf  AsdfPin `yaml:"asdf"`
	Tools []Tool  `yaml:"tools"`
}

// Parse decodes and validates a manifest.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Load reads a manifest file. Fields the file leaves empty are filled in
// from the default manifest, so an override may pin just one tool version.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}

	m.mergeDefaults(Default())

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &m, nil
}

// Validate checks that every required field is present.
func (m *Manifest) Validate() error {
	if m.Asdf.Repo == "" || m.Asdf.Version == "" {
		return fmt.Errorf("%w: asdf repo and version are required", ErrInvalid)
	}
	if len(m.Tools) == 0 {
		return fmt.Errorf("%w: no tools listed", ErrInvalid)
	}

	seen := make(map[string]bool, len(m.Tools))
	for i, t := range m.Tools {
		var missing []string
		if t.Plugin == "" {
			missing = append(missing, "plugin")
		}
		if t.Version == "" {
			missing = append(missing, "version")
		}
		if t.Binary == "" {
			missing = append(missing, "binary")
		}
		if len(missing) > 0 {
			return fmt.Errorf("%w: tool %d (%s) is missing %s", ErrInvalid, i, t.DisplayName(), strings.Join(missing, ", "))
		}
		if seen[t.Plugin] {
			return fmt.Errorf("%w: plugin %q listed twice", ErrInvalid, t.Plugin)
		}
		seen[t.Plugin] = true
	}
	return nil
}

// Tool returns the tool registered under the given plugin name.
func (m *Manifest) Tool(plugin string) (Tool, bool) {
	for _, t := range m.Tools {
		if t.Plugin == plugin {
			return t, true
		}
	}
	return Tool{}, false
}

// mergeDefaults fills empty fields from def. Tools are matched by plugin name;
// an override with no tools inherits the whole default tool list.
func (m *Manifest) mergeDefaults(def *Manifest) {
	if m.Asdf.Repo == "" {
		m.Asdf.Repo = def.Asdf.Repo
	}
	if m.Asdf.Version == "" {
		m.Asdf.Version = def.Asdf.Version
	}

	if len(m.Tools) == 0 {
		m.Tools = append([]Tool(nil), def.Tools...)
		return
	}

	for i := range m.Tools {
		t := &m.Tools[i]
		if t.Plugin == "" {
			t.Plugin = t.Name
		}
		d, ok := def.Tool(t.Plugin)
		if !ok {
			continue
		}
		if t.Name == "" {
			t.Name = d.Name
		}
		if t.Version == "" {
			t.Version = d.Version
		}
		if t.Binary == "" {
			t.Binary = d.Binary
		}
		if t.Display == "" {
			t.Display = d.Display
		}
	}
}
