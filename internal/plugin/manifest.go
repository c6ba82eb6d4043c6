package plugin

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// ManifestFile is the file name looked for in each plugin directory.
const ManifestFile = "plugin.toml"

// defaultMain is the entry script used when the manifest names none.
const defaultMain = "init.lua"

// Manifest describes a plugin. The channel lists are advisory metadata
// forwarded to the broker registration; the broker never enforces them.
type Manifest struct {
	// Name is the plugin's participant name on the broker.
	Name string `toml:"name"`

	// Version is the plugin's version string.
	Version string `toml:"version"`

	// Main is the entry script, relative to the plugin directory.
	// Defaults to init.lua.
	Main string `toml:"main"`

	// Answers lists channels the plugin intends to answer requests on.
	Answers []string `toml:"answers"`

	// Emits lists channels the plugin intends to broadcast on.
	Emits []string `toml:"emits"`

	// Listens lists patterns the plugin intends to listen on.
	Listens []string `toml:"listens"`
}

// LoadManifest reads and validates a manifest file.
func LoadManifest(path string) (Manifest, error) {
	var m Manifest

	data, err := os.ReadFile(path)
	if err != nil {
		return m, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("parsing manifest %s: %w", path, err)
	}

	if m.Main == "" {
		m.Main = defaultMain
	}
	if err := m.Validate(); err != nil {
		return m, err
	}
	return m, nil
}

// Validate checks required manifest fields.
func (m Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidManifest)
	}
	return nil
}
