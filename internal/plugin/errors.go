package plugin

import "errors"

// Sentinel errors for plugin loading.
var (
	// ErrInvalidManifest is returned when a manifest is missing required
	// fields.
	ErrInvalidManifest = errors.New("invalid plugin manifest")

	// ErrPluginExists is returned when loading a plugin whose name is
	// already loaded.
	ErrPluginExists = errors.New("plugin already loaded")

	// ErrPluginNotFound is returned when unloading an unknown plugin.
	ErrPluginNotFound = errors.New("plugin not found")
)
