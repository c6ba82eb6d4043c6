// Package plugin loads and manages Lua plugins.
//
// A plugin is a directory containing a plugin.toml manifest and an entry
// script. The manifest names the plugin, its version, and the channels it
// intends to answer, emit, and listen on; that metadata becomes the
// plugin's participant registration on the broker. The entry script runs
// once at load time in the plugin's own Lua state, with the broker exposed
// through the api package's `bus` table.
//
// Plugin failures are contained: a plugin whose manifest or script is
// broken is skipped with a logged error and the remaining plugins still
// load.
package plugin
