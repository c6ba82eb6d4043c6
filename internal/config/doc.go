// Package config loads the host configuration from a TOML file with
// environment variable overrides, and watches the file for live reload.
//
// Precedence, lowest to highest: built-in defaults, the TOML file, then
// PLUGBUS_* environment variables. A missing config file is not an error;
// the defaults stand.
package config
