// Package command provides the host's textual command surface: a small
// registry that editor components and plugins publish commands into, and
// the built-in "bus" command that renders broker introspection as text.
//
// The package is a thin renderer over the broker's read operations; it
// contains no dispatch or registry logic of its own.
package command
