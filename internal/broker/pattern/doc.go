// Package pattern implements the glob matching used for every name
// comparison in the broker: channel names, broadcast patterns, and
// participant preference lists.
//
// Patterns support two wildcards:
//
//	*  matches any run of characters, including the empty run
//	?  matches exactly one character
//
// Every other character matches itself literally, including '.', which is
// the conventional separator in channel names (buffer.changed, lsp.ready).
// Matching is anchored at both ends: the entire candidate must match.
//
// A pattern containing no wildcards compares by plain string equality, so
// literal channel names are never reinterpreted.
package pattern
