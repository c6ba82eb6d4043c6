package pattern

import (
	"strings"

	"github.com/tidwall/match"
)

// IsPattern reports whether s contains glob wildcards.
// Strings without wildcards are matched by plain equality.
func IsPattern(s string) bool {
	return strings.ContainsAny(s, "*?")
}

// Match reports whether candidate matches pattern.
//
// Match is a pure function: it holds no state and the same inputs always
// produce the same result. An empty pattern matches only the empty
// candidate; "*" matches every candidate including the empty string.
func Match(candidate, pattern string) bool {
	if !IsPattern(pattern) {
		return candidate == pattern
	}
	return match.Match(candidate, pattern)
}
