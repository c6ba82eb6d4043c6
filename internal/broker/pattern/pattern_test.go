package pattern

import "testing"

func TestMatch_Literal(t *testing.T) {
	tests := []struct {
		candidate string
		pattern   string
		want      bool
	}{
		{"buffer.changed", "buffer.changed", true},
		{"buffer.changed", "buffer.cleared", false},
		{"a.b", "a.b", true},
		{"aXb", "a.b", false}, // literal dot is not "any character"
		{"a-b", "a-b", true},
		{"", "", true},
		{"x", "", false},
		{"", "x", false},
		{"Test", "test", false}, // case-sensitive
	}

	for _, tt := range tests {
		if got := Match(tt.candidate, tt.pattern); got != tt.want {
			t.Errorf("Match(%q, %q) = %v, want %v", tt.candidate, tt.pattern, got, tt.want)
		}
	}
}

func TestMatch_Wildcards(t *testing.T) {
	tests := []struct {
		candidate string
		pattern   string
		want      bool
	}{
		{"anything", "*", true},
		{"", "*", true},
		{"test.a", "test.?", true},
		{"test.ab", "test.?", false},
		{"test.", "test.?", false},
		{"test.foo", "test.*", true},
		{"test.", "test.*", true},
		{"test", "test.*", false},
		{"a.b.c", "a.*.c", true},
		{"a.c", "a.*c", true}, // * matches the empty run
		{"buffer.changed", "*.changed", true},
		{"changed", "*.changed", false},
		{"abc", "a?c", true},
		{"ac", "a?c", false},
		{"prefix.mid.suffix", "prefix.*suffix", true},
		{"prefix.mid.other", "prefix.*suffix", false},
	}

	for _, tt := range tests {
		if got := Match(tt.candidate, tt.pattern); got != tt.want {
			t.Errorf("Match(%q, %q) = %v, want %v", tt.candidate, tt.pattern, got, tt.want)
		}
	}
}

func TestMatch_Anchored(t *testing.T) {
	// Substring matches must not count.
	if Match("prefix.buffer.changed", "buffer.*") {
		t.Error("expected pattern to be anchored at the start")
	}
	if Match("buffer.changed.suffix", "*.changed") {
		t.Error("expected pattern to be anchored at the end")
	}
}

func TestIsPattern(t *testing.T) {
	tests := []struct {
		s    string
		want bool
	}{
		{"buffer.changed", false},
		{"buffer.*", true},
		{"buffer.?", true},
		{"", false},
		{"*", true},
	}

	for _, tt := range tests {
		if got := IsPattern(tt.s); got != tt.want {
			t.Errorf("IsPattern(%q) = %v, want %v", tt.s, got, tt.want)
		}
	}
}
