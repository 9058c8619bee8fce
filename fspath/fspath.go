// Package fspath canonicalizes path tokens across directory-separator
// conventions. All functions are pure string manipulation: no I/O, no error
// cases.
package fspath

import (
	"os"
	"strings"
)

// Separator is the host's canonical separator, used when rejoining segments.
var Separator = string(os.PathSeparator)

func isSep(r rune) bool { return r == '/' || r == '\\' }

// Split breaks path into its segments, treating forward and backward slashes
// as separators regardless of host OS. Empty segments (doubled or trailing
// separators) are dropped.
func Split(path string) []string {
	return strings.FieldsFunc(path, isSep)
}

// Join flattens tokens, splits each on either separator convention, and
// rejoins the segments with the host separator. A leading separator on the
// first token is preserved.
func Join(tokens ...string) string {
	segs := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		segs = append(segs, Split(tok)...)
	}
	joined := strings.Join(segs, Separator)
	if len(tokens) > 0 && IsAbs(tokens[0]) {
		return Separator + joined
	}
	return joined
}

// Dir returns path with its last segment removed, preserving absoluteness.
// A single-segment relative path yields "".
func Dir(path string) string {
	segs := Split(path)
	if len(segs) == 0 {
		return ""
	}
	parent := strings.Join(segs[:len(segs)-1], Separator)
	if IsAbs(path) {
		return Separator + parent
	}
	return parent
}

// Base returns the last segment of path, or "" if path has none.
func Base(path string) string {
	segs := Split(path)
	if len(segs) == 0 {
		return ""
	}
	return segs[len(segs)-1]
}

// IsAbs reports whether path starts with a separator of either convention.
func IsAbs(path string) bool {
	return len(path) > 0 && isSep(rune(path[0]))
}
