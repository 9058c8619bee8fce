// Package scan locates lines and block boundaries in an ordered line
// sequence. It is the matching core behind every mutation operation: find a
// target line, then walk delimiter depth to find the block it opens or the
// construct that encloses it.
package scan

import (
	"regexp"
	"strings"
)

// Target locates a line by exact substring or by regular expression.
type Target struct {
	text string
	re   *regexp.Regexp
}

// Text returns a Target matching any line that contains s.
func Text(s string) Target { return Target{text: s} }

// Regexp returns a Target matching any line the pattern matches.
func Regexp(re *regexp.Regexp) Target { return Target{re: re} }

// Matches reports whether line contains the target.
func (t Target) Matches(line string) bool {
	if t.re != nil {
		return t.re.MatchString(line)
	}
	return strings.Contains(line, t.text)
}

// String returns the target's source text, for error messages.
func (t Target) String() string {
	if t.re != nil {
		return t.re.String()
	}
	return t.text
}

// FindFirst returns the index of the first line matching target, or -1.
func FindFirst(lines []string, target Target) int {
	for i, line := range lines {
		if target.Matches(line) {
			return i
		}
	}
	return -1
}

// FindLast returns the index of the last line matching target, or -1.
func FindLast(lines []string, target Target) int {
	for i := len(lines) - 1; i >= 0; i-- {
		if target.Matches(lines[i]) {
			return i
		}
	}
	return -1
}

// FindBlockStart returns the index of the first line that matches target and
// contains at least one open marker, or -1.
func FindBlockStart(lines []string, target Target, opens []string) int {
	for i, line := range lines {
		if target.Matches(line) && countAny(line, opens) > 0 {
			return i
		}
	}
	return -1
}

// countAny sums the occurrences of every marker in line.
func countAny(line string, markers []string) int {
	n := 0
	for _, m := range markers {
		n += strings.Count(line, m)
	}
	return n
}

// MatchingBlockEnd scans forward from start, which must contain at least one
// open marker, maintaining a depth counter: each line adds its open-marker
// occurrences and subtracts its close-marker occurrences. The first line
// where depth returns to zero is the block's closing boundary. Multiple opens
// and closes on one line are all counted within that single step, so
// single-line blocks are detected. Returns -1 if start opens no block or
// depth never returns to zero.
//
// Occurrences are counted as plain substrings, blind to string literals and
// comments. That is a deliberate approximation: callers edit generated,
// predictable source, and a marker-looking token inside a string will be
// mis-counted.
func MatchingBlockEnd(lines []string, start int, opens, closes []string) int {
	if start < 0 || start >= len(lines) || countAny(lines[start], opens) == 0 {
		return -1
	}
	depth := 0
	for i := start; i < len(lines); i++ {
		depth += countAny(lines[i], opens)
		depth -= countAny(lines[i], closes)
		if depth <= 0 {
			return i
		}
	}
	return -1
}

// EnclosingBlockStart scans backward from inner (inclusive) for the nearest
// line matching header, used to find an enclosing class/module-like
// construct. Returns -1 if no preceding line matches. The construct's true
// closing boundary must then be computed with MatchingBlockEnd from the
// returned index, so nested sibling blocks do not terminate the scan early.
func EnclosingBlockStart(lines []string, inner int, header Target) int {
	if inner >= len(lines) {
		inner = len(lines) - 1
	}
	for i := inner; i >= 0; i-- {
		if header.Matches(lines[i]) {
			return i
		}
	}
	return -1
}
