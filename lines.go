package chisel

import "strings"

// SplitLines splits content on the given line terminator. A trailing
// terminator does not produce a trailing empty line, matching the
// line-counting convention of standard line iteration; empty content yields
// no lines.
func SplitLines(data []byte, term string) []string {
	if len(data) == 0 {
		return nil
	}
	s := strings.TrimSuffix(string(data), term)
	return strings.Split(s, term)
}
