package terminal

import "strings"

// lastLine returns the last non-blank line of s, used as a one-line preview
// of a log's most recent entry.
func lastLine(s string) string {
	s = strings.TrimRight(s, "\r\n\t ")
	if idx := strings.LastIndexByte(s, '\n'); idx >= 0 {
		s = s[idx+1:]
	}
	return strings.TrimSpace(s)
}
