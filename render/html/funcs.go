package html

import (
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/sonnes/logboard/core"
)

func funcMap() template.FuncMap {
	return template.FuncMap{
		"formatBytes": core.FormatBytes,
		"formatTime":  formatTime,
		"plural":      plural,
		"join":        strings.Join,
	}
}

// formatTime renders a poll time like "Mar 4, 2026 12:00:05 UTC".
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006 15:04:05 MST")
}

// plural returns "1 line" or "3 lines".
func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return strconv.Itoa(n) + " " + word + "s"
}
