// Package terminal renders log snapshots as ANSI-colored sections.
package terminal

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
	"github.com/sonnes/logboard/core"
	"github.com/sonnes/logboard/render"
)

const defaultWidth = 100

// Renderer pretty-prints a snapshot to the terminal, one section per source
// in display order.
type Renderer struct {
	// Width overrides terminal width detection. Zero means auto-detect.
	Width int
	// Summary prints only each source's most recent line instead of its
	// full content.
	Summary bool
	// NoHeader omits the title and stats block.
	NoHeader bool
}

// New creates a terminal Renderer.
func New() *Renderer {
	return &Renderer{}
}

// Render writes the snapshot to w. Source content is written verbatim
// unless Summary is set.
func (r *Renderer) Render(w io.Writer, s *core.Snapshot) error {
	width := r.termWidth()

	if !r.NoHeader {
		writeHeader(w, s)
	}

	for _, src := range s.Sources() {
		writeSeparator(w, width)
		fmt.Fprintln(w)
		fmt.Fprintln(w, " "+heading(src))

		if r.Summary {
			if line := lastLine(src.Content); line != "" {
				fmt.Fprintln(w, "  "+stylePreview.Render(truncate(line, width-4)))
			}
			continue
		}
		fmt.Fprintln(w)
		io.WriteString(w, src.Content)
		if src.Content != "" && !strings.HasSuffix(src.Content, "\n") {
			fmt.Fprintln(w)
		}
	}

	fmt.Fprintln(w)
	return nil
}

func (r *Renderer) termWidth() int {
	if r.Width > 0 {
		return r.Width
	}
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		return w
	}
	return defaultWidth
}

// writeHeader renders the title, poll time, stats and skipped names.
func writeHeader(w io.Writer, s *core.Snapshot) {
	fmt.Fprintln(w, styleTitle.Render("logboard"))
	if !s.TakenAt().IsZero() {
		fmt.Fprintln(w, styleMeta.Render(formatTime(s.TakenAt())))
	}

	lines, bytes := 0, 0
	for _, src := range s.Sources() {
		lines += core.CountLines(src.Content)
		bytes += len(src.Content)
	}
	fmt.Fprintln(w)
	writeStats(w, []stat{
		{formatNumber(s.Len()), "SOURCES"},
		{formatNumber(lines), "LINES"},
		{core.FormatBytes(bytes), "SIZE"},
	})

	if skipped := s.Skipped(); len(skipped) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, styleWarn.Render("unreadable: "+strings.Join(skipped, ", ")))
	}
}

type stat struct {
	value string
	label string
}

// writeStats renders counters in two rows: values then labels.
func writeStats(w io.Writer, stats []stat) {
	var values, labels []string
	for _, s := range stats {
		colWidth := max(len(s.value), len(s.label))
		values = append(values, fmt.Sprintf("%*s", colWidth, s.value))
		labels = append(labels, fmt.Sprintf("%-*s", colWidth, s.label))
	}

	fmt.Fprintln(w, "  "+styleStat.Render(strings.Join(values, "    ")))
	fmt.Fprintln(w, "  "+styleStatLabel.Render(strings.Join(labels, "    ")))
}

// writeSeparator renders a horizontal rule.
func writeSeparator(w io.Writer, width int) {
	n := min(width, 72)
	fmt.Fprintln(w)
	fmt.Fprintln(w, styleSeparator.Render(strings.Repeat("─", n)))
}

// heading renders a source name with its line count and size.
func heading(src core.Source) string {
	name := styleSourceName.Render(src.Name)
	if src.Name == core.PriorityName {
		name = stylePriorityName.Render(src.Name)
	}
	lines := core.CountLines(src.Content)
	unit := "lines"
	if lines == 1 {
		unit = "line"
	}
	meta := fmt.Sprintf("%s %s · %s", formatNumber(lines), unit, core.FormatBytes(len(src.Content)))
	return name + "    " + styleMeta.Render(meta)
}

// truncate shortens text to maxWidth, appending "..." if needed.
// Multi-line text is reduced to the first line.
func truncate(s string, maxWidth int) string {
	if maxWidth < 4 {
		maxWidth = 4
	}
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[:idx]
	}
	s = strings.TrimSpace(s)

	if lipgloss.Width(s) <= maxWidth {
		return s
	}

	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+3 > maxWidth {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}

// Format helpers, mirrored from render/html/funcs.go.

func formatTime(t time.Time) string {
	return t.Format("Jan 2, 2006 15:04:05 MST")
}

func formatNumber(n int) string {
	if n < 0 {
		return "-" + formatNumber(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return formatNumber(n/1000) + "," + fmt.Sprintf("%03d", n%1000)
}

var _ render.Renderer = (*Renderer)(nil)
