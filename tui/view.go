package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/sonnes/logboard/viewer"
)

// chromeHeight is the number of rows taken by the status and help bars.
const chromeHeight = 2

var (
	colorAccent = lipgloss.AdaptiveColor{Light: "#0d9488", Dark: "#2dd4bf"}
	colorWarn   = lipgloss.AdaptiveColor{Light: "#b45309", Dark: "#fbbf24"}
	colorDim    = lipgloss.AdaptiveColor{Light: "#94a3b8", Dark: "#64748b"}

	styleStatus = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	styleMeta   = lipgloss.NewStyle().Foreground(colorDim)
	styleAged   = styleMeta.Faint(true).Italic(true)
	styleWarn   = lipgloss.NewStyle().Foreground(colorWarn)
	styleHelp   = lipgloss.NewStyle().Foreground(colorDim)
)

// View renders the status bar, the log viewport and the help line.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.statusBar(), m.vp.View(), m.helpBar())
}

func (m Model) statusBar() string {
	parts := []string{styleStatus.Render("logboard")}
	if m.source != "" {
		parts = append(parts, styleMeta.Render(m.source))
	}

	snap := m.viewer.Snapshot()
	parts = append(parts, styleMeta.Render(fmt.Sprintf("%d logs", snap.Len())))

	if t := m.viewer.UpdatedAt(); !t.IsZero() {
		parts = append(parts, m.updatedStyle().Render("updated "+t.Format(time.TimeOnly)))
	}
	if m.viewer.State() == viewer.Fetching {
		parts = append(parts, styleMeta.Render("refreshing"))
	}
	if skipped := snap.Skipped(); len(skipped) > 0 {
		parts = append(parts, styleWarn.Render("unreadable: "+strings.Join(skipped, ", ")))
	}

	return lipgloss.NewStyle().MaxWidth(m.width).Render(strings.Join(parts, styleMeta.Render(" · ")))
}

// updatedStyle dims the last update time after a failed refresh. The failure
// itself only goes to the debug log.
func (m Model) updatedStyle() lipgloss.Style {
	if m.viewer.LastError() != nil {
		return styleAged
	}
	return styleMeta
}

func (m Model) helpBar() string {
	bindings := []string{
		m.keys.Refresh.Help().Key + " " + m.keys.Refresh.Help().Desc,
		m.keys.Top.Help().Key + "/" + m.keys.Bottom.Help().Key + " top/bottom",
		m.keys.Quit.Help().Key + " " + m.keys.Quit.Help().Desc,
	}
	help := fmt.Sprintf("%3.0f%%  %s", m.vp.ScrollPercent()*100, strings.Join(bindings, "  "))
	return styleHelp.MaxWidth(m.width).Render(help)
}
