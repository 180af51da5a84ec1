package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sonnes/logboard/core"
	"github.com/sonnes/logboard/render/terminal"
)

// tickCmd sends a tick message after interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// fetch starts a snapshot request, or returns nil when one is already in
// flight.
func (m Model) fetch() tea.Cmd {
	if !m.viewer.Begin() {
		return nil
	}
	ctx, r := m.ctx, m.reader
	return func() tea.Msg {
		s, err := r.Snapshot(ctx)
		return fetchedMsg{snap: s, err: err}
	}
}

func renderSnapshot(r *terminal.Renderer, s *core.Snapshot) string {
	var b strings.Builder
	_ = r.Render(&b, s)
	return strings.TrimRight(b.String(), "\n")
}
