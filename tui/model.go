// Package tui is the interactive terminal viewer. It polls a reader on an
// interval through a viewer.Viewer and shows the snapshot in a scrollable
// viewport.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sonnes/logboard/core"
	"github.com/sonnes/logboard/reader"
	"github.com/sonnes/logboard/render/terminal"
	"github.com/sonnes/logboard/viewer"
)

// Config configures the terminal viewer.
type Config struct {
	Reader   reader.Reader
	Viewer   *viewer.Viewer
	Interval time.Duration
	// Source labels the status bar, usually the server URL.
	Source string
}

// Model is the bubbletea model of the viewer.
type Model struct {
	ctx      context.Context
	reader   reader.Reader
	viewer   *viewer.Viewer
	interval time.Duration
	source   string
	keys     keyMap

	vp     viewport.Model
	ready  bool
	width  int
	height int
}

// Message types for the update loop.
type tickMsg time.Time

type fetchedMsg struct {
	snap *core.Snapshot
	err  error
}

type keyMap struct {
	Quit    key.Binding
	Refresh key.Binding
	Top     key.Binding
	Bottom  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Top:     key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom:  key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
	}
}

// NewModel creates the viewer model. Fetches are cancelled with ctx.
func NewModel(ctx context.Context, cfg Config) Model {
	interval := cfg.Interval
	if interval <= 0 {
		interval = viewer.DefaultInterval
	}
	v := cfg.Viewer
	if v == nil {
		v = viewer.New(nil)
	}
	return Model{
		ctx:      ctx,
		reader:   cfg.Reader,
		viewer:   v,
		interval: interval,
		source:   cfg.Source,
		keys:     defaultKeyMap(),
	}
}

// Init fetches immediately and starts the ticker.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetch(), tickCmd(m.interval))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		h := max(msg.Height-chromeHeight, 1)
		if !m.ready {
			m.vp = viewport.New(msg.Width, h)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = h
		}
		m.vp.SetContent(m.content())
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			return m, m.fetch()
		case key.Matches(msg, m.keys.Top):
			m.vp.GotoTop()
			return m, nil
		case key.Matches(msg, m.keys.Bottom):
			m.vp.GotoBottom()
			return m, nil
		}

	case tickMsg:
		// Ticks keep firing while a fetch is slow; fetch decides whether
		// this one starts a request.
		return m, tea.Batch(tickCmd(m.interval), m.fetch())

	case fetchedMsg:
		if m.viewer.Complete(msg.snap, msg.err) && m.ready {
			follow := m.vp.AtBottom()
			m.vp.SetContent(m.content())
			if follow {
				m.vp.GotoBottom()
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

// Viewer returns the state machine behind the model.
func (m Model) Viewer() *viewer.Viewer {
	return m.viewer
}

// content renders the displayed snapshot for the viewport.
func (m Model) content() string {
	snap := m.viewer.Snapshot()
	if snap.Len() == 0 {
		return ""
	}
	return renderSnapshot(&terminal.Renderer{Width: m.width, NoHeader: true}, snap)
}
