package terminal

import "github.com/charmbracelet/lipgloss"

var (
	// Source colors: red for the priority log, teal for the rest.
	colorPriority = lipgloss.AdaptiveColor{Light: "#dc2626", Dark: "#f87171"}
	colorSource   = lipgloss.AdaptiveColor{Light: "#0d9488", Dark: "#2dd4bf"}
	colorWarn     = lipgloss.AdaptiveColor{Light: "#b45309", Dark: "#fbbf24"}

	// UI colors.
	colorBright = lipgloss.AdaptiveColor{Light: "#0f172a", Dark: "#f1f5f9"}
	colorDim    = lipgloss.AdaptiveColor{Light: "#94a3b8", Dark: "#64748b"}
)

var (
	stylePriorityName = lipgloss.NewStyle().Foreground(colorPriority).Bold(true)
	styleSourceName   = lipgloss.NewStyle().Foreground(colorSource).Bold(true)
	styleWarn         = lipgloss.NewStyle().Foreground(colorWarn)

	styleTitle = lipgloss.NewStyle().Foreground(colorBright).Bold(true)
	styleMeta  = lipgloss.NewStyle().Foreground(colorDim)

	styleStat      = lipgloss.NewStyle().Foreground(colorBright).Bold(true)
	styleStatLabel = lipgloss.NewStyle().Foreground(colorDim)

	stylePreview = lipgloss.NewStyle().Foreground(colorDim)

	styleSeparator = lipgloss.NewStyle().Foreground(colorDim)
)
