// Package tuistyles holds the lipgloss palette shared by the TUI and its components.
package tuistyles

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	ColorPrimary   = lipgloss.AdaptiveColor{Light: "#005F87", Dark: "#5FAFFF"}
	ColorSecondary = lipgloss.AdaptiveColor{Light: "#5F5F87", Dark: "#AFAFD7"}
	ColorAccent    = lipgloss.AdaptiveColor{Light: "#AF5F00", Dark: "#FFAF5F"}
	ColorSuccess   = lipgloss.AdaptiveColor{Light: "#008700", Dark: "#5FD75F"}
	ColorDanger    = lipgloss.AdaptiveColor{Light: "#AF0000", Dark: "#FF5F5F"}
	ColorMuted     = lipgloss.AdaptiveColor{Light: "#808080", Dark: "#6C6C6C"}
	ColorBorder    = lipgloss.AdaptiveColor{Light: "#BCBCBC", Dark: "#444444"}
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Padding(0, 1)

	StatusKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	MetricLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	MetricValueStyle = lipgloss.NewStyle().
				Bold(true)

	FavoriteStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPrimary).
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(ColorBorder).
				BorderBottom(true)

	TableHighlightStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(lipgloss.Color("#005F87"))
)

// MetricTrendStyle colors a figure by whether its movement is good for the family
func MetricTrendStyle(good bool) lipgloss.Style {
	if good {
		return lipgloss.NewStyle().Foreground(ColorSuccess)
	}
	return lipgloss.NewStyle().Foreground(ColorDanger)
}

// TrendIndicator is the arrow drawn next to a trend
func TrendIndicator(up bool) string {
	if up {
		return "▲"
	}
	return "▼"
}
