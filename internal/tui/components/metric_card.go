package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/ccsgo/internal/tui/tuistyles"
)

// MetricCard displays a single figure with label and optional comparison
type MetricCard struct {
	Label       string
	Value       string
	Trend       *Trend
	Description string
	Width       int
}

// Trend is the figure's difference from a reference scenario
type Trend struct {
	Up     bool
	Good   bool
	Change string // e.g. "+$5,234"
}

// NewMetricCard creates a new metric card
func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{
		Label: label,
		Value: value,
		Width: 24,
	}
}

// WithTrend adds a difference indicator
func (m *MetricCard) WithTrend(up, good bool, change string) *MetricCard {
	m.Trend = &Trend{Up: up, Good: good, Change: change}
	return m
}

// WithDescription adds a subtitle
func (m *MetricCard) WithDescription(desc string) *MetricCard {
	m.Description = desc
	return m
}

// WithWidth sets the card width
func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

// Render returns the bordered card
func (m *MetricCard) Render() string {
	content := tuistyles.MetricLabelStyle.Render(m.Label) + "\n" + tuistyles.MetricValueStyle.Render(m.Value)
	if m.Trend != nil {
		content += "\n" + m.renderTrend()
	}
	if m.Description != "" {
		content += "\n" + tuistyles.SubtitleStyle.Render(m.Description)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(0, 1).
		Width(m.Width).
		Render(content)
}

// RenderCompact returns an inline "label: value" form
func (m *MetricCard) RenderCompact() string {
	out := tuistyles.MetricLabelStyle.Render(m.Label+":") + " " + tuistyles.MetricValueStyle.Render(m.Value)
	if m.Trend != nil {
		out += " " + m.renderTrend()
	}
	return out
}

func (m *MetricCard) renderTrend() string {
	return tuistyles.MetricTrendStyle(m.Trend.Good).
		Render(fmt.Sprintf("%s %s", tuistyles.TrendIndicator(m.Trend.Up), m.Trend.Change))
}

// MetricGrid lays cards out in rows of the given width
func MetricGrid(cards []*MetricCard, columns int) string {
	if len(cards) == 0 || columns <= 0 {
		return ""
	}

	var rows []string
	var current []string
	for i, card := range cards {
		current = append(current, card.Render())
		if (i+1)%columns == 0 || i == len(cards)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, current...))
			current = nil
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
