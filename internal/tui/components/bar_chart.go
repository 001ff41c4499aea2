package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/ccsgo/internal/tui/tuistyles"
)

// Bar is one labelled value
type Bar struct {
	Label string
	Value float64
	Text  string // Printed after the bar; defaults to the value
}

// BarChart draws horizontal bars scaled to the largest absolute value
type BarChart struct {
	Title      string
	Bars       []Bar
	Width      int
	LabelWidth int
	Highlight  int // Index drawn in the accent color; -1 for none
}

// NewBarChart creates a chart with default sizing
func NewBarChart(title string) *BarChart {
	return &BarChart{Title: title, Width: 40, LabelWidth: 24, Highlight: -1}
}

// Add appends a bar
func (c *BarChart) Add(label string, value float64, text string) *BarChart {
	c.Bars = append(c.Bars, Bar{Label: label, Value: value, Text: text})
	return c
}

// WithWidth sets the width of the longest bar
func (c *BarChart) WithWidth(width int) *BarChart {
	if width > 0 {
		c.Width = width
	}
	return c
}

// WithHighlight marks one bar
func (c *BarChart) WithHighlight(index int) *BarChart {
	c.Highlight = index
	return c
}

// Render returns the chart
func (c *BarChart) Render() string {
	var sb strings.Builder
	if c.Title != "" {
		sb.WriteString(tuistyles.TitleStyle.Render(c.Title) + "\n")
	}
	if len(c.Bars) == 0 {
		sb.WriteString(tuistyles.SubtitleStyle.Render("No data"))
		return sb.String()
	}

	peak := 0.0
	for _, b := range c.Bars {
		peak = max(peak, abs(b.Value))
	}

	barStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorPrimary)
	for i, b := range c.Bars {
		n := 0
		if peak > 0 {
			n = int(abs(b.Value) / peak * float64(c.Width))
		}
		char := "█"
		if b.Value < 0 {
			char = "░"
		}
		style := barStyle
		if i == c.Highlight {
			style = tuistyles.FavoriteStyle
		}
		text := b.Text
		if text == "" {
			text = fmt.Sprintf("%.2f", b.Value)
		}
		label := b.Label
		if len(label) > c.LabelWidth {
			label = label[:c.LabelWidth]
		}
		fmt.Fprintf(&sb, "%-*s %s %s\n", c.LabelWidth, label, style.Render(strings.Repeat(char, n)), text)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
