package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/ccsgo/internal/compare"
	"github.com/rgehrsitz/ccsgo/internal/domain"
	"github.com/rgehrsitz/ccsgo/internal/tui/components"
	"github.com/rgehrsitz/ccsgo/internal/tui/tuistyles"
)

// View renders the current state of the application
func (m Model) View() string {
	var content string
	switch {
	case m.err != nil:
		content = tuistyles.ErrorStyle.Render(fmt.Sprintf("Error: %s\n\nPress any key to continue...", m.err))
	case m.loading:
		content = tuistyles.BorderStyle.Render(fmt.Sprintf("Generating %s scenarios...", m.mode))
	default:
		switch m.currentScene {
		case SceneTable:
			content = m.renderTable()
		case SceneDetail:
			content = m.renderDetail()
		case SceneChart:
			content = m.renderChart()
		case SceneHelp:
			content = m.renderHelp()
		}
	}
	return m.renderApp(content)
}

// renderApp wraps content with title bar and status bar
func (m Model) renderApp(content string) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		content,
		m.renderStatusBar(),
	)
}

func (m Model) renderTitleBar() string {
	title := tuistyles.TitleStyle.Render("CCS - Child Care Subsidy scenarios")
	crumb := fmt.Sprintf("%s / %s mode / %s (%s)", m.currentScene, m.mode, m.metric.Label(), m.order)
	if m.source != "" {
		crumb = m.source + " / " + crumb
	}
	if m.favoritesOnly {
		crumb += " / favorites"
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, tuistyles.SubtitleStyle.Render(crumb))
}

func (m Model) renderStatusBar() string {
	shortcuts := make([]string, 0, len(m.keys.shortHelp()))
	for _, b := range m.keys.shortHelp() {
		shortcuts = append(shortcuts, tuistyles.StatusKeyStyle.Render(b.Help().Key)+" "+b.Help().Desc)
	}
	line := strings.Join(shortcuts, " • ")
	if m.status != "" {
		line = tuistyles.InfoStyle.Render(m.status) + "\n" + line
	}
	return tuistyles.StatusBarStyle.Render(line)
}

func (m Model) renderTable() string {
	if len(m.visible) == 0 {
		msg := "No scenarios could be calculated for this household."
		if m.favoritesOnly {
			msg = "No favorites yet. Press F to show all scenarios, f to mark one."
		}
		return tuistyles.BorderStyle.Render(msg)
	}
	return tuistyles.BorderStyle.Render(m.table.View())
}

func (m Model) renderDetail() string {
	s := m.Selected()
	if s == nil {
		return tuistyles.BorderStyle.Render("Nothing selected")
	}

	var reference *domain.Scenario
	if len(m.visible) > 0 && m.visible[0].ID != s.ID {
		reference = &m.visible[0]
	}

	cards := []*components.MetricCard{
		moneyCard("Household income", s.HouseholdIncome, reference, func(r *domain.Scenario) decimal.Decimal { return r.HouseholdIncome }, true),
		moneyCard("Subsidy per year", s.AnnualSubsidy, reference, func(r *domain.Scenario) decimal.Decimal { return r.AnnualSubsidy }, true),
		moneyCard("Out of pocket per year", s.AnnualOutOfPocket, reference, func(r *domain.Scenario) decimal.Decimal { return r.AnnualOutOfPocket }, false),
		moneyCard("Net after child care", s.NetIncomeAfterChildcare, reference, func(r *domain.Scenario) decimal.Decimal { return r.NetIncomeAfterChildcare }, true),
		components.NewMetricCard("Subsidised hours", s.SubsidisedHours.HoursPerWeek.String()+" h/wk").
			WithDescription(s.SubsidisedHours.HoursPerFortnight.String() + " per fortnight"),
		components.NewMetricCard("Cost of care", s.CostPercentage.StringFixed(2)+"%").
			WithDescription("of household income"),
	}

	var sb strings.Builder
	name := s.Name
	if s.Favorite {
		name = tuistyles.FavoriteStyle.Render("* ") + name
	}
	sb.WriteString(tuistyles.TitleStyle.Render(name) + "\n")
	if reference != nil {
		sb.WriteString(tuistyles.SubtitleStyle.Render("Compared with "+reference.Name) + "\n")
	}
	sb.WriteString(components.MetricGrid(cards, 3) + "\n\n")

	for _, c := range s.Children {
		fmt.Fprintf(&sb, "%s  age %d, %s, %s track at %s%%\n",
			tuistyles.MetricValueStyle.Render(c.ChildName), c.Age, c.CareType, c.RateTrack, c.SubsidyRate.String())
		fmt.Fprintf(&sb, "  %s h/wk needed, %s attended, %s subsidised at $%s/h (fee $%s/h)\n",
			c.HoursNeeded.String(), c.ActualHours.String(), c.HoursWithSubsidy.String(),
			c.SubsidyPerHour.StringFixed(2), c.HourlyFee.StringFixed(2))
		fmt.Fprintf(&sb, "  weekly: cost $%s, subsidy $%s, withheld $%s, out of pocket $%s\n",
			c.WeeklyFullCost.StringFixed(2), c.WeeklyPaidSubsidy.StringFixed(2),
			c.WeeklyWithheld.StringFixed(2), c.WeeklyOutOfPocket.StringFixed(2))
	}
	return tuistyles.BorderStyle.Render(strings.TrimRight(sb.String(), "\n"))
}

// moneyCard shows a dollar figure and its difference from the reference scenario
func moneyCard(label string, value decimal.Decimal, reference *domain.Scenario, pick func(*domain.Scenario) decimal.Decimal, higherIsBetter bool) *components.MetricCard {
	card := components.NewMetricCard(label, "$"+compare.FormatMoney(value))
	if reference == nil {
		return card
	}
	diff := value.Sub(pick(reference))
	if diff.Round(0).IsZero() {
		return card
	}
	up := diff.IsPositive()
	sign := "+"
	if !up {
		sign = "-"
	}
	return card.WithTrend(up, up == higherIsBetter, sign+"$"+compare.FormatMoney(diff.Abs()))
}

func (m Model) renderChart() string {
	chart := components.NewBarChart(m.metric.Label()).WithWidth(max(10, m.width-50))
	selected := m.Selected()
	for i, s := range m.visible {
		v := m.metric.Value(&s)
		text := v.StringFixed(2)
		switch m.metric {
		case compare.MetricWorkDays:
			text = v.String()
		case compare.MetricCostPercentage:
			text += "%"
		default:
			text = "$" + compare.FormatMoney(v)
		}
		chart.Add(s.Name, v.InexactFloat64(), text)
		if selected != nil && s.ID == selected.ID {
			chart.WithHighlight(i)
		}
	}
	return tuistyles.BorderStyle.Render(chart.Render())
}

func (m Model) renderHelp() string {
	helpText := `CCS - Child Care Subsidy scenarios

Each row is one combination of days worked by each parent, priced with the
subsidy rate, activity test and hourly rate caps for the household's income.

KEYBOARD SHORTCUTS:
  up/down  Move through scenarios
  enter    Show the selected scenario's breakdown
  v        Chart the sort metric
  s        Cycle the sort metric
  o        Toggle ascending/descending
  m        Switch between common and exhaustive combinations
  f        Mark/unmark the selected scenario as a favorite
  F        Show favorites only
  c        Copy the selected scenario's summary
  esc      Back to the list
  q/Ctrl+C Quit
`
	return tuistyles.BorderStyle.Render(helpText)
}
