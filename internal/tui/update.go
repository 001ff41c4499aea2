package tui

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/ccsgo/internal/compare"
	"github.com/rgehrsitz/ccsgo/internal/domain"
	"github.com/rgehrsitz/ccsgo/internal/scenario"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(m.tableHeight())
		return m, nil

	case BatchLoadedMsg:
		m.loading = false
		m.err = nil
		m.batch = msg.Batch
		m.refresh()
		m.status = fmt.Sprintf("%d %s scenarios", len(msg.Batch.Scenarios), msg.Batch.Mode)
		if msg.Batch.Dropped > 0 {
			m.status += fmt.Sprintf(", %d could not be calculated", msg.Batch.Dropped)
		}
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case StatusMsg:
		m.status = string(msg)
		return m, nil
	}

	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if m.err != nil {
		// Any key dismisses an error
		m.err = nil
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.navigate(SceneHelp)
		return m, nil

	case key.Matches(msg, m.keys.Back):
		if m.currentScene != SceneTable {
			m.navigate(SceneTable)
		}
		return m, nil

	case key.Matches(msg, m.keys.Detail):
		if m.Selected() != nil {
			m.navigate(SceneDetail)
		}
		return m, nil

	case key.Matches(msg, m.keys.Chart):
		m.navigate(SceneChart)
		return m, nil

	case key.Matches(msg, m.keys.Metric):
		m.metric = nextMetric(m.metric)
		m.refresh()
		m.status = "Sorted by " + m.metric.Label()
		return m, nil

	case key.Matches(msg, m.keys.Order):
		if m.order == compare.OrderDesc {
			m.order = compare.OrderAsc
		} else {
			m.order = compare.OrderDesc
		}
		m.refresh()
		m.status = fmt.Sprintf("Sorted by %s (%s)", m.metric.Label(), m.order)
		return m, nil

	case key.Matches(msg, m.keys.Mode):
		if m.mode == scenario.ModeCommon {
			m.mode = scenario.ModeExhaustive
		} else {
			m.mode = scenario.ModeCommon
		}
		m.loading = true
		return m, generateCmd(m.generator, m.mode, m.request)

	case key.Matches(msg, m.keys.Favorite):
		if s := m.Selected(); s != nil {
			m.favorites[s.ID] = !m.favorites[s.ID]
			if !m.favorites[s.ID] {
				delete(m.favorites, s.ID)
			}
			m.refresh()
		}
		return m, nil

	case key.Matches(msg, m.keys.FavoritesOnly):
		m.favoritesOnly = !m.favoritesOnly
		m.refresh()
		if m.favoritesOnly {
			m.status = fmt.Sprintf("Showing %d favorites", len(m.visible))
		} else {
			m.status = "Showing all scenarios"
		}
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		s := m.Selected()
		if s == nil {
			return m, nil
		}
		return m, copyCmd(m.copyText, Summary(s))
	}

	if m.currentScene == SceneTable {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) navigate(scene Scene) {
	m.previousScene = m.currentScene
	m.currentScene = scene
}

// copyCmd writes text to the clipboard and reports the outcome in the status bar
func copyCmd(write func(string) error, text string) tea.Cmd {
	return func() tea.Msg {
		if err := write(text); err != nil {
			return StatusMsg("Copy failed: " + err.Error())
		}
		return StatusMsg("Copied to clipboard")
	}
}

func nextMetric(current compare.Metric) compare.Metric {
	all := compare.Metrics()
	i := slices.Index(all, current)
	return all[(i+1)%len(all)]
}

// Summary is the one-line description copied to the clipboard
func Summary(s *domain.Scenario) string {
	return fmt.Sprintf("%s: household $%s, subsidy $%s/yr, out of pocket $%s/yr, net $%s (%s%% of income on care)",
		s.Name,
		compare.FormatMoney(s.HouseholdIncome),
		compare.FormatMoney(s.AnnualSubsidy),
		compare.FormatMoney(s.AnnualOutOfPocket),
		compare.FormatMoney(s.NetIncomeAfterChildcare),
		s.CostPercentage.StringFixed(1))
}
