// Package tui is an interactive browser over generated child care scenarios.
package tui

import (
	"context"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/ccsgo/internal/compare"
	"github.com/rgehrsitz/ccsgo/internal/domain"
	"github.com/rgehrsitz/ccsgo/internal/scenario"
	"github.com/rgehrsitz/ccsgo/internal/tui/tuistyles"
)

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	// Inputs
	source    string
	generator *scenario.Generator
	request   scenario.Request

	// Current batch and how it is shown
	mode          scenario.Mode
	metric        compare.Metric
	order         compare.Order
	batch         scenario.Batch
	visible       []domain.Scenario
	favorites     map[string]bool
	favoritesOnly bool

	table table.Model
	keys  keyMap

	// copyText writes to the system clipboard; swapped out in tests
	copyText func(string) error

	status  string
	err     error
	loading bool
}

// Option customizes a model
type Option func(*Model)

// WithMode sets the initial generation mode
func WithMode(mode scenario.Mode) Option {
	return func(m *Model) { m.mode = mode }
}

// WithMetric sets the initial sort metric
func WithMetric(metric compare.Metric) Option {
	return func(m *Model) { m.metric = metric }
}

// WithClipboard replaces the clipboard writer
func WithClipboard(write func(string) error) Option {
	return func(m *Model) {
		if write != nil {
			m.copyText = write
		}
	}
}

// NewModel creates a new application model for one household
func NewModel(source string, gen *scenario.Generator, req scenario.Request, opts ...Option) Model {
	if gen == nil {
		gen = scenario.NewGenerator(nil)
	}
	m := Model{
		currentScene: SceneTable,
		source:       source,
		generator:    gen,
		request:      req,
		mode:         scenario.ModeCommon,
		metric:       compare.MetricNetIncome,
		order:        compare.OrderDesc,
		favorites:    make(map[string]bool),
		keys:         defaultKeyMap(),
		copyText:     clipboard.WriteAll,
		width:        100,
		height:       24,
		loading:      true,
	}
	for _, opt := range opts {
		opt(&m)
	}

	styles := table.DefaultStyles()
	styles.Header = tuistyles.TableHeaderStyle
	styles.Selected = tuistyles.TableHighlightStyle
	m.table = table.New(
		table.WithColumns(columns()),
		table.WithFocused(true),
		table.WithHeight(m.tableHeight()),
		table.WithStyles(styles),
	)
	return m
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return generateCmd(m.generator, m.mode, m.request)
}

// generateCmd returns a command that builds a batch off the update loop
func generateCmd(gen *scenario.Generator, mode scenario.Mode, req scenario.Request) tea.Cmd {
	return func() tea.Msg {
		batch, err := gen.Generate(context.Background(), mode, req)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return BatchLoadedMsg{Batch: batch}
	}
}

// Selected returns the scenario under the cursor, or nil
func (m Model) Selected() *domain.Scenario {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.visible) {
		return nil
	}
	s := m.visible[i]
	return &s
}

// Visible returns the scenarios currently listed, in display order
func (m Model) Visible() []domain.Scenario {
	return m.visible
}

// refresh re-applies favorites, the favorites filter and the sort to the batch
func (m *Model) refresh() {
	all := make([]domain.Scenario, len(m.batch.Scenarios))
	for i, s := range m.batch.Scenarios {
		s.Favorite = m.favorites[s.ID]
		all[i] = s
	}
	if m.favoritesOnly {
		all = compare.Filter(all, compare.Criteria{FavoritesOnly: true})
	}
	m.visible = compare.SortScenarios(all, m.metric, m.order)

	m.table.SetRows(rows(m.visible))
	if c := m.table.Cursor(); c < 0 || c >= len(m.visible) {
		m.table.SetCursor(max(0, len(m.visible)-1))
	}
}

func (m Model) tableHeight() int {
	return max(3, m.height-8)
}

func columns() []table.Column {
	return []table.Column{
		{Title: "", Width: 1},
		{Title: "Scenario", Width: 24},
		{Title: "Household", Width: 11},
		{Title: "Subsidy/yr", Width: 11},
		{Title: "Out of pocket", Width: 13},
		{Title: "Net income", Width: 11},
		{Title: "Hrs/wk", Width: 6},
		{Title: "Cost %", Width: 6},
	}
}

func rows(scenarios []domain.Scenario) []table.Row {
	out := make([]table.Row, 0, len(scenarios))
	for _, s := range scenarios {
		mark := ""
		if s.Favorite {
			mark = "*"
		}
		out = append(out, table.Row{
			mark,
			s.Name,
			"$" + compare.FormatMoney(s.HouseholdIncome),
			"$" + compare.FormatMoney(s.AnnualSubsidy),
			"$" + compare.FormatMoney(s.AnnualOutOfPocket),
			"$" + compare.FormatMoney(s.NetIncomeAfterChildcare),
			s.SubsidisedHours.HoursPerWeek.String(),
			s.CostPercentage.StringFixed(1),
		})
	}
	return out
}
