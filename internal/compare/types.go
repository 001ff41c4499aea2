package compare

import (
	"strings"

	"github.com/rgehrsitz/ccsgo/internal/domain"
	"github.com/shopspring/decimal"
)

// Metric names a scenario figure the analyzer can rank by
type Metric string

const (
	MetricNetIncome      Metric = "net_income"
	MetricOutOfPocket    Metric = "out_of_pocket"
	MetricAnnualSubsidy  Metric = "annual_subsidy"
	MetricWorkDays       Metric = "work_days"
	MetricCostPercentage Metric = "cost_percentage"
)

// Metrics lists the supported metrics in display order
func Metrics() []Metric {
	return []Metric{MetricNetIncome, MetricOutOfPocket, MetricAnnualSubsidy, MetricWorkDays, MetricCostPercentage}
}

// ParseMetric accepts a metric name in snake, kebab or camel case
func ParseMetric(s string) (Metric, error) {
	normalized := strings.ToLower(strings.NewReplacer("-", "_", " ", "_").Replace(strings.TrimSpace(s)))
	switch normalized {
	case "net_income", "netincome", "net":
		return MetricNetIncome, nil
	case "out_of_pocket", "outofpocket", "oop", "cost":
		return MetricOutOfPocket, nil
	case "annual_subsidy", "annualsubsidy", "subsidy":
		return MetricAnnualSubsidy, nil
	case "work_days", "workdays", "days":
		return MetricWorkDays, nil
	case "cost_percentage", "costpercentage", "percent":
		return MetricCostPercentage, nil
	}
	return "", domain.InvalidInputf("unknown metric %q", s)
}

// Label is a human-readable metric name
func (m Metric) Label() string {
	switch m {
	case MetricNetIncome:
		return "Net Income"
	case MetricOutOfPocket:
		return "Out of Pocket"
	case MetricAnnualSubsidy:
		return "Annual Subsidy"
	case MetricWorkDays:
		return "Work Days"
	case MetricCostPercentage:
		return "Cost %"
	}
	return string(m)
}

// Preferred is the direction that counts as better for the metric
func (m Metric) Preferred() Direction {
	switch m {
	case MetricOutOfPocket, MetricCostPercentage:
		return Minimize
	}
	return Maximize
}

// Value extracts the metric from a scenario
func (m Metric) Value(s *domain.Scenario) decimal.Decimal {
	switch m {
	case MetricNetIncome:
		return s.NetIncomeAfterChildcare
	case MetricOutOfPocket:
		return s.AnnualOutOfPocket
	case MetricAnnualSubsidy:
		return s.AnnualSubsidy
	case MetricWorkDays:
		return decimal.NewFromInt(int64(s.TotalWorkDays()))
	case MetricCostPercentage:
		return s.CostPercentage
	}
	return decimal.Zero
}

// Order is a sort direction
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// ParseOrder accepts asc or desc; empty defaults to desc
func ParseOrder(s string) (Order, error) {
	switch Order(strings.ToLower(strings.TrimSpace(s))) {
	case OrderAsc, "ascending":
		return OrderAsc, nil
	case OrderDesc, "descending", "":
		return OrderDesc, nil
	}
	return "", domain.InvalidInputf("unknown sort order %q (want asc or desc)", s)
}

// Direction says whether an optimum is the highest or lowest value
type Direction string

const (
	Maximize Direction = "max"
	Minimize Direction = "min"
)

// Criteria is an AND of optional scenario predicates. Nil fields are ignored.
type Criteria struct {
	MinNetIncome   *decimal.Decimal `json:"minNetIncome,omitempty" yaml:"min_net_income,omitempty"`
	MaxOutOfPocket *decimal.Decimal `json:"maxOutOfPocket,omitempty" yaml:"max_out_of_pocket,omitempty"`
	MinWorkDays    *int             `json:"minWorkDays,omitempty" yaml:"min_work_days,omitempty"`
	MaxWorkDays    *int             `json:"maxWorkDays,omitempty" yaml:"max_work_days,omitempty"`
	FavoritesOnly  bool             `json:"favoritesOnly,omitempty" yaml:"favorites_only,omitempty"`
}

// Matches reports whether a scenario satisfies every supplied predicate
func (c Criteria) Matches(s *domain.Scenario) bool {
	if c.MinNetIncome != nil && s.NetIncomeAfterChildcare.LessThan(*c.MinNetIncome) {
		return false
	}
	if c.MaxOutOfPocket != nil && s.AnnualOutOfPocket.GreaterThan(*c.MaxOutOfPocket) {
		return false
	}
	days := s.TotalWorkDays()
	if c.MinWorkDays != nil && days < *c.MinWorkDays {
		return false
	}
	if c.MaxWorkDays != nil && days > *c.MaxWorkDays {
		return false
	}
	if c.FavoritesOnly && !s.Favorite {
		return false
	}
	return true
}

// Recommendation is one headline finding from a set of scenarios
type Recommendation struct {
	Title      string `json:"title"`
	ScenarioID string `json:"scenarioId"`
	Scenario   string `json:"scenario"`
	Detail     string `json:"detail"`
}

// ComparisonSet is a ranked view over generated scenarios, ready for a formatter
type ComparisonSet struct {
	Title           string            `json:"title"`
	Metric          Metric            `json:"metric"`
	Order           Order             `json:"order"`
	Scenarios       []domain.Scenario `json:"scenarios"`
	Recommendations []Recommendation  `json:"recommendations"`
	Dropped         int               `json:"dropped,omitempty"`
	Source          string            `json:"source,omitempty"`
	Assumptions     []string          `json:"assumptions,omitempty"`
}

// NewComparisonSet sorts the scenarios by metric and attaches recommendations
func NewComparisonSet(title string, scenarios []domain.Scenario, metric Metric, order Order) *ComparisonSet {
	return &ComparisonSet{
		Title:           title,
		Metric:          metric,
		Order:           order,
		Scenarios:       SortScenarios(scenarios, metric, order),
		Recommendations: Summarize(scenarios),
	}
}
