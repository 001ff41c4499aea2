package compare

import (
	"fmt"
	"sort"

	"github.com/rgehrsitz/ccsgo/internal/domain"
)

// CompareScenarios orders two scenarios by metric. Ascending order returns a negative
// value when a sorts before b; descending reverses the sign.
func CompareScenarios(a, b *domain.Scenario, metric Metric, order Order) int {
	cmp := metric.Value(a).Cmp(metric.Value(b))
	if order == OrderDesc {
		return -cmp
	}
	return cmp
}

// SortScenarios returns a stably sorted copy; the input is left untouched
func SortScenarios(scenarios []domain.Scenario, metric Metric, order Order) []domain.Scenario {
	sorted := make([]domain.Scenario, len(scenarios))
	copy(sorted, scenarios)
	sort.SliceStable(sorted, func(i, j int) bool {
		return CompareScenarios(&sorted[i], &sorted[j], metric, order) < 0
	})
	return sorted
}

// FindBest returns the scenario with the highest value of metric, whichever way the
// metric is usually read. For out-of-pocket that is the most expensive scenario; use
// FindOptimal to respect the metric's direction. Returns nil for an empty list.
func FindBest(scenarios []domain.Scenario, metric Metric) *domain.Scenario {
	return FindOptimal(scenarios, metric, Maximize)
}

// FindOptimal returns the scenario with the highest (Maximize) or lowest (Minimize) value
// of metric. Ties keep the earlier scenario. Returns nil for an empty list.
func FindOptimal(scenarios []domain.Scenario, metric Metric, direction Direction) *domain.Scenario {
	if len(scenarios) == 0 {
		return nil
	}
	order := OrderDesc
	if direction == Minimize {
		order = OrderAsc
	}
	best := 0
	for i := 1; i < len(scenarios); i++ {
		if CompareScenarios(&scenarios[i], &scenarios[best], metric, order) < 0 {
			best = i
		}
	}
	found := scenarios[best]
	return &found
}

// Filter returns the scenarios matching every supplied criterion, in input order
func Filter(scenarios []domain.Scenario, criteria Criteria) []domain.Scenario {
	matched := make([]domain.Scenario, 0, len(scenarios))
	for i := range scenarios {
		if criteria.Matches(&scenarios[i]) {
			matched = append(matched, scenarios[i])
		}
	}
	return matched
}

// Summarize picks headline scenarios for highest net income, lowest out-of-pocket and
// highest subsidy. A scenario that wins more than one category appears once per category.
func Summarize(scenarios []domain.Scenario) []Recommendation {
	recommendations := []Recommendation{}
	if len(scenarios) == 0 {
		return recommendations
	}

	if best := FindOptimal(scenarios, MetricNetIncome, Maximize); best != nil {
		recommendations = append(recommendations, Recommendation{
			Title:      "Best Net Income",
			ScenarioID: best.ID,
			Scenario:   best.Name,
			Detail: fmt.Sprintf("leaves $%s after $%s of childcare",
				best.NetIncomeAfterChildcare.StringFixed(0), best.AnnualOutOfPocket.StringFixed(0)),
		})
	}

	if cheapest := FindOptimal(scenarios, MetricOutOfPocket, Minimize); cheapest != nil {
		recommendations = append(recommendations, Recommendation{
			Title:      "Lowest Out of Pocket",
			ScenarioID: cheapest.ID,
			Scenario:   cheapest.Name,
			Detail: fmt.Sprintf("costs $%s a year (%s%% of household income)",
				cheapest.AnnualOutOfPocket.StringFixed(0), cheapest.CostPercentage.StringFixed(1)),
		})
	}

	if subsidy := FindOptimal(scenarios, MetricAnnualSubsidy, Maximize); subsidy != nil && subsidy.AnnualSubsidy.IsPositive() {
		recommendations = append(recommendations, Recommendation{
			Title:      "Highest Subsidy",
			ScenarioID: subsidy.ID,
			Scenario:   subsidy.Name,
			Detail:     fmt.Sprintf("attracts $%s of subsidy a year", subsidy.AnnualSubsidy.StringFixed(0)),
		})
	}

	return recommendations
}
