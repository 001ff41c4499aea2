package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/ccsgo/internal/domain"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

func (TableFormatter) Name() string { return "table" }

// Format generates a formatted table comparing scenarios
func (tf TableFormatter) Format(compSet *ComparisonSet) ([]byte, error) {
	var sb strings.Builder

	title := compSet.Title
	if title == "" {
		title = "CHILDCARE SCENARIO COMPARISON"
	}
	sb.WriteString(strings.ToUpper(title) + "\n")
	sb.WriteString(strings.Repeat("=", 96) + "\n")
	if compSet.Source != "" {
		sb.WriteString(fmt.Sprintf("Household: %s\n", compSet.Source))
	}
	if compSet.Metric != "" {
		sb.WriteString(fmt.Sprintf("Sorted by: %s (%s)\n", compSet.Metric.Label(), compSet.Order))
	}
	sb.WriteString("\n")

	nameWidth := 26
	numWidth := 13

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s %*s %7s\n",
		nameWidth, "Scenario",
		numWidth, "Household",
		numWidth, "Subsidy/yr",
		numWidth, "Out of Pocket",
		numWidth, "Net Income",
		5, "Hours",
		"Cost %"))
	sb.WriteString(strings.Repeat("-", 96) + "\n")

	if len(compSet.Scenarios) == 0 {
		sb.WriteString("No scenarios to show\n")
	}
	for i := range compSet.Scenarios {
		sb.WriteString(tf.formatRow(&compSet.Scenarios[i], nameWidth, numWidth))
	}
	sb.WriteString(strings.Repeat("=", 96) + "\n")

	if compSet.Dropped > 0 {
		sb.WriteString(fmt.Sprintf("%d combination(s) could not be calculated and were left out\n", compSet.Dropped))
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 96) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("* %s: %s %s\n", rec.Title, rec.Scenario, rec.Detail))
		}
		sb.WriteString("\n")
	}

	if len(compSet.Assumptions) > 0 {
		sb.WriteString("ASSUMPTIONS\n")
		for _, a := range compSet.Assumptions {
			sb.WriteString("- " + a + "\n")
		}
	}

	return []byte(sb.String()), nil
}

// formatRow formats a single scenario row
func (tf TableFormatter) formatRow(s *domain.Scenario, nameWidth, numWidth int) string {
	name := s.Name
	if s.Favorite {
		name = "* " + name
	}
	return fmt.Sprintf("%-*s %*s %*s %*s %*s %*s %7s\n",
		nameWidth, truncate(name, nameWidth),
		numWidth, "$"+FormatMoney(s.HouseholdIncome),
		numWidth, "$"+FormatMoney(s.AnnualSubsidy),
		numWidth, "$"+FormatMoney(s.AnnualOutOfPocket),
		numWidth, "$"+FormatMoney(s.NetIncomeAfterChildcare),
		5, s.SubsidisedHours.HoursPerWeek.String(),
		s.CostPercentage.StringFixed(1)+"%")
}

// FormatMoney renders whole dollars with thousands separators
func FormatMoney(d decimal.Decimal) string {
	whole := d.Round(0)
	sign := ""
	if whole.IsNegative() {
		sign = "-"
		whole = whole.Abs()
	}
	digits := whole.StringFixed(0)

	var out strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(r)
	}
	return sign + out.String()
}

// truncate truncates a string to maxLen
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary for each scenario
func (tf TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	parts := make([]string, 0, len(compSet.Scenarios))
	for _, s := range compSet.Scenarios {
		parts = append(parts, fmt.Sprintf("%s: $%s net", s.Name, FormatMoney(s.NetIncomeAfterChildcare)))
	}
	return strings.Join(parts, " | ")
}
