package compare

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rgehrsitz/ccsgo/internal/domain"
)

// CSVFormatter formats comparison results as CSV, one row per scenario
type CSVFormatter struct{}

func (CSVFormatter) Name() string { return "csv" }

// Format generates CSV output for comparison results
func (cf CSVFormatter) Format(compSet *ComparisonSet) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := []string{
		"ID",
		"Scenario",
		"Parent 1 Days",
		"Parent 2 Days",
		"Household Income",
		"Subsidised Hours/Week",
		"Weekly Subsidy",
		"Weekly Withheld",
		"Weekly Cost",
		"Weekly Out of Pocket",
		"Annual Subsidy",
		"Annual Cost",
		"Annual Out of Pocket",
		"Net Income",
		"Cost %",
		"Favorite",
	}
	if err := writer.Write(header); err != nil {
		return nil, err
	}

	for i := range compSet.Scenarios {
		if err := writer.Write(cf.formatRow(&compSet.Scenarios[i])); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// formatRow formats a scenario as a CSV row
func (cf CSVFormatter) formatRow(s *domain.Scenario) []string {
	return []string{
		s.ID,
		s.Name,
		strconv.Itoa(s.Parent1Days),
		strconv.Itoa(s.Parent2Days),
		s.HouseholdIncome.StringFixed(2),
		s.SubsidisedHours.HoursPerWeek.String(),
		s.TotalWeeklySubsidy.StringFixed(2),
		s.TotalWeeklyWithheld.StringFixed(2),
		s.TotalWeeklyCost.StringFixed(2),
		s.TotalWeeklyOutOfPocket.StringFixed(2),
		s.AnnualSubsidy.StringFixed(2),
		s.AnnualCost.StringFixed(2),
		s.AnnualOutOfPocket.StringFixed(2),
		s.NetIncomeAfterChildcare.StringFixed(2),
		s.CostPercentage.StringFixed(2),
		strconv.FormatBool(s.Favorite),
	}
}
