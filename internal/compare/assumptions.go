package compare

import (
	"fmt"

	"github.com/rgehrsitz/ccsgo/internal/domain"
	"github.com/shopspring/decimal"
)

// ScheduleAssumptions lists the modelling assumptions behind a set of scenarios,
// rendered in the table and HTML outputs
func ScheduleAssumptions(schedule *domain.RateSchedule, withholding *decimal.Decimal) []string {
	if schedule == nil {
		schedule = domain.DefaultRateSchedule()
	}
	rate := schedule.Withholding.Default
	if withholding != nil {
		rate = *withholding
	}
	return []string{
		fmt.Sprintf("Subsidy rates and hourly caps: %s financial year", schedule.Metadata.FinancialYear),
		fmt.Sprintf("Income scales with days worked out of a %s-day week", schedule.Income.FullTimeDays.String()),
		fmt.Sprintf("Care is paid for %d weeks a year", schedule.WeeksPerYear),
		fmt.Sprintf("%s%% of subsidy withheld until reconciliation", rate.String()),
		"Care hours cover the time both parents are at work",
	}
}
