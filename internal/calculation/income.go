package calculation

import (
	"github.com/rgehrsitz/ccsgo/internal/domain"
	"github.com/shopspring/decimal"
)

// IncomeCalculator pro-rates an earner's base income by the days and hours actually worked
type IncomeCalculator struct {
	FullTimeDays  decimal.Decimal
	FullTimeHours decimal.Decimal
	Limits        domain.ValidationLimits
}

// NewIncomeCalculator creates an income calculator from the schedule's full-time baseline
func NewIncomeCalculator(schedule *domain.RateSchedule) *IncomeCalculator {
	return &IncomeCalculator{
		FullTimeDays:  schedule.Income.FullTimeDays,
		FullTimeHours: schedule.Income.FullTimeHours,
		Limits:        schedule.Validation,
	}
}

// AdjustedIncome scales base income by daysPerWeek/fullTimeDays and hoursPerDay/fullTimeHours
func (ic *IncomeCalculator) AdjustedIncome(baseIncome decimal.Decimal, daysPerWeek int, hoursPerDay decimal.Decimal) (decimal.Decimal, error) {
	return ic.AdjustedIncomeWithBaseline(baseIncome, daysPerWeek, hoursPerDay, ic.FullTimeDays, ic.FullTimeHours)
}

// AdjustedIncomeWithBaseline is AdjustedIncome against an explicit full-time baseline
func (ic *IncomeCalculator) AdjustedIncomeWithBaseline(baseIncome decimal.Decimal, daysPerWeek int, hoursPerDay, fullTimeDays, fullTimeHours decimal.Decimal) (decimal.Decimal, error) {
	if baseIncome.IsNegative() {
		return decimal.Zero, domain.InvalidInputf("base income cannot be negative, got %s", baseIncome.String())
	}
	if daysPerWeek < 0 || daysPerWeek > ic.Limits.MaxDaysPerWeek {
		return decimal.Zero, domain.InvalidInputf("days per week must be between 0 and %d, got %d", ic.Limits.MaxDaysPerWeek, daysPerWeek)
	}
	if hoursPerDay.IsNegative() || hoursPerDay.GreaterThan(ic.Limits.MaxHoursPerDay) {
		return decimal.Zero, domain.InvalidInputf("hours per day must be between 0 and %s, got %s", ic.Limits.MaxHoursPerDay.String(), hoursPerDay.String())
	}
	if !fullTimeDays.IsPositive() || !fullTimeHours.IsPositive() {
		return decimal.Zero, domain.InvalidInputf("full-time baseline must be positive, got %s days x %s hours", fullTimeDays.String(), fullTimeHours.String())
	}

	if baseIncome.IsZero() || daysPerWeek == 0 {
		return decimal.Zero, nil
	}

	dayFraction := decimal.NewFromInt(int64(daysPerWeek)).Div(fullTimeDays)
	hourFraction := hoursPerDay.Div(fullTimeHours)
	return baseIncome.Mul(dayFraction).Mul(hourFraction), nil
}

// HouseholdIncome sums two earners' incomes
func (ic *IncomeCalculator) HouseholdIncome(income1, income2 decimal.Decimal) (decimal.Decimal, error) {
	if income1.IsNegative() || income2.IsNegative() {
		return decimal.Zero, domain.InvalidInputf("incomes cannot be negative, got %s and %s", income1.String(), income2.String())
	}
	return income1.Add(income2), nil
}
