package calculation

import (
	"github.com/rgehrsitz/ccsgo/internal/domain"
	"github.com/shopspring/decimal"
)

// ActivityTestCalculator converts parents' worked hours into subsidised care hours
type ActivityTestCalculator struct {
	Rules  domain.ActivityTestRules
	Limits domain.ValidationLimits
}

// NewActivityTestCalculator creates an activity test calculator from the schedule
func NewActivityTestCalculator(schedule *domain.RateSchedule) *ActivityTestCalculator {
	return &ActivityTestCalculator{
		Rules:  schedule.ActivityTest,
		Limits: schedule.Validation,
	}
}

// FortnightlyHours is days × hoursPerDay × 2
func (atc *ActivityTestCalculator) FortnightlyHours(daysPerWeek int, hoursPerDay decimal.Decimal) (decimal.Decimal, error) {
	if daysPerWeek < 0 || daysPerWeek > atc.Limits.MaxDaysPerWeek {
		return decimal.Zero, domain.InvalidInputf("days per week must be between 0 and %d, got %d", atc.Limits.MaxDaysPerWeek, daysPerWeek)
	}
	if hoursPerDay.IsNegative() || hoursPerDay.GreaterThan(atc.Limits.MaxHoursPerDay) {
		return decimal.Zero, domain.InvalidInputf("hours per day must be between 0 and %s, got %s", atc.Limits.MaxHoursPerDay.String(), hoursPerDay.String())
	}
	return decimal.NewFromInt(int64(daysPerWeek)).Mul(hoursPerDay).Mul(decimal.NewFromInt(2)), nil
}

// SubsidisedHours applies the activity test to both parents' fortnightly hours. The lower
// of the two decides the band, so a non-working parent (0 hours) keeps the family on the
// base entitlement.
func (atc *ActivityTestCalculator) SubsidisedHours(parent1Fortnight, parent2Fortnight decimal.Decimal) (domain.SubsidisedHours, error) {
	if parent1Fortnight.IsNegative() || parent2Fortnight.IsNegative() {
		return domain.SubsidisedHours{}, domain.InvalidInputf("fortnightly hours cannot be negative, got %s and %s", parent1Fortnight.String(), parent2Fortnight.String())
	}

	lower := decimal.Min(parent1Fortnight, parent2Fortnight)
	if lower.GreaterThan(atc.Rules.HigherActivityThreshold) {
		return domain.SubsidisedHours{
			HoursPerFortnight: atc.Rules.HigherHoursPerFortnight,
			HoursPerWeek:      atc.Rules.HigherHoursPerWeek,
		}, nil
	}
	return domain.SubsidisedHours{
		HoursPerFortnight: atc.Rules.BaseHoursPerFortnight,
		HoursPerWeek:      atc.Rules.BaseHoursPerWeek,
	}, nil
}
