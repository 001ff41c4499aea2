package scenario

import (
	"github.com/shopspring/decimal"
)

// WorkPattern is one parent's days and daily hours in a scenario
type WorkPattern struct {
	Days        int
	HoursPerDay decimal.Decimal
}

// Working reports whether the parent is away at work on any day
func (wp WorkPattern) Working() bool {
	return wp.Days > 0 && wp.HoursPerDay.IsPositive()
}

func (wp WorkPattern) weeklyHours() decimal.Decimal {
	return decimal.NewFromInt(int64(wp.Days)).Mul(wp.HoursPerDay)
}

// CareHoursPolicy decides how many weekly care hours a family needs for a work arrangement
type CareHoursPolicy interface {
	HoursNeeded(parent1, parent2 WorkPattern) decimal.Decimal
}

// OverlapPolicy assumes parents stack their work days. On days both work, care covers the
// longer working day. On days only one works, care covers the shorter of the two daily
// figures. A parent who does not work at all covers every day themselves, so care only
// spans the other parent's hours.
type OverlapPolicy struct{}

// HoursNeeded implements CareHoursPolicy
func (OverlapPolicy) HoursNeeded(parent1, parent2 WorkPattern) decimal.Decimal {
	switch {
	case !parent1.Working() && !parent2.Working():
		return decimal.Zero
	case !parent2.Working():
		return parent1.weeklyHours()
	case !parent1.Working():
		return parent2.weeklyHours()
	}

	overlap := min(parent1.Days, parent2.Days)
	single := parent1.Days - parent2.Days
	if single < 0 {
		single = -single
	}

	longer := decimal.Max(parent1.HoursPerDay, parent2.HoursPerDay)
	shorter := decimal.Min(parent1.HoursPerDay, parent2.HoursPerDay)
	return decimal.NewFromInt(int64(overlap)).Mul(longer).
		Add(decimal.NewFromInt(int64(single)).Mul(shorter))
}
