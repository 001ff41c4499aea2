package calculation

import (
	"github.com/rgehrsitz/ccsgo/internal/domain"
	"github.com/shopspring/decimal"
)

// RateCapTable looks up the hourly fee cap for a care type and age
type RateCapTable struct {
	Rules       domain.RateCapRules
	MaxChildAge int
}

// NewRateCapTable creates a rate cap table from the schedule
func NewRateCapTable(schedule *domain.RateSchedule) *RateCapTable {
	return &RateCapTable{
		Rules:       schedule.RateCaps,
		MaxChildAge: schedule.Validation.MaxChildAge,
	}
}

// AgeCategory returns school-age at or above the school age threshold
func (rct *RateCapTable) AgeCategory(childAge int) domain.AgeCategory {
	if childAge >= rct.Rules.SchoolAgeThreshold {
		return domain.AgeCategorySchool
	}
	return domain.AgeCategoryNonSchool
}

// Cap returns the hourly cap for a care type and child age
func (rct *RateCapTable) Cap(careType domain.CareType, childAge int) (decimal.Decimal, error) {
	if childAge < 0 || childAge > rct.MaxChildAge {
		return decimal.Zero, domain.InvalidInputf("child age must be between 0 and %d, got %d", rct.MaxChildAge, childAge)
	}
	caps, ok := rct.Rules.Caps[careType]
	if !ok {
		return decimal.Zero, domain.InvalidInputf("unknown care type %q", careType)
	}
	if rct.AgeCategory(childAge) == domain.AgeCategorySchool {
		return caps.SchoolAge, nil
	}
	return caps.NonSchoolAge, nil
}

// EffectiveHourlyRate is the lesser of the provider's fee and the cap
func (rct *RateCapTable) EffectiveHourlyRate(providerFee decimal.Decimal, careType domain.CareType, childAge int) (decimal.Decimal, error) {
	if providerFee.IsNegative() {
		return decimal.Zero, domain.InvalidInputf("provider fee cannot be negative, got %s", providerFee.String())
	}
	limit, err := rct.Cap(careType, childAge)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.Min(providerFee, limit), nil
}

// FamilyCapShare returns the cap each child may use when count children share the care
// type. Per-family care types split one cap evenly; per-child types return the full cap.
func (rct *RateCapTable) FamilyCapShare(careType domain.CareType, childAge, count int) (decimal.Decimal, error) {
	limit, err := rct.Cap(careType, childAge)
	if err != nil {
		return decimal.Zero, err
	}
	if !careType.PerFamily() || count <= 1 {
		return limit, nil
	}
	return limit.Div(decimal.NewFromInt(int64(count))), nil
}

// EffectiveHourlyRateShared is EffectiveHourlyRate against the per-child share of a
// family-wide cap
func (rct *RateCapTable) EffectiveHourlyRateShared(providerFee decimal.Decimal, careType domain.CareType, childAge, count int) (decimal.Decimal, error) {
	if providerFee.IsNegative() {
		return decimal.Zero, domain.InvalidInputf("provider fee cannot be negative, got %s", providerFee.String())
	}
	share, err := rct.FamilyCapShare(careType, childAge, count)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.Min(providerFee, share), nil
}
