package calculation

import (
	"github.com/rgehrsitz/ccsgo/internal/domain"
	"github.com/shopspring/decimal"
)

// SUBSIDY RATE ASSUMPTIONS:
//
// 1. Standard rate: 90% up to Max90Percent, then 1% less per full TaperIncrement of income
//    above it, reaching 0% at MinZeroPercent.
//
// 2. Higher rate: 95% up to Max95Percent, then the configured bands. Tapering bands lose 1%
//    per full TaperIncrement above the band's lower bound and never drop below the band's
//    end rate. From RevertToStandard upwards the child is priced on the standard formula.
//
// 3. Only whole increments count (floor), so the first decrement happens at
//    threshold + increment, not threshold + 1.

// RateResult is the outcome of evaluating a child's subsidy track
type RateResult struct {
	Rate     decimal.Decimal
	Track    domain.RateTrack
	Reverted bool // Higher track child priced on the standard formula
}

// SubsidyRateCalculator evaluates the standard and higher rate bracket tables
type SubsidyRateCalculator struct {
	Standard domain.StandardRateRules
	Higher   domain.HigherRateRules
}

// NewSubsidyRateCalculator creates a subsidy rate calculator from the schedule
func NewSubsidyRateCalculator(schedule *domain.RateSchedule) *SubsidyRateCalculator {
	return &SubsidyRateCalculator{
		Standard: schedule.Standard,
		Higher:   schedule.Higher,
	}
}

// StandardRate returns the subsidy percentage for the eldest child aged five or under
// and for every child over five
func (src *SubsidyRateCalculator) StandardRate(income decimal.Decimal) (decimal.Decimal, error) {
	if income.IsNegative() {
		return decimal.Zero, domain.InvalidInputf("household income cannot be negative, got %s", income.String())
	}

	rules := src.Standard
	switch {
	case income.LessThanOrEqual(rules.Max90Percent):
		return rules.MaxRate, nil
	case income.GreaterThanOrEqual(rules.MinZeroPercent):
		return decimal.Zero, nil
	}

	steps := income.Sub(rules.Max90Percent).Div(rules.TaperIncrement).Floor()
	return clampRate(rules.MaxRate.Sub(steps), decimal.Zero, rules.MaxRate), nil
}

// HigherRate returns the subsidy percentage for a younger sibling aged five or under.
// At or above RevertToStandard the result comes from StandardRate and Reverted is set.
func (src *SubsidyRateCalculator) HigherRate(income decimal.Decimal) (RateResult, error) {
	if income.IsNegative() {
		return RateResult{}, domain.InvalidInputf("household income cannot be negative, got %s", income.String())
	}

	rules := src.Higher
	if income.GreaterThanOrEqual(rules.RevertToStandard) {
		rate, err := src.StandardRate(income)
		if err != nil {
			return RateResult{}, err
		}
		return RateResult{Rate: rate, Track: domain.RateTrackHigher, Reverted: true}, nil
	}

	if income.LessThanOrEqual(rules.Max95Percent) {
		return RateResult{Rate: rules.MaxRate, Track: domain.RateTrackHigher}, nil
	}

	for _, band := range rules.Bands {
		if income.LessThanOrEqual(band.Above) || income.GreaterThan(band.UpTo) {
			continue
		}
		if band.Flat() {
			return RateResult{Rate: band.StartRate, Track: domain.RateTrackHigher}, nil
		}
		steps := income.Sub(band.Above).Div(rules.TaperIncrement).Floor()
		rate := clampRate(band.StartRate.Sub(steps), band.EndRate, band.StartRate)
		return RateResult{Rate: rate, Track: domain.RateTrackHigher}, nil
	}

	// Gap between the last band and the reversion threshold: hold the last band's floor
	if n := len(rules.Bands); n > 0 && income.GreaterThan(rules.Bands[n-1].UpTo) {
		return RateResult{Rate: rules.Bands[n-1].EndRate, Track: domain.RateTrackHigher}, nil
	}
	return RateResult{Rate: rules.MaxRate, Track: domain.RateTrackHigher}, nil
}

// RateForChild evaluates the formula for the given track
func (src *SubsidyRateCalculator) RateForChild(income decimal.Decimal, track domain.RateTrack) (RateResult, error) {
	switch track {
	case domain.RateTrackStandard:
		rate, err := src.StandardRate(income)
		if err != nil {
			return RateResult{}, err
		}
		return RateResult{Rate: rate, Track: domain.RateTrackStandard}, nil
	case domain.RateTrackHigher:
		return src.HigherRate(income)
	}
	return RateResult{}, domain.InvalidInputf("unknown rate track %q", track)
}

// AssignTracks decides which formula prices each child. The eldest child aged five or
// under (earliest in input order on ties) takes the standard rate, other children five
// or under take the higher rate, and children over five always take the standard rate.
func (src *SubsidyRateCalculator) AssignTracks(children []domain.Child) []domain.RateTrack {
	tracks := make([]domain.RateTrack, len(children))
	eldest := -1
	for i, child := range children {
		tracks[i] = domain.RateTrackStandard
		if child.Age > src.Higher.MaxChildAge {
			continue
		}
		if eldest == -1 || child.Age > children[eldest].Age {
			eldest = i
		}
	}
	for i, child := range children {
		if child.Age <= src.Higher.MaxChildAge && i != eldest {
			tracks[i] = domain.RateTrackHigher
		}
	}
	return tracks
}

func clampRate(rate, lo, hi decimal.Decimal) decimal.Decimal {
	if rate.LessThan(lo) {
		return lo
	}
	if rate.GreaterThan(hi) {
		return hi
	}
	return rate
}
